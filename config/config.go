package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config holds the constants of the GLP-1 pipeline. Default() gives the values the
// pipeline was built around; a YAML file may override any of them.
type Config struct {
	// Root overrides the project root inferred from the executable's location.
	Root string `yaml:"root"`

	Files FilesConfig `yaml:"files"`

	Affordability AffordabilityConfig `yaml:"affordability"`

	// MedicaidStates are the states whose Medicaid program covers GLP-1 drugs for weight loss.
	MedicaidStates []string `yaml:"medicaid_states"`

	Income IncomeConfig `yaml:"income"`

	// ObeseResponse is the BRFSS Response value kept by the demographics stage.
	ObeseResponse string `yaml:"obese_response"`

	Output OutputConfig `yaml:"output"`
}

// FilesConfig names the inputs (under data/raw) and outputs (under data/processed).
type FilesConfig struct {
	Obesity         string `yaml:"obesity"`
	Income          string `yaml:"income"`
	Education       string `yaml:"education"`
	HouseholdIncome string `yaml:"household_income"`

	Master       string `yaml:"master"`
	Demographics string `yaml:"demographics"`
}

type AffordabilityConfig struct {
	// ListPrice is the monthly list price of Wegovy, in dollars.
	ListPrice    float64 `yaml:"list_price"`
	WeeksPerYear float64 `yaml:"weeks_per_year"`
}

// IncomeConfig locates the median household income row of the S1901 table.
type IncomeConfig struct {
	// MedianLabel is matched, as a prefix, against the first column of the table.
	MedianLabel string `yaml:"median_label"`
	// FallbackRow is used when no row carries MedianLabel.
	FallbackRow int `yaml:"fallback_row"`
	// ColumnMarker selects the per-state household estimate columns.
	ColumnMarker string `yaml:"column_marker"`
}

// OutputConfig sets how the processed tables are written.
type OutputConfig struct {
	Separator   string `yaml:"separator"`
	NullString  string `yaml:"null_string"`
	InfString   string `yaml:"inf_string"`
	TrueString  string `yaml:"true_string"`
	FalseString string `yaml:"false_string"`
	// Precision is the number of decimals for floats; -1 writes the shortest exact form.
	Precision int `yaml:"precision"`
}

func Default() *Config {
	return &Config{
		Files: FilesConfig{
			Obesity:         "Obesity_by_state_2024.csv",
			Income:          "S1901_Income_Last_12_Months.csv",
			Education:       "BRFSS_Prevalence_Data_Education.csv",
			HouseholdIncome: "BRFSS_Prevalence_Data_Household_Income.csv",
			Master:          "GLP1_State_Master.csv",
			Demographics:    "GLP1_Demographics.csv",
		},
		Affordability: AffordabilityConfig{
			ListPrice:    1349,
			WeeksPerYear: 52,
		},
		MedicaidStates: []string{
			"California", "Colorado", "Connecticut", "Hawaii", "Massachusetts",
			"Maryland", "Minnesota", "Montana", "Nevada", "New Mexico",
			"New York", "Oregon", "Washington",
		},
		Income: IncomeConfig{
			MedianLabel:  "Median income",
			FallbackRow:  11,
			ColumnMarker: "!!Households!!Estimate",
		},
		ObeseResponse: "Obese (BMI 30.0 - 99.8)",
		Output: OutputConfig{
			Separator:   ",",
			NullString:  "",
			InfString:   "inf",
			TrueString:  "True",
			FalseString: "False",
			Precision:   -1,
		},
	}
}

// Load reads path over the defaults. Fields missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Affordability.ListPrice <= 0 {
		return fmt.Errorf("affordability.list_price must be positive, got %v", c.Affordability.ListPrice)
	}

	if c.Affordability.WeeksPerYear <= 0 {
		return fmt.Errorf("affordability.weeks_per_year must be positive, got %v", c.Affordability.WeeksPerYear)
	}

	if c.Income.FallbackRow < 0 {
		return fmt.Errorf("income.fallback_row must not be negative, got %d", c.Income.FallbackRow)
	}

	if c.Income.ColumnMarker == "" {
		return fmt.Errorf("income.column_marker must be set")
	}

	if c.ObeseResponse == "" {
		return fmt.Errorf("obese_response must be set")
	}

	if utf8.RuneCountInString(c.Output.Separator) != 1 {
		return fmt.Errorf("output.separator must be one character, got %q", c.Output.Separator)
	}

	if c.Output.InfString == "" {
		return fmt.Errorf("output.inf_string must be set")
	}

	if c.Output.Precision < -1 {
		return fmt.Errorf("output.precision must be -1 or more, got %d", c.Output.Precision)
	}

	names := map[string]string{
		"files.obesity":          c.Files.Obesity,
		"files.income":           c.Files.Income,
		"files.education":        c.Files.Education,
		"files.household_income": c.Files.HouseholdIncome,
		"files.master":           c.Files.Master,
		"files.demographics":     c.Files.Demographics,
	}
	for key, name := range names {
		if name == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}

	return nil
}
