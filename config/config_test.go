package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glp1.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1349.0, cfg.Affordability.ListPrice)
	assert.Equal(t, 52.0, cfg.Affordability.WeeksPerYear)
	assert.Len(t, cfg.MedicaidStates, 13)
	assert.Contains(t, cfg.MedicaidStates, "New Mexico")
	assert.Equal(t, 11, cfg.Income.FallbackRow)
	assert.Equal(t, "Obese (BMI 30.0 - 99.8)", cfg.ObeseResponse)
	assert.Equal(t, "GLP1_State_Master.csv", cfg.Files.Master)
	assert.Equal(t, OutputConfig{Separator: ",", InfString: "inf", TrueString: "True", FalseString: "False", Precision: -1}, cfg.Output)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
root: /srv/glp1
affordability:
  list_price: 499
medicaid_states: [Utah, Ohio]
files:
  master: master.csv
output:
  precision: 2
  null_string: NA
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/glp1", cfg.Root)
	assert.Equal(t, 499.0, cfg.Affordability.ListPrice)
	assert.Equal(t, 52.0, cfg.Affordability.WeeksPerYear)
	assert.Equal(t, []string{"Utah", "Ohio"}, cfg.MedicaidStates)
	assert.Equal(t, "master.csv", cfg.Files.Master)
	assert.Equal(t, "GLP1_Demographics.csv", cfg.Files.Demographics)
	assert.Equal(t, 2, cfg.Output.Precision)
	assert.Equal(t, "NA", cfg.Output.NullString)
	assert.Equal(t, "inf", cfg.Output.InfString)
	assert.Equal(t, ",", cfg.Output.Separator)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "affordability: [1, 2"))
	assert.NotNil(t, err)

	_, err = Load(writeConfig(t, "affordability:\n  weeks_per_year: 0\n"))
	assert.ErrorContains(t, err, "weeks_per_year")

	_, err = Load(writeConfig(t, "files:\n  obesity: \"\"\n"))
	assert.ErrorContains(t, err, "files.obesity")

	_, err = Load(writeConfig(t, "income:\n  fallback_row: -1\n"))
	assert.ErrorContains(t, err, "fallback_row")

	_, err = Load(writeConfig(t, "output:\n  separator: \";;\"\n"))
	assert.ErrorContains(t, err, "output.separator")

	_, err = Load(writeConfig(t, "output:\n  inf_string: \"\"\n"))
	assert.ErrorContains(t, err, "output.inf_string")

	_, err = Load(writeConfig(t, "output:\n  precision: -2\n"))
	assert.ErrorContains(t, err, "output.precision")
}
