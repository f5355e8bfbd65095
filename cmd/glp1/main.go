package main

import (
	"fmt"
	"os"

	"github.com/invertedv/glp1/config"
	"github.com/invertedv/glp1/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	rootDir    string
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "glp1",
	Short: "Build the GLP-1 state master and demographics tables",
	Long: `glp1 reads the obesity, ACS S1901 income and BRFSS extracts in <root>/data/raw
and writes GLP1_State_Master.csv and GLP1_Demographics.csv to <root>/data/processed.

<root> is the parent of the directory holding the executable unless --root is given.
A stage that fails is reported and the next stage still runs.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if logger, err = newLogger(verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPipeline,
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug detail, including table previews")
	rootCmd.Flags().StringVar(&rootDir, "root", "", "project root holding data/raw and data/processed")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file overriding the built-in constants")
}

// newLogger logs to stdout in console format; progress lines are the pipeline's user-facing output.
func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.Sampling = nil
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	root := rootDir
	if root == "" {
		root = cfg.Root
	}

	if root == "" {
		var err error
		if root, err = pipeline.ExecutableRoot(); err != nil {
			return err
		}
	}

	p, err := pipeline.New(cfg, pipeline.NewPaths(root, cfg.Files), logger)
	if err != nil {
		return err
	}

	// stage failures are in the log; the run itself still succeeds
	rpt := p.Run()
	logger.Debug("outputs", zap.Strings("files", rpt.Outputs()), zap.Bool("complete", rpt.OK()))

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
