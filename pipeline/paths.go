package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/invertedv/glp1/config"
	"go.uber.org/zap"
)

// Paths are the directories and files the pipeline reads and writes.
type Paths struct {
	Root         string
	RawDir       string
	ProcessedDir string

	Obesity         string
	Income          string
	Education       string
	HouseholdIncome string

	Master       string
	Demographics string
}

func NewPaths(root string, files config.FilesConfig) *Paths {
	raw := filepath.Join(root, "data", "raw")
	processed := filepath.Join(root, "data", "processed")

	return &Paths{
		Root:         root,
		RawDir:       raw,
		ProcessedDir: processed,

		Obesity:         filepath.Join(raw, files.Obesity),
		Income:          filepath.Join(raw, files.Income),
		Education:       filepath.Join(raw, files.Education),
		HouseholdIncome: filepath.Join(raw, files.HouseholdIncome),

		Master:       filepath.Join(processed, files.Master),
		Demographics: filepath.Join(processed, files.Demographics),
	}
}

// ProjectRoot returns the grandparent directory of location, so a program at <root>/bin/glp1 has root <root>.
func ProjectRoot(location string) (string, error) {
	abs, e := filepath.Abs(location)
	if e != nil {
		return "", e
	}

	return filepath.Dir(filepath.Dir(abs)), nil
}

// ExecutableRoot is ProjectRoot of the running executable.
func ExecutableRoot() (string, error) {
	var (
		exe string
		e   error
	)

	if exe, e = os.Executable(); e != nil {
		return "", fmt.Errorf("locate executable: %w", e)
	}

	if resolved, e := filepath.EvalSymlinks(exe); e == nil {
		exe = resolved
	}

	return ProjectRoot(exe)
}

func (p *Paths) log(logger *zap.Logger) {
	logger.Info("--- GLP-1 Data Pipeline Initialized ---", zap.String("root", p.Root))
	logger.Info("Reading from: " + p.RawDir)
	logger.Info("Saving to:    " + p.ProcessedDir)
}
