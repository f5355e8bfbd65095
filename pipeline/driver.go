// Package pipeline builds the GLP-1 state master and demographics tables from the raw survey extracts.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/invertedv/glp1/config"
	"github.com/invertedv/glp1/frame"
	"go.uber.org/zap"
)

const previewRows = 10

type Pipeline struct {
	cfg    *config.Config
	paths  *Paths
	files  *frame.Files
	logger *zap.Logger
	runID  string
}

// New returns a Pipeline that reads and writes under paths. A nil cfg means config.Default(),
// a nil logger discards output.
func New(cfg *config.Config, paths *Paths, logger *zap.Logger) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	if e := cfg.Validate(); e != nil {
		return nil, e
	}

	if paths == nil {
		return nil, fmt.Errorf("no paths in pipeline.New")
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		files *frame.Files
		e     error
	)
	if files, e = outputFiles(cfg.Output); e != nil {
		return nil, fmt.Errorf("output settings: %w", e)
	}

	runID := uuid.NewString()

	return &Pipeline{
		cfg:    cfg,
		paths:  paths,
		files:  files,
		logger: logger.With(zap.String("run_id", runID)),
		runID:  runID,
	}, nil
}

// Run builds the state master table, then the demographics table. The second stage runs whatever
// happened in the first.
func (p *Pipeline) Run() *Report {
	p.paths.log(p.logger)

	rpt := &Report{RunID: p.runID}

	p.logger.Info("[Step 1/2] Building State Master Table...")
	rpt.Master = p.StateMaster()

	p.logger.Info("[Step 2/2] Building Demographics Table...")
	rpt.Demographics = p.Demographics()

	p.logger.Info("--- Pipeline Complete ---",
		zap.Stringer("master", rpt.Master.Status),
		zap.Stringer("demographics", rpt.Demographics.Status))

	return rpt
}

// StateMaster runs stage 1 and writes its table.
func (p *Pipeline) StateMaster() *StageResult {
	res := &StageResult{Stage: "state master"}

	var (
		df *frame.Frame
		e  error
	)
	if df, e = p.BuildMaster(res); e == nil {
		e = p.save(p.paths.Master, df, res)
	}

	if e != nil {
		p.logger.Error("CRITICAL ERROR in Step 1", zap.Error(e))
		return res.fail(e)
	}

	p.logMasterSummary(df)

	return res
}

// Demographics runs stage 2 and writes its table.
func (p *Pipeline) Demographics() *StageResult {
	res := &StageResult{Stage: "demographics"}

	var (
		df *frame.Frame
		e  error
	)
	if df, e = p.BuildDemographics(res); e == nil {
		e = p.save(p.paths.Demographics, df, res)
	}

	if e != nil {
		if errors.Is(e, ErrNoDemographics) {
			p.logger.Error("Error: No demographic data processed.")
		} else {
			p.logger.Error("CRITICAL ERROR in Step 2", zap.Error(e))
		}

		return res.fail(e)
	}

	p.logDemographicsSummary(df)

	return res
}

func (p *Pipeline) save(path string, df *frame.Frame, res *StageResult) error {
	if e := os.MkdirAll(p.paths.ProcessedDir, 0o755); e != nil {
		return fmt.Errorf("create %s: %w", p.paths.ProcessedDir, e)
	}

	if e := p.files.Save(path, df); e != nil {
		return e
	}

	res.Status, res.Output, res.Rows = StatusSucceeded, path, df.RowCount()
	p.logger.Info(fmt.Sprintf("Success: Saved '%s'", filepath.Base(path)), zap.Int("rows", df.RowCount()))
	p.logger.Debug("preview", zap.String("file", filepath.Base(path)), zap.Stringer("table", df.Head(previewRows)))

	return nil
}

// outputFiles writes tables the way out describes.
func outputFiles(out config.OutputConfig) (*frame.Files, error) {
	sep, _ := utf8.DecodeRuneInString(out.Separator)

	return frame.NewFiles(
		frame.FileSep(sep),
		frame.FileNullString(out.NullString),
		frame.FileInfString(out.InfString),
		frame.FileBoolStrings(out.TrueString, out.FalseString),
		frame.FilePrecision(out.Precision))
}

func (p *Pipeline) warn(res *StageResult, msg string, fields ...zap.Field) {
	res.warn(msg)
	p.logger.Warn(msg, fields...)
}
