package pipeline

import (
	"errors"
	"os"
)

var (
	ErrMissingFile    = errors.New("missing file")
	ErrNoDemographics = errors.New("no demographic data processed")
	ErrNoIncomeRow    = errors.New("median income row not found")
)

// Status is the outcome of a stage.
type Status uint8

const (
	StatusFailed Status = iota
	StatusSucceeded
)

func (s Status) String() string {
	if s == StatusSucceeded {
		return "succeeded"
	}

	return "failed"
}

// StageResult reports what one stage did. Err is set iff Status is StatusFailed, in which case
// nothing was written.
type StageResult struct {
	Stage  string
	Status Status

	Output string
	Rows   int

	Warnings []string
	Err      error
}

func (r *StageResult) OK() bool {
	return r != nil && r.Status == StatusSucceeded
}

func (r *StageResult) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *StageResult) fail(e error) *StageResult {
	r.Status, r.Err = StatusFailed, e
	r.Output, r.Rows = "", 0

	return r
}

// Report holds the results of one run of the pipeline.
type Report struct {
	RunID string

	Master       *StageResult
	Demographics *StageResult
}

// OK is true if both stages succeeded.
func (r *Report) OK() bool {
	return r.Master.OK() && r.Demographics.OK()
}

// Outputs lists the files written by the run.
func (r *Report) Outputs() []string {
	var out []string
	for _, s := range []*StageResult{r.Master, r.Demographics} {
		if s.OK() {
			out = append(out, s.Output)
		}
	}

	return out
}

func requireFile(path string) error {
	if _, e := os.Stat(path); e != nil {
		if errors.Is(e, os.ErrNotExist) {
			return &missingFileError{path: path}
		}

		return e
	}

	return nil
}

type missingFileError struct {
	path string
}

func (m *missingFileError) Error() string {
	return "Missing file: " + m.path
}

func (m *missingFileError) Unwrap() error {
	return ErrMissingFile
}
