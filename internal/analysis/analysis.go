// Package analysis drives one accuracy comparison: it reads the reference
// and hypothesis files, runs the scorer, and maps failures onto an explicit
// error kind so callers can distinguish a missing input file from a broken
// analysis.
package analysis

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rxscribe/scribescore/internal/score"
)

// ErrFileNotFound marks a missing input file. Test with [errors.Is].
var ErrFileNotFound = errors.New("input file not found")

// Error wraps any analysis failure that is not a missing input file.
type Error struct {
	// Op names the step that failed (e.g., "read reference").
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("analysis failed: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Runner performs file-based accuracy comparisons. It holds no per-run
// state and is safe for concurrent use.
type Runner struct {
	scorer *score.Scorer
}

// NewRunner returns a Runner using the given scorer.
func NewRunner(s *score.Scorer) *Runner {
	return &Runner{scorer: s}
}

// Analyze reads both files and returns the basic accuracy report.
// Returns an error wrapping [ErrFileNotFound] when either input is missing,
// or an [*Error] for any other failure.
func (r *Runner) Analyze(referencePath, hypothesisPath string) (*score.Report, error) {
	reference, hypothesis, err := readInputs(referencePath, hypothesisPath)
	if err != nil {
		return nil, err
	}
	return r.scorer.Score(reference, hypothesis), nil
}

// AnalyzeEnhanced reads both files and returns the enhanced report: raw and
// corrected results plus the corrections applied. Error semantics match
// [Runner.Analyze].
func (r *Runner) AnalyzeEnhanced(referencePath, hypothesisPath string) (*score.EnhancedReport, error) {
	reference, hypothesis, err := readInputs(referencePath, hypothesisPath)
	if err != nil {
		return nil, err
	}
	return r.scorer.ScoreEnhanced(reference, hypothesis), nil
}

func readInputs(referencePath, hypothesisPath string) (reference, hypothesis string, err error) {
	reference, err = readInput("read reference", referencePath)
	if err != nil {
		return "", "", err
	}
	hypothesis, err = readInput("read hypothesis", hypothesisPath)
	if err != nil {
		return "", "", err
	}
	return reference, hypothesis, nil
}

func readInput(op, path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return "", &Error{Op: op, Err: err}
	}
	return string(data), nil
}
