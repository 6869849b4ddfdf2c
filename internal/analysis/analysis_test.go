package analysis_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxscribe/scribescore/internal/analysis"
	"github.com/rxscribe/scribescore/internal/correct"
	"github.com/rxscribe/scribescore/internal/extract"
	"github.com/rxscribe/scribescore/internal/lexicon"
	"github.com/rxscribe/scribescore/internal/score"
)

func newRunner(t *testing.T) *analysis.Runner {
	t.Helper()
	lex := lexicon.Default()
	applier, err := correct.New(lex)
	if err != nil {
		t.Fatalf("correct.New returned error: %v", err)
	}
	extractor := extract.New(lex, extract.WithCorrector(applier))
	return analysis.NewRunner(score.New(extractor, applier))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ref := writeFile(t, dir, "reference.txt", "start sertraline 50 mg daily")
	hyp := writeFile(t, dir, "hypothesis.txt", "start sertraline 50 mg daily")

	r, err := newRunner(t).Analyze(ref, hyp)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if r.WordAccuracy != 100 {
		t.Errorf("WordAccuracy = %v, want 100", r.WordAccuracy)
	}
	if r.MedicationAccuracy != 100 {
		t.Errorf("MedicationAccuracy = %v, want 100", r.MedicationAccuracy)
	}
}

func TestAnalyzeEnhanced(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ref := writeFile(t, dir, "reference.txt", "start sertraline 50 mg daily")
	hyp := writeFile(t, dir, "hypothesis.txt", "start sertralene 50 mg daily")

	r, err := newRunner(t).AnalyzeEnhanced(ref, hyp)
	if err != nil {
		t.Fatalf("AnalyzeEnhanced returned error: %v", err)
	}
	if r.Raw.MedicationAccuracy != 0 {
		t.Errorf("Raw.MedicationAccuracy = %v, want 0", r.Raw.MedicationAccuracy)
	}
	if r.Corrected.MedicationAccuracy != 100 {
		t.Errorf("Corrected.MedicationAccuracy = %v, want 100", r.Corrected.MedicationAccuracy)
	}
	if len(r.CorrectionsApplied) != 1 {
		t.Errorf("CorrectionsApplied = %v, want one entry", r.CorrectionsApplied)
	}
}

func TestAnalyzeMissingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := writeFile(t, dir, "reference.txt", "text")
	missing := filepath.Join(dir, "nope.txt")

	runner := newRunner(t)

	if _, err := runner.Analyze(missing, existing); !errors.Is(err, analysis.ErrFileNotFound) {
		t.Errorf("Analyze with missing reference: err = %v, want ErrFileNotFound", err)
	}
	if _, err := runner.Analyze(existing, missing); !errors.Is(err, analysis.ErrFileNotFound) {
		t.Errorf("Analyze with missing hypothesis: err = %v, want ErrFileNotFound", err)
	}
	if _, err := runner.AnalyzeEnhanced(missing, existing); !errors.Is(err, analysis.ErrFileNotFound) {
		t.Errorf("AnalyzeEnhanced with missing reference: err = %v, want ErrFileNotFound", err)
	}
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	err := &analysis.Error{Op: "read reference", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("errors.Is does not reach the wrapped error")
	}
	if got := err.Error(); got != "analysis failed: read reference: boom" {
		t.Errorf("Error() = %q", got)
	}
}
