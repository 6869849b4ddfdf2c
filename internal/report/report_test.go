package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rxscribe/scribescore/internal/report"
	"github.com/rxscribe/scribescore/internal/score"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	th := report.DefaultThresholds()

	tests := []struct {
		name    string
		wordAcc float64
		medAcc  float64
		want    report.Verdict
	}{
		{"both met", 96.5, 100, report.VerdictPass},
		{"exactly at thresholds", 95, 95, report.VerdictPass},
		{"word accuracy short", 94.99, 100, report.VerdictFail},
		{"medication accuracy short", 100, 90, report.VerdictFail},
		{"both short", 50, 50, report.VerdictFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &score.Report{WordAccuracy: tt.wordAcc, MedicationAccuracy: tt.medAcc}
			if got := report.Evaluate(r, th); got != tt.want {
				t.Errorf("Evaluate(%g%%, %g%%) = %q, want %q", tt.wordAcc, tt.medAcc, got, tt.want)
			}
		})
	}
}

func TestEvaluateEnhanced(t *testing.T) {
	t.Parallel()

	th := report.DefaultThresholds()

	tests := []struct {
		name    string
		wordAcc float64
		medAcc  float64
		want    report.Verdict
	}{
		{"both met", 97, 100, report.VerdictPass},
		{"promising medication accuracy", 80, 92, report.VerdictPromising},
		{"promising exactly at lower bar", 80, 90, report.VerdictPromising},
		{"word accuracy short but medications perfect", 94, 100, report.VerdictPromising},
		{"below promising", 80, 89.99, report.VerdictFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &score.EnhancedReport{
				Raw:       &score.Report{},
				Corrected: &score.Report{WordAccuracy: tt.wordAcc, MedicationAccuracy: tt.medAcc},
			}
			if got := report.EvaluateEnhanced(r, th); got != tt.want {
				t.Errorf("EvaluateEnhanced(%g%%, %g%%) = %q, want %q", tt.wordAcc, tt.medAcc, got, tt.want)
			}
		})
	}
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	r := &score.Report{
		WordAccuracy:          75,
		WordErrorRate:         25,
		MedicationAccuracy:    50,
		TotalMedications:      2,
		CorrectMedications:    1,
		ReferenceMedications:  []string{"sertraline 50 mg", "gabapentin 300 mg"},
		HypothesisMedications: []string{"sertraline 50 mg", "gabapentin 400 mg"},
	}

	var buf strings.Builder
	report.RenderText(&buf, r, report.DefaultThresholds())
	out := buf.String()

	for _, want := range []string{
		"Word Accuracy: 75%",
		"Word Error Rate: 25%",
		"Medications Found: 1/2",
		"✓ sertraline 50 mg",
		"✗ gabapentin 400 mg",
		"REQUIREMENTS NOT MET",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEnhancedText(t *testing.T) {
	t.Parallel()

	r := &score.EnhancedReport{
		Raw: &score.Report{
			WordAccuracy:         80,
			WordErrorRate:        20,
			TotalMedications:     1,
			ReferenceMedications: []string{"sertraline 50 mg"},
		},
		Corrected: &score.Report{
			WordAccuracy:          100,
			MedicationAccuracy:    100,
			TotalMedications:      1,
			CorrectMedications:    1,
			ReferenceMedications:  []string{"sertraline 50 mg"},
			HypothesisMedications: []string{"sertraline 50 mg"},
		},
		Improvements: score.Improvements{
			WordAccuracyGain:           20,
			MedicationAccuracyGain:     100,
			AdditionalMedicationsFound: 1,
		},
	}

	var buf strings.Builder
	report.RenderEnhancedText(&buf, r, report.DefaultThresholds())
	out := buf.String()

	for _, want := range []string{
		"RAW RESULTS",
		"CORRECTED RESULTS",
		"Word Accuracy Gain: +20%",
		"Additional Medications Found: +1",
		"✓ sertraline 50 mg",
		"SUCCESS: accuracy requirements met",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accuracy_results.json")
	r := &score.Report{WordAccuracy: 98.5, WordErrorRate: 1.5, MedicationAccuracy: 100}

	if err := report.WriteJSON(path, r); err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("file does not end with a newline")
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("written file is not valid JSON: %v", err)
	}
	if got["word_accuracy"] != 98.5 {
		t.Errorf("word_accuracy = %v, want 98.5", got["word_accuracy"])
	}
}

func TestOutputPaths(t *testing.T) {
	t.Parallel()

	if got, want := report.BasicOutputPath("out"), filepath.Join("out", "accuracy_results.json"); got != want {
		t.Errorf("BasicOutputPath = %q, want %q", got, want)
	}

	tests := []struct {
		hypPath string
		want    string
	}{
		{"transcripts/session1.txt", "enhanced_accuracy_results_session1.json"},
		{"session1.raw.txt", "enhanced_accuracy_results_session1.json"},
		{"plain", "enhanced_accuracy_results_plain.json"},
	}
	for _, tt := range tests {
		got := report.EnhancedOutputPath("out", tt.hypPath)
		want := filepath.Join("out", tt.want)
		if got != want {
			t.Errorf("EnhancedOutputPath(%q) = %q, want %q", tt.hypPath, got, want)
		}
	}
}
