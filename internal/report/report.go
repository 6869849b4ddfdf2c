// Package report renders accuracy reports as human-readable text, persists
// them as JSON records, and evaluates them against the pass/fail thresholds.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxscribe/scribescore/internal/score"
)

// Thresholds are the accuracy requirements a transcription run is judged
// against.
type Thresholds struct {
	// WordAccuracy and MedicationAccuracy must both be met for a strict pass.
	WordAccuracy       float64
	MedicationAccuracy float64

	// PromisingMedicationAccuracy is the lower medication-accuracy bar for
	// the "promising" tier of enhanced runs.
	PromisingMedicationAccuracy float64
}

// DefaultThresholds returns the standard requirements: 95% word accuracy and
// 95% medication accuracy for a pass, 90% medication accuracy for promising.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WordAccuracy:                95,
		MedicationAccuracy:          95,
		PromisingMedicationAccuracy: 90,
	}
}

// Verdict is the outcome of evaluating a report against [Thresholds].
type Verdict string

const (
	// VerdictPass means both accuracy requirements were met.
	VerdictPass Verdict = "pass"

	// VerdictPromising means the corrected medication accuracy cleared the
	// lower bar even though the strict requirements were missed. Only
	// produced for enhanced runs.
	VerdictPromising Verdict = "promising"

	// VerdictFail means the requirements were not met.
	VerdictFail Verdict = "fail"
)

// Evaluate judges a basic report: pass when both word accuracy and medication
// accuracy meet the thresholds, fail otherwise.
func Evaluate(r *score.Report, t Thresholds) Verdict {
	if r.WordAccuracy >= t.WordAccuracy && r.MedicationAccuracy >= t.MedicationAccuracy {
		return VerdictPass
	}
	return VerdictFail
}

// EvaluateEnhanced judges an enhanced report on its corrected results, with
// the additional promising tier for runs whose corrected medication accuracy
// clears the lower bar.
func EvaluateEnhanced(r *score.EnhancedReport, t Thresholds) Verdict {
	if r.Corrected.WordAccuracy >= t.WordAccuracy && r.Corrected.MedicationAccuracy >= t.MedicationAccuracy {
		return VerdictPass
	}
	if r.Corrected.MedicationAccuracy >= t.PromisingMedicationAccuracy {
		return VerdictPromising
	}
	return VerdictFail
}

// RenderText writes the human-readable form of a basic report to w, ending
// with the verdict.
func RenderText(w io.Writer, r *score.Report, t Thresholds) {
	fmt.Fprintln(w, "=== TRANSCRIPTION ACCURACY ANALYSIS ===")
	renderMetrics(w, r)

	fmt.Fprintln(w, "\nReference medications:")
	for _, med := range r.ReferenceMedications {
		fmt.Fprintf(w, "  - %s\n", med)
	}

	fmt.Fprintln(w, "\nTranscribed medications:")
	renderMentionList(w, r.HypothesisMedications, r.ReferenceMedications)

	renderVerdict(w, Evaluate(r, t), r.WordAccuracy, r.MedicationAccuracy, t)
}

// RenderEnhancedText writes the human-readable form of an enhanced report to
// w: raw results, corrected results, improvements, the corrections applied,
// the mention lists, and the verdict.
func RenderEnhancedText(w io.Writer, r *score.EnhancedReport, t Thresholds) {
	refMeds := r.Raw.ReferenceMedications

	fmt.Fprintln(w, "=== ENHANCED TRANSCRIPTION ACCURACY ANALYSIS ===")

	fmt.Fprintln(w, "\nRAW RESULTS (no corrections)")
	renderMetrics(w, r.Raw)

	fmt.Fprintln(w, "\nCORRECTED RESULTS (with lexicon)")
	renderMetrics(w, r.Corrected)

	fmt.Fprintln(w, "\nIMPROVEMENTS")
	fmt.Fprintf(w, "Word Accuracy Gain: %+g%%\n", r.Improvements.WordAccuracyGain)
	fmt.Fprintf(w, "Medication Accuracy Gain: %+g%%\n", r.Improvements.MedicationAccuracyGain)
	fmt.Fprintf(w, "Additional Medications Found: %+d\n", r.Improvements.AdditionalMedicationsFound)

	fmt.Fprintf(w, "\nCORRECTIONS APPLIED (%d)\n", len(r.CorrectionsApplied))
	for _, c := range r.CorrectionsApplied {
		fmt.Fprintf(w, "  %q -> %q (%s)\n", c.Original, c.Corrected, c.Method)
	}

	fmt.Fprintln(w, "\nReference medications:")
	for _, med := range refMeds {
		fmt.Fprintf(w, "  - %s\n", med)
	}

	fmt.Fprintln(w, "\nRaw transcribed medications:")
	renderMentionList(w, r.Raw.HypothesisMedications, refMeds)

	fmt.Fprintln(w, "\nCorrected transcribed medications:")
	renderMentionList(w, r.Corrected.HypothesisMedications, refMeds)

	verdict := EvaluateEnhanced(r, t)
	renderVerdict(w, verdict, r.Corrected.WordAccuracy, r.Corrected.MedicationAccuracy, t)
}

// renderMetrics prints the four headline numbers of one report.
func renderMetrics(w io.Writer, r *score.Report) {
	fmt.Fprintf(w, "Word Accuracy: %g%%\n", r.WordAccuracy)
	fmt.Fprintf(w, "Word Error Rate: %g%%\n", r.WordErrorRate)
	fmt.Fprintf(w, "Medication Accuracy: %g%%\n", r.MedicationAccuracy)
	fmt.Fprintf(w, "Medications Found: %d/%d\n", r.CorrectMedications, r.TotalMedications)
}

// renderMentionList prints mentions with a check mark for those present in
// the reference list.
func renderMentionList(w io.Writer, mentions, reference []string) {
	for _, med := range mentions {
		indicator := "✗"
		for _, ref := range reference {
			if med == ref {
				indicator = "✓"
				break
			}
		}
		fmt.Fprintf(w, "  %s %s\n", indicator, med)
	}
}

// renderVerdict prints the pass/fail summary with the specific requirement
// misses spelled out.
func renderVerdict(w io.Writer, v Verdict, wordAcc, medAcc float64, t Thresholds) {
	switch v {
	case VerdictPass:
		fmt.Fprintln(w, "\nSUCCESS: accuracy requirements met")
		fmt.Fprintf(w, "  word accuracy %g%% >= %g%%\n", wordAcc, t.WordAccuracy)
		fmt.Fprintf(w, "  medication accuracy %g%% >= %g%%\n", medAcc, t.MedicationAccuracy)
	case VerdictPromising:
		fmt.Fprintln(w, "\nPROMISING: significant improvement, requirements not fully met")
		fmt.Fprintf(w, "  word accuracy %g%% (need %g%%)\n", wordAcc, t.WordAccuracy)
		fmt.Fprintf(w, "  medication accuracy %g%% (need %g%%, promising at %g%%)\n",
			medAcc, t.MedicationAccuracy, t.PromisingMedicationAccuracy)
	default:
		fmt.Fprintln(w, "\nREQUIREMENTS NOT MET:")
		if wordAcc < t.WordAccuracy {
			fmt.Fprintf(w, "  word accuracy %g%% < %g%%\n", wordAcc, t.WordAccuracy)
		}
		if medAcc < t.MedicationAccuracy {
			fmt.Fprintf(w, "  medication accuracy %g%% < %g%%\n", medAcc, t.MedicationAccuracy)
		}
	}
}

// WriteJSON marshals v with indentation and writes it to path.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal json: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("report: write %q: %w", path, err)
	}
	return nil
}

// BasicOutputPath returns the JSON record location for a basic analysis.
func BasicOutputPath(dir string) string {
	return filepath.Join(dir, "accuracy_results.json")
}

// EnhancedOutputPath returns the JSON record location for an enhanced
// analysis, derived from the hypothesis file name: its base name up to the
// first dot.
func EnhancedOutputPath(dir, hypothesisPath string) string {
	base := filepath.Base(hypothesisPath)
	stem, _, _ := strings.Cut(base, ".")
	return filepath.Join(dir, "enhanced_accuracy_results_"+stem+".json")
}
