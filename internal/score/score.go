// Package score computes word-level and medication-level accuracy of a
// transcription hypothesis against reference text.
//
// The word-level score aligns the two lowercased token sequences with a
// greedy longest-common-block decomposition (see [MatchingBlocks]) and
// counts the reference tokens recovered. The medication-level score compares
// the mention lists produced by the extract package. Enhanced scoring
// additionally rewrites the hypothesis through the correction applier and
// reports both results plus the deltas.
package score

import (
	"math"
	"slices"
	"strings"

	"github.com/rxscribe/scribescore/internal/correct"
	"github.com/rxscribe/scribescore/internal/extract"
)

// Report holds the accuracy metrics for one reference/hypothesis pair.
// It is a value object: produced fresh per comparison, never mutated after.
type Report struct {
	// WordAccuracy is the percentage of reference tokens recovered by the
	// alignment, rounded to two decimals.
	WordAccuracy float64 `json:"word_accuracy"`

	// WordErrorRate is 100 − WordAccuracy.
	WordErrorRate float64 `json:"word_error_rate"`

	// MedicationAccuracy is the percentage of reference mentions that appear
	// verbatim in the hypothesis mention list.
	MedicationAccuracy float64 `json:"medication_accuracy"`

	// TotalMedications counts the mentions extracted from the reference.
	TotalMedications int `json:"total_medications"`

	// CorrectMedications counts reference mentions found in the hypothesis.
	CorrectMedications int `json:"correct_medications"`

	// ReferenceMedications and HypothesisMedications are the extracted
	// mention lists.
	ReferenceMedications  []string `json:"original_medications"`
	HypothesisMedications []string `json:"transcribed_medications"`
}

// Improvements quantifies what the correction pass gained.
type Improvements struct {
	WordAccuracyGain           float64 `json:"word_accuracy_gain"`
	MedicationAccuracyGain     float64 `json:"medication_accuracy_gain"`
	AdditionalMedicationsFound int     `json:"additional_medications_found"`
}

// EnhancedReport pairs the raw and corrected scoring results.
type EnhancedReport struct {
	// Raw scores the hypothesis as received; Corrected scores it after the
	// correction applier has rewritten it.
	Raw       *Report `json:"raw_results"`
	Corrected *Report `json:"corrected_results"`

	// Improvements holds the deltas between Corrected and Raw.
	Improvements Improvements `json:"improvements"`

	// CorrectionsApplied lists every substitution made, in application order.
	CorrectionsApplied []correct.Correction `json:"corrections_applied"`

	// CorrectedText is the hypothesis after correction.
	CorrectedText string `json:"transcribed_corrected_text"`
}

// Scorer combines an extractor and a correction applier into the accuracy
// calculation. It is stateless across calls and safe for concurrent use.
type Scorer struct {
	extractor *extract.Extractor
	applier   *correct.Applier
}

// New returns a Scorer. applier may be nil when only [Scorer.Score] is used;
// [Scorer.ScoreEnhanced] requires it.
func New(extractor *extract.Extractor, applier *correct.Applier) *Scorer {
	return &Scorer{extractor: extractor, applier: applier}
}

// Score compares hypothesis against reference and returns the accuracy
// report. No corrections are applied.
func (s *Scorer) Score(reference, hypothesis string) *Report {
	refMeds := s.extractor.Mentions(reference, false)
	hypMeds := s.extractor.Mentions(hypothesis, false)
	return buildReport(reference, hypothesis, refMeds, hypMeds)
}

// ScoreEnhanced scores the hypothesis twice — once as received and once after
// the correction applier has rewritten it — and reports both results plus the
// deltas and the corrections actually applied.
func (s *Scorer) ScoreEnhanced(reference, hypothesis string) *EnhancedReport {
	refMeds := s.extractor.Mentions(reference, false)
	rawMeds := s.extractor.Mentions(hypothesis, false)

	correctedText, corrections := s.applier.Apply(hypothesis)
	correctedMeds := s.extractor.Mentions(correctedText, true)

	raw := buildReport(reference, hypothesis, refMeds, rawMeds)
	corrected := buildReport(reference, correctedText, refMeds, correctedMeds)

	return &EnhancedReport{
		Raw:       raw,
		Corrected: corrected,
		Improvements: Improvements{
			WordAccuracyGain:           round2(corrected.WordAccuracy - raw.WordAccuracy),
			MedicationAccuracyGain:     round2(corrected.MedicationAccuracy - raw.MedicationAccuracy),
			AdditionalMedicationsFound: corrected.CorrectMedications - raw.CorrectMedications,
		},
		CorrectionsApplied: corrections,
		CorrectedText:      correctedText,
	}
}

// buildReport computes the word-level and medication-level metrics for one
// reference/hypothesis text pair with the given mention lists.
func buildReport(reference, hypothesis string, refMeds, hypMeds []string) *Report {
	refWords := tokenize(reference)
	hypWords := tokenize(hypothesis)

	matched := 0
	for _, bl := range MatchingBlocks(refWords, hypWords) {
		matched += bl.Size
	}

	wordAccuracy := 0.0
	if len(refWords) > 0 {
		wordAccuracy = round2(float64(matched) / float64(len(refWords)) * 100)
	}

	hits := 0
	for _, med := range refMeds {
		if slices.Contains(hypMeds, med) {
			hits++
		}
	}
	medAccuracy := 0.0
	if len(refMeds) > 0 {
		medAccuracy = round2(float64(hits) / float64(len(refMeds)) * 100)
	}

	return &Report{
		WordAccuracy:          wordAccuracy,
		WordErrorRate:         round2(100 - wordAccuracy),
		MedicationAccuracy:    medAccuracy,
		TotalMedications:      len(refMeds),
		CorrectMedications:    hits,
		ReferenceMedications:  refMeds,
		HypothesisMedications: hypMeds,
	}
}

// tokenize lowercases text and splits it on whitespace.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// round2 rounds to two decimal places, matching the precision the reports
// are rendered with.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
