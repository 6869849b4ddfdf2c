// Package extract scans free text for known drug names and adjacent dosage
// expressions, producing medication mention strings of the form
// "<drug> <dose> <unit>" (or the bare drug name when no dosage is found
// nearby).
package extract

import (
	"regexp"
	"strings"

	"github.com/rxscribe/scribescore/internal/correct"
	"github.com/rxscribe/scribescore/internal/lexicon"
)

// dosePattern matches a decimal dose amount, e.g. "50" or "2.5".
const dosePattern = `(\d+(?:\.\d+)?)`

// unitPattern matches a dosage unit. Longer spellings are folded to "mg" by
// normalizeUnit.
const unitPattern = `(mg|milligrams?)`

// drugPatterns holds the compiled dosage-adjacency patterns for one drug, in
// priority order. The first pattern that yields at least one match wins.
type drugPatterns struct {
	name     string
	contains string // lowercased name for the substring pre-check
	patterns [4]*regexp.Regexp
}

// Option is a functional option for configuring an [Extractor].
type Option func(*Extractor)

// WithCorrector attaches a correction applier used when a caller asks for
// corrections to be applied before extraction. When nil (the default), the
// apply-corrections flag of [Extractor.Mentions] is a no-op.
func WithCorrector(a *correct.Applier) Option {
	return func(e *Extractor) {
		e.corrector = a
	}
}

// Extractor detects medication mentions in text. It precompiles all dosage
// patterns at construction and is read-only afterwards, so it is safe for
// concurrent use.
type Extractor struct {
	drugs     []drugPatterns
	corrector *correct.Applier
}

// New builds an Extractor for the drug list in lex.
func New(lex *lexicon.Lexicon, opts ...Option) *Extractor {
	e := &Extractor{drugs: make([]drugPatterns, 0, len(lex.Drugs))}
	for _, o := range opts {
		o(e)
	}

	for _, drug := range lex.Drugs {
		name := strings.ToLower(drug)
		q := regexp.QuoteMeta(name)
		e.drugs = append(e.drugs, drugPatterns{
			name:     name,
			contains: name,
			patterns: [4]*regexp.Regexp{
				// dose and unit after the drug, unit bounded.
				regexp.MustCompile(q + `\s+` + dosePattern + `\s*` + unitPattern + `\b`),
				// dose and unit before the drug, drug bounded.
				regexp.MustCompile(dosePattern + `\s*` + unitPattern + `\s+` + q + `\b`),
				// unbounded fallback of the first form.
				regexp.MustCompile(q + `\s+` + dosePattern + `\s*` + unitPattern),
				// unit (optionally hyphenated to the dose) directly before the
				// drug, no space required.
				regexp.MustCompile(dosePattern + `\s*-?\s*` + unitPattern + `\s*` + q),
			},
		})
	}
	return e
}

// Mentions returns the medication mentions found in text, ordered by the
// lexicon's drug list (not by position in the text). When applyCorrections is
// true and a corrector is attached, the correction table is applied to the
// text first.
//
// A drug that appears without any recognizable dosage nearby still counts and
// is reported as a bare mention. Multiple dosage occurrences for the same
// drug each produce a separate mention.
func (e *Extractor) Mentions(text string, applyCorrections bool) []string {
	if applyCorrections && e.corrector != nil {
		text, _ = e.corrector.Apply(text)
	}

	textLower := strings.ToLower(text)
	var found []string

	for _, dp := range e.drugs {
		if !strings.Contains(textLower, dp.contains) {
			continue
		}

		dosageFound := false
		for _, re := range dp.patterns {
			matches := re.FindAllStringSubmatch(textLower, -1)
			if len(matches) == 0 {
				continue
			}
			for _, m := range matches {
				dose, unit := m[1], normalizeUnit(m[2])
				found = append(found, dp.name+" "+dose+" "+unit)
			}
			dosageFound = true
			break
		}

		if !dosageFound {
			found = append(found, dp.name)
		}
	}

	return found
}

// normalizeUnit folds long-form unit spellings to the canonical abbreviation.
// A unit that starts with "mg" or contains "milligram" becomes "mg"; anything
// else passes through unchanged.
func normalizeUnit(unit string) string {
	if strings.HasPrefix(unit, "mg") || strings.Contains(unit, "milligram") {
		return "mg"
	}
	return unit
}
