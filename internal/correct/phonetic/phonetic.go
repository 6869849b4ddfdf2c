// Package phonetic resolves single mis-transcribed words to known drug names
// using Double Metaphone phonetic encoding combined with Jaro-Winkler string
// similarity for ranked candidate selection.
//
// The algorithm proceeds in two stages:
//
//  1. Phonetic candidate filtering: Double Metaphone codes are computed for
//     the input word and for each drug name. A drug whose codes overlap the
//     input's becomes a phonetic candidate.
//
//  2. Jaro-Winkler ranking: among phonetic candidates, the drug with the
//     highest Jaro-Winkler similarity (case-insensitive) is selected,
//     provided its score exceeds the configurable phonetic threshold.
//
//     When no phonetic candidate is found, a secondary pass tests pure
//     Jaro-Winkler similarity against all drugs using a higher fuzzy
//     threshold (default 0.85).
package phonetic

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// Option is a functional option for configuring a [Matcher].
type Option func(*Matcher)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched drug to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// phonetic match is found and the matcher falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.fuzzyThreshold = threshold
	}
}

// Matcher resolves words to drug names by pronunciation similarity.
// All methods are safe for concurrent use — the Matcher is read-only after
// construction.
type Matcher struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// New returns a new [Matcher] configured with the supplied options.
// Default thresholds are 0.70 for phonetic matches and 0.85 for fuzzy
// fallback matches.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Match attempts to find the drug from drugs that is most phonetically
// similar to word.
//
// Return values:
//   - corrected — the best-matching drug name from drugs.
//   - confidence — Jaro-Winkler score in [0.0, 1.0].
//   - matched — true when a sufficiently similar drug was found.
//
// When matched is false, corrected equals word unchanged and confidence is 0.
func (m *Matcher) Match(word string, drugs []string) (corrected string, confidence float64, matched bool) {
	wordLower := strings.ToLower(strings.TrimSpace(word))
	if wordLower == "" || len(drugs) == 0 {
		return word, 0, false
	}

	inputPrimary, inputSecondary := matchr.DoubleMetaphone(wordLower)

	type candidate struct {
		drug     string
		score    float64
		phonetic bool
	}
	var best candidate

	for _, drug := range drugs {
		drugLower := strings.ToLower(strings.TrimSpace(drug))
		if drugLower == "" {
			continue
		}

		dp, ds := matchr.DoubleMetaphone(drugLower)
		phoneticMatch := codesOverlap(inputPrimary, inputSecondary, dp, ds)

		jwScore := matchr.JaroWinkler(wordLower, drugLower, false)

		if phoneticMatch {
			if jwScore >= m.phoneticThreshold {
				if !best.phonetic || jwScore > best.score {
					best = candidate{drug: drug, score: jwScore, phonetic: true}
				}
			}
		} else if !best.phonetic {
			if jwScore >= m.fuzzyThreshold && jwScore > best.score {
				best = candidate{drug: drug, score: jwScore, phonetic: false}
			}
		}
	}

	if best.drug != "" {
		return best.drug, best.score, true
	}
	return word, 0, false
}

// codesOverlap reports whether any non-empty code from the first pair equals
// any non-empty code from the second pair.
func codesOverlap(a1, a2, b1, b2 string) bool {
	for _, a := range [2]string{a1, a2} {
		if a == "" {
			continue
		}
		if a == b1 || (b2 != "" && a == b2) {
			return true
		}
	}
	return false
}
