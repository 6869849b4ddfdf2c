// Package correct rewrites transcribed text using the lexicon's correction
// table, replacing known mis-transcriptions with their canonical drug and
// unit names before the text is scored.
//
// The table pass is deliberately literal: rules are applied in table order,
// each over the text produced by the previous ones, so a later rule can
// re-match text an earlier rule emitted. That ordering sensitivity is part
// of the contract.
//
// An optional second stage resolves words the table does not list by
// pronunciation similarity (see the phonetic subpackage). It is off unless a
// [Matcher] is attached with [WithPhoneticMatcher].
package correct

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rxscribe/scribescore/internal/lexicon"
)

// Method values recorded on a [Correction].
const (
	// MethodTable marks a substitution produced by the correction table.
	MethodTable = "table"

	// MethodPhonetic marks a substitution produced by the phonetic matcher.
	MethodPhonetic = "phonetic"
)

// Correction captures a single substitution made by the Applier.
type Correction struct {
	// Original is the matched text as it appeared in the input, casing
	// preserved.
	Original string `json:"original"`

	// Corrected is the canonical replacement.
	Corrected string `json:"corrected"`

	// Method is [MethodTable] or [MethodPhonetic].
	Method string `json:"method"`

	// Confidence is the matcher's similarity score for phonetic
	// substitutions. Table substitutions always carry 1.
	Confidence float64 `json:"confidence"`
}

// Matcher resolves a single word to a known drug name by similarity.
// Implemented by phonetic.Matcher.
type Matcher interface {
	// Match returns the best-matching drug for word. When matched is false,
	// corrected must equal word unchanged and confidence must be 0.
	Match(word string, drugs []string) (corrected string, confidence float64, matched bool)
}

// Option is a functional option for configuring an [Applier].
type Option func(*Applier)

// WithPhoneticMatcher attaches a [Matcher] as a second correction stage that
// runs after the table pass. When nil (the default), the stage is skipped
// entirely.
func WithPhoneticMatcher(m Matcher) Option {
	return func(a *Applier) {
		a.phonetic = m
	}
}

// compiledRule is one correction-table entry with its matching machinery
// prepared up front.
type compiledRule struct {
	fromLower string
	to        string
	re        *regexp.Regexp
}

// Applier rewrites text using an ordered correction table and, optionally, a
// phonetic matcher. It is read-only after construction and safe for
// concurrent use.
type Applier struct {
	rules    []compiledRule
	drugs    []string
	phonetic Matcher
}

// New compiles the correction table from lex and returns an Applier.
// Returns an error if any table entry cannot be compiled into a whole-word
// pattern.
func New(lex *lexicon.Lexicon, opts ...Option) (*Applier, error) {
	a := &Applier{
		rules: make([]compiledRule, 0, len(lex.Rules)),
		drugs: lex.Drugs,
	}
	for _, o := range opts {
		o(a)
	}

	for _, r := range lex.Rules {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(r.From) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("correct: compile rule %q: %w", r.From, err)
		}
		a.rules = append(a.rules, compiledRule{
			fromLower: strings.ToLower(r.From),
			to:        r.To,
			re:        re,
		})
	}
	return a, nil
}

// Apply rewrites text and returns the corrected text together with the
// ordered list of substitutions actually made. When nothing matches, the
// text is returned unchanged and the list is empty (non-nil).
func (a *Applier) Apply(text string) (string, []Correction) {
	corrected := text
	corrections := []Correction{}

	for _, rule := range a.rules {
		// Cheap containment check before the regexp scan.
		if !strings.Contains(strings.ToLower(corrected), rule.fromLower) {
			continue
		}
		matches := rule.re.FindAllString(corrected, -1)
		if len(matches) == 0 {
			continue
		}
		corrected = rule.re.ReplaceAllLiteralString(corrected, rule.to)
		for _, m := range matches {
			corrections = append(corrections, Correction{
				Original:   m,
				Corrected:  rule.to,
				Method:     MethodTable,
				Confidence: 1,
			})
		}
	}

	if a.phonetic != nil {
		corrected, corrections = a.applyPhonetic(corrected, corrections)
	}

	return corrected, corrections
}

// applyPhonetic runs the phonetic stage over the table-corrected text. Each
// whitespace token that is not already a known drug name is offered to the
// matcher; accepted matches replace the token in place.
func (a *Applier) applyPhonetic(text string, corrections []Correction) (string, []Correction) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return text, corrections
	}

	changed := false
	for i, tok := range tokens {
		if a.isKnownDrug(tok) {
			continue
		}
		drug, conf, ok := a.phonetic.Match(tok, a.drugs)
		if !ok || strings.EqualFold(tok, drug) {
			continue
		}
		tokens[i] = drug
		changed = true
		corrections = append(corrections, Correction{
			Original:   tok,
			Corrected:  drug,
			Method:     MethodPhonetic,
			Confidence: conf,
		})
	}

	if !changed {
		return text, corrections
	}
	return strings.Join(tokens, " "), corrections
}

func (a *Applier) isKnownDrug(word string) bool {
	for _, d := range a.drugs {
		if strings.EqualFold(word, d) {
			return true
		}
	}
	return false
}
