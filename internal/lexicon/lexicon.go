// Package lexicon holds the domain vocabulary used for medication-aware
// transcription scoring: the list of drug names to detect and the ordered
// table of known mis-transcriptions mapped to their canonical forms.
//
// A Lexicon is immutable configuration: it is built once at process start —
// either from the compiled-in defaults or from a YAML file — and never
// mutated afterwards.
package lexicon

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule maps one known mis-transcribed surface form to its canonical term.
// Matching is case-insensitive on whole words; see the correct package.
type Rule struct {
	// From is the surface form as the STT engine tends to produce it
	// (e.g., "sertralene", "surgery line").
	From string `yaml:"from"`

	// To is the canonical replacement (e.g., "sertraline").
	To string `yaml:"to"`
}

// Lexicon is the domain vocabulary for one analysis run.
//
// Rules is ordered: rules are applied first to last, each over the text
// produced by the previous ones, so a later rule can re-match text a
// previous rule emitted. Callers must not mutate either slice.
type Lexicon struct {
	// Drugs lists the medication names to detect, in report order.
	Drugs []string `yaml:"drugs"`

	// Rules is the ordered correction table.
	Rules []Rule `yaml:"corrections"`
}

// Default returns the compiled-in psychiatric medication lexicon. Each call
// returns fresh slices so callers cannot corrupt the package-level data.
func Default() *Lexicon {
	lex := &Lexicon{
		Drugs: make([]string, len(defaultDrugs)),
		Rules: make([]Rule, len(defaultRules)),
	}
	copy(lex.Drugs, defaultDrugs)
	copy(lex.Rules, defaultRules)
	return lex
}

// Load reads a YAML lexicon file from path and returns a validated Lexicon.
// It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %q: %w", path, err)
	}
	defer f.Close()

	lex, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("lexicon: parse %q: %w", path, err)
	}
	return lex, nil
}

// LoadFromReader decodes a YAML lexicon from r and validates the result.
// Useful in tests where lexicons are constructed from string literals.
func LoadFromReader(r io.Reader) (*Lexicon, error) {
	lex := &Lexicon{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // reject unknown keys to catch typos
	if err := dec.Decode(lex); err != nil {
		return nil, fmt.Errorf("lexicon: decode yaml: %w", err)
	}
	if err := Validate(lex); err != nil {
		return nil, err
	}
	return lex, nil
}

// Validate checks that lex contains a coherent vocabulary.
// It returns a joined error listing all validation failures found.
func Validate(lex *Lexicon) error {
	var errs []error

	if len(lex.Drugs) == 0 {
		errs = append(errs, errors.New("lexicon: drugs list must not be empty"))
	}
	drugsSeen := make(map[string]int, len(lex.Drugs))
	for i, d := range lex.Drugs {
		if strings.TrimSpace(d) == "" {
			errs = append(errs, fmt.Errorf("lexicon: drugs[%d] is empty", i))
			continue
		}
		key := strings.ToLower(d)
		if prev, ok := drugsSeen[key]; ok {
			errs = append(errs, fmt.Errorf("lexicon: drugs[%d] %q duplicates drugs[%d]", i, d, prev))
		}
		drugsSeen[key] = i
	}

	rulesSeen := make(map[string]int, len(lex.Rules))
	for i, r := range lex.Rules {
		if strings.TrimSpace(r.From) == "" {
			errs = append(errs, fmt.Errorf("lexicon: corrections[%d].from is empty", i))
		}
		if strings.TrimSpace(r.To) == "" {
			errs = append(errs, fmt.Errorf("lexicon: corrections[%d].to is empty", i))
		}
		key := strings.ToLower(r.From)
		if key != "" {
			if prev, ok := rulesSeen[key]; ok {
				errs = append(errs, fmt.Errorf("lexicon: corrections[%d].from %q duplicates corrections[%d]", i, r.From, prev))
			}
			rulesSeen[key] = i
		}
	}

	return errors.Join(errs...)
}
