package correct_test

import (
	"reflect"
	"testing"

	"github.com/rxscribe/scribescore/internal/correct"
	"github.com/rxscribe/scribescore/internal/lexicon"
)

func newApplier(t *testing.T, opts ...correct.Option) *correct.Applier {
	t.Helper()
	a, err := correct.New(lexicon.Default(), opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return a
}

func TestApply(t *testing.T) {
	t.Parallel()

	a := newApplier(t)

	tests := []struct {
		name     string
		in       string
		want     string
		wantSubs []correct.Correction
	}{
		{
			name:     "clean text passes through",
			in:       "start sertraline 50 mg daily",
			want:     "start sertraline 50 mg daily",
			wantSubs: []correct.Correction{},
		},
		{
			name: "misspelled drug corrected",
			in:   "start sertralene 50 mg daily",
			want: "start sertraline 50 mg daily",
			wantSubs: []correct.Correction{
				{Original: "sertralene", Corrected: "sertraline", Method: correct.MethodTable, Confidence: 1},
			},
		},
		{
			name: "brand name mapped to generic",
			in:   "switch from Prozak to something else",
			want: "switch from fluoxetine to something else",
			wantSubs: []correct.Correction{
				{Original: "Prozak", Corrected: "fluoxetine", Method: correct.MethodTable, Confidence: 1},
			},
		},
		{
			name: "unit spellings folded to mg",
			in:   "sertraline 50 milligrams and gabapentin 300 mgs",
			want: "sertraline 50 mg and gabapentin 300 mg",
			wantSubs: []correct.Correction{
				{Original: "mgs", Corrected: "mg", Method: correct.MethodTable, Confidence: 1},
				{Original: "milligrams", Corrected: "mg", Method: correct.MethodTable, Confidence: 1},
			},
		},
		{
			name: "multi-word surface form",
			in:   "continue surgery line 100 mg",
			want: "continue sertraline 100 mg",
			wantSubs: []correct.Correction{
				{Original: "surgery line", Corrected: "sertraline", Method: correct.MethodTable, Confidence: 1},
			},
		},
		{
			name:     "near miss of a table key left alone",
			in:       "take prozac tonight",
			want:     "take prozac tonight",
			wantSubs: []correct.Correction{},
		},
		{
			name:     "whole words only",
			in:       "the biopsy surgery lineup went well",
			want:     "the biopsy surgery lineup went well",
			wantSubs: []correct.Correction{},
		},
		{
			name: "every occurrence replaced and recorded",
			in:   "sertralene in the morning, sertralene at night",
			want: "sertraline in the morning, sertraline at night",
			wantSubs: []correct.Correction{
				{Original: "sertralene", Corrected: "sertraline", Method: correct.MethodTable, Confidence: 1},
				{Original: "sertralene", Corrected: "sertraline", Method: correct.MethodTable, Confidence: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, subs := a.Apply(tt.in)
			if got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if subs == nil {
				t.Fatal("Apply returned a nil corrections slice")
			}
			if !reflect.DeepEqual(subs, tt.wantSubs) {
				t.Errorf("Apply(%q) corrections = %+v, want %+v", tt.in, subs, tt.wantSubs)
			}
		})
	}
}

func TestApplyPreservesTableOrder(t *testing.T) {
	t.Parallel()

	// The second rule only matches text produced by the first; swapping
	// the table must change the result.
	forward := &lexicon.Lexicon{
		Drugs: []string{"sertraline"},
		Rules: []lexicon.Rule{
			{From: "sir train", To: "sertralene"},
			{From: "sertralene", To: "sertraline"},
		},
	}
	backward := &lexicon.Lexicon{
		Drugs: forward.Drugs,
		Rules: []lexicon.Rule{forward.Rules[1], forward.Rules[0]},
	}

	fa, err := correct.New(forward)
	if err != nil {
		t.Fatalf("New(forward) returned error: %v", err)
	}
	ba, err := correct.New(backward)
	if err != nil {
		t.Fatalf("New(backward) returned error: %v", err)
	}

	const in = "start sir train 50 mg"
	if got, _ := fa.Apply(in); got != "start sertraline 50 mg" {
		t.Errorf("forward table Apply(%q) = %q, want fully corrected text", in, got)
	}
	if got, _ := ba.Apply(in); got != "start sertralene 50 mg" {
		t.Errorf("backward table Apply(%q) = %q, want partially corrected text", in, got)
	}
}

// stubMatcher resolves a fixed word to a fixed drug.
type stubMatcher struct {
	word string
	drug string
	conf float64
}

func (m stubMatcher) Match(word string, drugs []string) (string, float64, bool) {
	if word == m.word {
		return m.drug, m.conf, true
	}
	return word, 0, false
}

func TestApplyPhoneticStage(t *testing.T) {
	t.Parallel()

	a := newApplier(t, correct.WithPhoneticMatcher(stubMatcher{
		word: "sertralean",
		drug: "sertraline",
		conf: 0.92,
	}))

	got, subs := a.Apply("start sertralean 50 mg")
	if got != "start sertraline 50 mg" {
		t.Errorf("Apply = %q, want phonetically corrected text", got)
	}
	if len(subs) != 1 {
		t.Fatalf("got %d corrections, want 1", len(subs))
	}
	want := correct.Correction{
		Original:   "sertralean",
		Corrected:  "sertraline",
		Method:     correct.MethodPhonetic,
		Confidence: 0.92,
	}
	if subs[0] != want {
		t.Errorf("corrections[0] = %+v, want %+v", subs[0], want)
	}
}

func TestApplyPhoneticSkipsKnownDrugs(t *testing.T) {
	t.Parallel()

	// A matcher that would rewrite anything it is offered. Known drug
	// names must never reach it.
	a := newApplier(t, correct.WithPhoneticMatcher(stubMatcher{
		word: "sertraline",
		drug: "fluoxetine",
		conf: 0.99,
	}))

	got, subs := a.Apply("sertraline 50 mg")
	if got != "sertraline 50 mg" {
		t.Errorf("Apply = %q, want input unchanged", got)
	}
	if len(subs) != 0 {
		t.Errorf("got %d corrections, want 0", len(subs))
	}
}
