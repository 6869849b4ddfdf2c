package extract_test

import (
	"reflect"
	"testing"

	"github.com/rxscribe/scribescore/internal/correct"
	"github.com/rxscribe/scribescore/internal/extract"
	"github.com/rxscribe/scribescore/internal/lexicon"
)

func TestMentions(t *testing.T) {
	t.Parallel()

	e := extract.New(lexicon.Default())

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "drug then dose then unit",
			text: "Start sertraline 50 mg daily.",
			want: []string{"sertraline 50 mg"},
		},
		{
			name: "dose and unit before drug",
			text: "patient takes 300 mg gabapentin at bedtime",
			want: []string{"gabapentin 300 mg"},
		},
		{
			name: "long-form unit normalized",
			text: "increase sertraline 50 milligrams to 100 milligrams",
			want: []string{"sertraline 50 mg"},
		},
		{
			name: "fractional dose",
			text: "alprazolam 0.5 mg as needed",
			want: []string{"alprazolam 0.5 mg"},
		},
		{
			name: "no dosage yields bare mention",
			text: "continue lithium at the current dose",
			want: []string{"lithium"},
		},
		{
			name: "multiple dosage occurrences for one drug",
			text: "sertraline 50 mg in the morning and sertraline 100 mg at night",
			want: []string{"sertraline 50 mg", "sertraline 100 mg"},
		},
		{
			name: "multiple drugs reported in lexicon order",
			text: "add trazodone 50 mg, keep fluoxetine 20 mg",
			want: []string{"fluoxetine 20 mg", "trazodone 50 mg"},
		},
		{
			name: "case-insensitive",
			text: "SERTRALINE 50 MG",
			want: []string{"sertraline 50 mg"},
		},
		{
			name: "no known drugs",
			text: "patient reports improved sleep and appetite",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := e.Mentions(tt.text, false)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Mentions(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMentionsPatternPriority(t *testing.T) {
	t.Parallel()

	e := extract.New(lexicon.Default())

	// Both "drug dose unit" and "dose unit drug" forms are present. The
	// first pattern wins, so only its matches are reported.
	got := e.Mentions("sertraline 50 mg, then 100 mg sertraline", false)
	want := []string{"sertraline 50 mg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Mentions = %v, want %v", got, want)
	}
}

func TestMentionsWithCorrections(t *testing.T) {
	t.Parallel()

	lex := lexicon.Default()
	applier, err := correct.New(lex)
	if err != nil {
		t.Fatalf("correct.New returned error: %v", err)
	}
	e := extract.New(lex, extract.WithCorrector(applier))

	const text = "start sertralene 50 mgs daily"

	if got := e.Mentions(text, false); got != nil {
		t.Errorf("Mentions without corrections = %v, want none", got)
	}

	got := e.Mentions(text, true)
	want := []string{"sertraline 50 mg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Mentions with corrections = %v, want %v", got, want)
	}
}

func TestMentionsCorrectionFlagWithoutCorrector(t *testing.T) {
	t.Parallel()

	e := extract.New(lexicon.Default())
	if got := e.Mentions("start sertralene 50 mgs daily", true); got != nil {
		t.Errorf("Mentions = %v, want none when no corrector is attached", got)
	}
}
