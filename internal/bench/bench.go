// Package bench runs a speech-to-text model over a set of audio files and
// records transcripts and timings, one run per model size per file. It exists
// to produce the hypothesis texts (and performance numbers) that the accuracy
// analysis consumes.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rxscribe/scribescore/pkg/provider/stt"
)

// Factory constructs an STT provider for the given model identifier
// (e.g., "base", "small.en", "medium.en"). The harness closes the provider
// after use when it implements [io.Closer].
type Factory func(model string) (stt.Provider, error)

// SegmentRecord is the serialized form of one time-aligned segment, with
// offsets in seconds.
type SegmentRecord struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Run records one model × audio-file transcription.
type Run struct {
	Model             string          `json:"model"`
	AudioFile         string          `json:"audio_file"`
	LoadSeconds       float64         `json:"load_time"`
	TranscribeSeconds float64         `json:"transcribe_time"`
	Text              string          `json:"text"`
	Segments          []SegmentRecord `json:"segments"`
}

// Option is a functional option for configuring a [Harness].
type Option func(*Harness)

// WithLanguage sets the recognition language passed to every provider.
func WithLanguage(lang string) Option {
	return func(h *Harness) {
		h.language = lang
	}
}

// WithOutputDir sets the directory transcripts are written to. Defaults to
// the current directory.
func WithOutputDir(dir string) Option {
	return func(h *Harness) {
		h.outDir = dir
	}
}

// Harness iterates model sizes over audio files sequentially. Runs are
// independent: a failed run is logged and skipped, the rest proceed.
type Harness struct {
	factory  Factory
	models   []string
	language string
	outDir   string
}

// New returns a Harness that benchmarks the given model identifiers.
func New(factory Factory, models []string, opts ...Option) *Harness {
	h := &Harness{
		factory: factory,
		models:  models,
		outDir:  ".",
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Run transcribes every audio file with every model, writes each transcript
// to "<audio base name>_<model>_result.txt" in the output directory, and
// returns the collected runs.
//
// Run returns an error only when ctx is cancelled or every single run failed;
// partial failures are logged and reflected by the missing entries.
func (h *Harness) Run(ctx context.Context, audioFiles []string) ([]Run, error) {
	var runs []Run
	attempts := 0

	for _, audioFile := range audioFiles {
		for _, model := range h.models {
			if err := ctx.Err(); err != nil {
				return runs, fmt.Errorf("bench: cancelled: %w", err)
			}
			attempts++

			run, err := h.runOne(ctx, model, audioFile)
			if err != nil {
				slog.Error("bench run failed", "model", model, "audio_file", audioFile, "err", err)
				continue
			}
			runs = append(runs, *run)

			slog.Info("bench run complete",
				"model", model,
				"audio_file", audioFile,
				"load_s", run.LoadSeconds,
				"transcribe_s", run.TranscribeSeconds,
			)
		}
	}

	if attempts > 0 && len(runs) == 0 {
		return nil, errors.New("bench: all runs failed")
	}
	return runs, nil
}

// runOne loads the model, transcribes one file, and persists the transcript.
func (h *Harness) runOne(ctx context.Context, model, audioFile string) (*Run, error) {
	loadStart := time.Now()
	provider, err := h.factory(model)
	if err != nil {
		return nil, fmt.Errorf("create provider for model %q: %w", model, err)
	}
	loadTime := time.Since(loadStart)

	defer func() {
		if c, ok := provider.(io.Closer); ok {
			if err := c.Close(); err != nil {
				slog.Warn("bench: provider close error", "model", model, "err", err)
			}
		}
	}()

	transcribeStart := time.Now()
	result, err := provider.Transcribe(ctx, stt.Request{
		AudioPath: audioFile,
		Language:  h.language,
	})
	if err != nil {
		return nil, fmt.Errorf("transcribe %q with model %q: %w", audioFile, model, err)
	}
	transcribeTime := time.Since(transcribeStart)

	run := &Run{
		Model:             model,
		AudioFile:         audioFile,
		LoadSeconds:       loadTime.Seconds(),
		TranscribeSeconds: transcribeTime.Seconds(),
		Text:              result.Text,
	}
	for _, seg := range result.Segments {
		run.Segments = append(run.Segments, SegmentRecord{
			ID:    seg.ID,
			Start: seg.Start.Seconds(),
			End:   seg.End.Seconds(),
			Text:  seg.Text,
		})
	}

	if err := h.writeTranscript(model, audioFile, result.Text); err != nil {
		return nil, err
	}
	return run, nil
}

// writeTranscript saves the full transcript text next to the summary JSON so
// individual runs can be fed back into the analyzer.
func (h *Harness) writeTranscript(model, audioFile, text string) error {
	name := fmt.Sprintf("%s_%s_result.txt", filepath.Base(audioFile), model)
	path := filepath.Join(h.outDir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write transcript %q: %w", path, err)
	}
	return nil
}

// SummaryPath returns the location of the all-runs JSON record.
func SummaryPath(dir string) string {
	return filepath.Join(dir, "whisper_test_results.json")
}
