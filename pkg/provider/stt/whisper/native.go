// This file contains the NativeProvider implementation backed by the
// whisper.cpp CGO bindings. The whisper.cpp static library (libwhisper.a)
// and headers (whisper.h) must be available at link time via LIBRARY_PATH
// and C_INCLUDE_PATH environment variables.

package whisper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/rxscribe/scribescore/pkg/provider/stt"
)

// nativeSampleRate is the sample rate whisper.cpp models are trained on.
// Input audio at other rates is resampled before inference.
const nativeSampleRate = 16000

// Compile-time assertion that NativeProvider satisfies stt.Provider.
var _ stt.Provider = (*NativeProvider)(nil)

// NativeOption is a functional option for configuring a NativeProvider.
type NativeOption func(*NativeProvider)

// WithNativeLanguage sets the BCP-47 language code for transcription
// (e.g., "en", "de", "fr"). Defaults to "en".
func WithNativeLanguage(lang string) NativeOption {
	return func(p *NativeProvider) { p.language = lang }
}

// NativeProvider implements stt.Provider using whisper.cpp Go bindings
// (CGO). The model is loaded once at construction and shared across all
// Transcribe calls; each call creates its own whisper context, so calls may
// run concurrently.
//
// Input audio must be a 16-bit PCM RIFF/WAV file. Stereo input is downmixed
// to mono and rates other than 16 kHz are resampled before inference.
type NativeProvider struct {
	model    whisperlib.Model
	language string

	// The bindings' context creation is not guaranteed to be reentrant on
	// all builds; serialize it.
	mu sync.Mutex
}

// NewNative creates a NativeProvider that loads the whisper.cpp model from
// the given file path (e.g., "models/ggml-base.en.bin"). The caller must
// call Close when the provider is no longer needed.
func NewNative(modelPath string, opts ...NativeOption) (*NativeProvider, error) {
	if modelPath == "" {
		return nil, errors.New("whisper: modelPath must not be empty")
	}
	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("whisper: load model %q: %w", modelPath, err)
	}

	p := &NativeProvider{
		model:    model,
		language: defaultLanguage,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Close releases the whisper model. Must be called when the provider is no
// longer needed.
func (p *NativeProvider) Close() error {
	if p.model != nil {
		return p.model.Close()
	}
	return nil
}

// Transcribe decodes the WAV file named in req, runs whisper.cpp inference,
// and returns the transcript with per-segment timings.
func (p *NativeProvider) Transcribe(ctx context.Context, req stt.Request) (*stt.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("whisper: context already cancelled: %w", err)
	}

	data, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("whisper: read audio file: %w", err)
	}

	pcm, sampleRate, channels, err := decodeWAV(data)
	if err != nil {
		return nil, fmt.Errorf("whisper: decode %q: %w", req.AudioPath, err)
	}

	samples := pcmToFloat32Mono(pcm, channels)
	if sampleRate != nativeSampleRate {
		samples = resampleMono(samples, sampleRate, nativeSampleRate)
	}

	lang := req.Language
	if lang == "" {
		lang = p.language
	}

	p.mu.Lock()
	wctx, err := p.model.NewContext()
	p.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("whisper: create context: %w", err)
	}

	if err := wctx.SetLanguage(lang); err != nil {
		slog.Warn("whisper: failed to set language, using default", "language", lang, "error", err)
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("whisper: process audio: %w", err)
	}

	result := &stt.Result{}
	var parts []string
	for i := 0; ; i++ {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("whisper: read segment: %w", err)
		}
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
		result.Segments = append(result.Segments, stt.Segment{
			ID:    i,
			Start: segment.Start,
			End:   segment.End,
			Text:  text,
		})
	}
	result.Text = strings.Join(parts, " ")

	return result, nil
}
