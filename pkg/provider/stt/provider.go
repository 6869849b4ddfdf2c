// Package stt defines the Provider interface for batch speech-to-text
// backends.
//
// An STT provider wraps a transcription engine (a local whisper.cpp server,
// the in-process whisper.cpp bindings, or a hosted API) and exposes a uniform
// one-shot interface: submit an audio file, receive the transcript text and
// any time-aligned segments the engine reports. There is no streaming — each
// call is a complete, synchronous inference over one finished recording.
//
// Implementations must be safe for concurrent use. Providers that hold
// resources (loaded models, connection pools) should also implement
// [io.Closer]; callers are expected to close such providers when done.
package stt

import "context"

// Request describes a single batch transcription job.
type Request struct {
	// AudioPath is the path of the audio file to transcribe. The supported
	// container formats depend on the provider; see each implementation's
	// documentation.
	AudioPath string

	// Language is the BCP-47 language code for recognition (e.g., "en").
	// An empty string lets the provider use its configured default.
	Language string
}

// Provider is the abstraction over any batch STT backend.
//
// Implementations must be safe for concurrent use; multiple Transcribe calls
// may be in flight at once.
type Provider interface {
	// Transcribe runs a full transcription of the audio file named in req and
	// returns the result once the engine has committed to it.
	//
	// Returns an error if the audio cannot be read or decoded, if ctx is
	// cancelled before inference completes, or if the backend fails.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}
