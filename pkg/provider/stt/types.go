package stt

import "time"

// Result is a completed batch transcription.
type Result struct {
	// Text is the full transcript with segments joined in order.
	Text string

	// Segments contains the time-aligned spans of the transcript when the
	// backend reports them. May be nil for backends that only return text.
	Segments []Segment
}

// Segment is one time-aligned span of a transcription result.
type Segment struct {
	// ID is the zero-based index of the segment within the result.
	ID int

	// Start and End are offsets from the beginning of the audio.
	Start time.Duration
	End   time.Duration

	// Text is the transcribed content of this span.
	Text string
}
