// Package mock provides a test double for the stt.Provider interface.
//
// Use Provider in unit tests to feed controlled transcription results without
// a live STT backend. All fields are safe to set before calling any method;
// mutating them during a concurrent call is the caller's responsibility.
//
// Example:
//
//	p := &mock.Provider{
//	    Result: &stt.Result{Text: "start sertraline 50 mg daily"},
//	}
//	res, err := p.Transcribe(ctx, req)
package mock

import (
	"context"
	"sync"

	"github.com/rxscribe/scribescore/pkg/provider/stt"
)

// TranscribeCall records a single invocation of Transcribe.
type TranscribeCall struct {
	// Ctx is the context passed to Transcribe.
	Ctx context.Context
	// Req is the Request passed to Transcribe.
	Req stt.Request
}

// Provider is a mock implementation of stt.Provider.
// A zero value returns an empty Result and nil error. Set Err to inject an
// error, or ResultFn for per-request responses.
type Provider struct {
	mu sync.Mutex

	// Result is returned from Transcribe when ResultFn is nil.
	Result *stt.Result

	// ResultFn, if non-nil, computes the response per request and takes
	// precedence over Result.
	ResultFn func(req stt.Request) (*stt.Result, error)

	// Err, if non-nil, is returned from Transcribe instead of any result.
	Err error

	// Calls records every Transcribe invocation in order.
	Calls []TranscribeCall

	// Closed counts Close invocations.
	Closed int
}

// Compile-time assertion that Provider satisfies stt.Provider.
var _ stt.Provider = (*Provider)(nil)

// Transcribe records the call and returns the configured result.
func (p *Provider) Transcribe(ctx context.Context, req stt.Request) (*stt.Result, error) {
	p.mu.Lock()
	p.Calls = append(p.Calls, TranscribeCall{Ctx: ctx, Req: req})
	p.mu.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}
	if p.ResultFn != nil {
		return p.ResultFn(req)
	}
	if p.Result != nil {
		return p.Result, nil
	}
	return &stt.Result{}, nil
}

// Close records the invocation and returns nil.
func (p *Provider) Close() error {
	p.mu.Lock()
	p.Closed++
	p.mu.Unlock()
	return nil
}
