// Package translate is the optional LLM strategy: it asks an
// OpenRouter-compatible chat-completions endpoint to rewrite a question as
// candidate query JSON. Model output is never trusted; anything that does
// not decode and validate as a candidate is a plain failure
package translate

import (
	"context"

	"vidtally/internal/core/dsl"

	perr "vidtally/internal/platform/errors"
)

// Translator turns one question into a validated query, or fails
type Translator interface {
	Translate(ctx context.Context, question string) (*dsl.Query, error)
}

// NewNoop returns a disabled translator for deployments without an API key
func NewNoop() Translator { return noop{} }

// Enabled reports whether t can ever produce a result.
// Callers use it to skip the strategy instead of collecting a guaranteed failure
func Enabled(t Translator) bool {
	if t == nil {
		return false
	}
	_, off := t.(noop)
	return !off
}

type noop struct{}

func (noop) Translate(context.Context, string) (*dsl.Query, error) {
	return nil, perr.Adapterf("adapter unavailable")
}
