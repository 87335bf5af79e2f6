package domain

import (
	"context"

	"vidtally/internal/core/dsl"
)

// AskPort is the external port of the answer pipeline
type AskPort interface {
	// Answer resolves a question all the way down to one number.
	// Every failure past parsing reads as 0; it never errors
	Answer(ctx context.Context, question string) int64

	// Parse resolves a question into a validated query without touching storage.
	// It is total: gibberish falls through to the sentinel resolution
	Parse(ctx context.Context, question string) Resolution
}

// ScalarPort evaluates one validated query down to one integer
type ScalarPort interface {
	Eval(ctx context.Context, q dsl.Query) (int64, error)
}
