package domain

import (
	"context"

	answerdom "vidtally/internal/services/answer/domain"
)

// RunnerPort is the external port for the telegram poll loop
type RunnerPort interface {
	Run(ctx context.Context) error
}

// Ports are dependencies injected into the telegram module
type Ports struct {
	Ask answerdom.AskPort // required
}
