// Package service implements the answer pipeline
package service

import (
	"context"

	"vidtally/internal/core/dsl"
	"vidtally/internal/core/heuristic"
	"vidtally/internal/core/langhint"
	perr "vidtally/internal/platform/errors"
	"vidtally/internal/platform/logger"
	"vidtally/internal/services/answer/domain"
	"vidtally/internal/services/translate"
)

// Service implements domain.AskPort
type Service struct {
	Translator translate.Translator
	Heuristic  *heuristic.Parser
	Scalar     domain.ScalarPort
}

// New constructs the answer service
func New(tr translate.Translator, hp *heuristic.Parser, sc domain.ScalarPort) *Service {
	return &Service{Translator: tr, Heuristic: hp, Scalar: sc}
}

// strategy is one way to turn a question into a query
type strategy struct {
	name string
	run  func(ctx context.Context, question string) (*dsl.Query, error)
}

// strategies builds the ordered chain: translator when one is configured,
// then the heuristic rules, then the sentinel that cannot fail
func (s *Service) strategies() []strategy {
	out := make([]strategy, 0, 3)
	if translate.Enabled(s.Translator) {
		out = append(out, strategy{domain.StrategyTranslator, s.Translator.Translate})
	}
	out = append(out, strategy{domain.StrategyHeuristic, func(_ context.Context, question string) (*dsl.Query, error) {
		return s.Heuristic.Parse(question)
	}})
	out = append(out, strategy{domain.StrategySentinel, func(context.Context, string) (*dsl.Query, error) {
		q := dsl.Sentinel()
		return &q, nil
	}})
	return out
}

// Parse walks the strategy chain and returns the first successful resolution.
// Strategy failures are logged and swallowed; the sentinel closes the chain,
// so Parse is total
func (s *Service) Parse(ctx context.Context, question string) domain.Resolution {
	log := logger.C(ctx)
	hint := langhint.Detect(question)

	var res domain.Resolution
	for _, st := range s.strategies() {
		q, err := st.run(ctx, question)
		if err != nil {
			evt := log.Debug()
			if st.name == domain.StrategyTranslator {
				// a configured translator failing is an operational signal
				evt = log.Warn()
			}
			evt.Str("strategy", st.name).
				Str("lang", string(hint)).
				Int("code", int(perr.CodeOf(err))).
				Err(err).
				Msg("parse strategy failed")
			continue
		}
		res = domain.Resolution{Query: *q, Strategy: st.name}
		break
	}

	if res.Strategy == domain.StrategySentinel {
		log.Info().Str("lang", string(hint)).Msg("no strategy parsed the question, answering with sentinel")
	} else {
		log.Debug().Str("strategy", res.Strategy).Str("lang", string(hint)).Msg("question resolved")
	}
	return res
}

// Answer runs the full pipeline down to one number.
// Failures past parsing are logged and read as 0
func (s *Service) Answer(ctx context.Context, question string) int64 {
	res := s.Parse(ctx, question)

	n, err := s.Scalar.Eval(ctx, res.Query)
	if err != nil {
		logger.C(ctx).Error().
			Str("strategy", res.Strategy).
			Int("code", int(perr.CodeOf(err))).
			Err(err).
			Msg("scalar evaluation failed")
		return 0
	}
	return n
}
