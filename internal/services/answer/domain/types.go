package domain

import "vidtally/internal/core/dsl"

// Strategy names as they appear in Resolution and logs
const (
	StrategyTranslator = "translator"
	StrategyHeuristic  = "heuristic"
	StrategySentinel   = "sentinel"
)

// Resolution is a parsed question paired with the strategy that produced it
type Resolution struct {
	Query    dsl.Query
	Strategy string
}
