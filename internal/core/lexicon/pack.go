// Package lexicon loads the embedded RU/EN phrase tables and compiles them
// into an Aho-Corasick scanner for the heuristic parser.
// Entries are pre-normalized: lowercase, е instead of ё, single spaces
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"vidtally/internal/core/vocab"
)

//go:embed lexicon.json
var embedded []byte

// Kind tags what a dictionary group describes
type Kind string

const (
	// KindMetric resolves to a vocab metric
	KindMetric Kind = "metric"
	// KindAgg resolves to a vocab aggregation
	KindAgg Kind = "agg"
	// KindScope resolves to the delta or snapshot scope
	KindScope Kind = "scope"
	// KindComparator resolves to a threshold comparator
	KindComparator Kind = "comparator"
	// KindDistinct marks distinct/unique wording
	KindDistinct Kind = "distinct"
	// KindCountNoun marks the counted noun (the videos themselves)
	KindCountNoun Kind = "count_noun"
	// KindCreatorMarker marks creator-id lead-ins
	KindCreatorMarker Kind = "creator_marker"
	// KindVideoMarker marks video-id lead-ins
	KindVideoMarker Kind = "video_marker"
)

type rawEntry struct {
	Key     string   `json:"key"`
	Stems   []string `json:"stems,omitempty"`
	Phrases []string `json:"phrases,omitempty"`
}

type rawLexicon struct {
	Version      int        `json:"version"`
	Metrics      []rawEntry `json:"metrics"`
	Aggregations []rawEntry `json:"aggregations"`
	Scopes       []rawEntry `json:"scopes"`
	Comparators  []rawEntry `json:"comparators"`
	Markers      []rawEntry `json:"markers"`
}

// Group is one dictionary entry. Phrases match as exact words (boundaries on
// both sides); stems anchor on the left and swallow the declension suffix
type Group struct {
	Kind    Kind
	Key     string
	Stems   []string
	Phrases []string
}

// Pack is the loaded and validated dictionary
type Pack struct {
	Version int
	Groups  []Group
}

// Load parses the embedded lexicon.json and validates every key against the
// closed vocabulary
func Load() (*Pack, error) {
	var raw rawLexicon
	if err := json.Unmarshal(embedded, &raw); err != nil {
		return nil, fmt.Errorf("lexicon: parse lexicon.json: %w", err)
	}
	if raw.Version != 1 {
		return nil, fmt.Errorf("lexicon: unsupported lexicon.json version %d (want 1)", raw.Version)
	}

	p := &Pack{Version: raw.Version}
	add := func(kind Kind, e rawEntry) error {
		key := strings.TrimSpace(e.Key)
		if key == "" {
			return fmt.Errorf("lexicon: %s entry with empty key", kind)
		}
		g := Group{
			Kind:    kind,
			Key:     key,
			Stems:   cleanTerms(e.Stems),
			Phrases: cleanTerms(e.Phrases),
		}
		if len(g.Stems)+len(g.Phrases) == 0 {
			return fmt.Errorf("lexicon: %s %q has no stems or phrases", kind, key)
		}
		p.Groups = append(p.Groups, g)
		return nil
	}

	for _, e := range raw.Metrics {
		if _, ok := vocab.ParseMetric(e.Key); !ok {
			return nil, fmt.Errorf("lexicon: unknown metric key %q", e.Key)
		}
		if err := add(KindMetric, e); err != nil {
			return nil, err
		}
	}
	for _, e := range raw.Aggregations {
		if _, ok := vocab.ParseAggregation(e.Key); !ok {
			return nil, fmt.Errorf("lexicon: unknown aggregation key %q", e.Key)
		}
		if err := add(KindAgg, e); err != nil {
			return nil, err
		}
	}
	for _, e := range raw.Scopes {
		// final scope is inferred by absence of wording, never worded itself
		sc, ok := vocab.ParseScope(e.Key)
		if !ok || sc == vocab.ScopeFinal {
			return nil, fmt.Errorf("lexicon: scope key %q has no marker wording", e.Key)
		}
		if err := add(KindScope, e); err != nil {
			return nil, err
		}
	}
	for _, e := range raw.Comparators {
		if _, ok := vocab.ParseComparator(e.Key); !ok {
			return nil, fmt.Errorf("lexicon: unknown comparator key %q", e.Key)
		}
		if err := add(KindComparator, e); err != nil {
			return nil, err
		}
	}
	for _, e := range raw.Markers {
		kind, ok := markerKind(e.Key)
		if !ok {
			return nil, fmt.Errorf("lexicon: unknown marker key %q", e.Key)
		}
		if err := add(kind, e); err != nil {
			return nil, err
		}
	}

	// Deterministic iteration for tests/debug
	sort.Slice(p.Groups, func(i, j int) bool {
		if p.Groups[i].Kind != p.Groups[j].Kind {
			return p.Groups[i].Kind < p.Groups[j].Kind
		}
		return p.Groups[i].Key < p.Groups[j].Key
	})

	return p, nil
}

// cleanTerms lowercases, trims, dedupes and sorts, dropping empties
func cleanTerms(in []string) []string {
	var acc []string
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		acc = append(acc, s)
	}
	sort.Strings(acc)
	return acc
}

func markerKind(k string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(k)) {
	case "distinct":
		return KindDistinct, true
	case "videos":
		return KindCountNoun, true
	case "creator":
		return KindCreatorMarker, true
	case "video":
		return KindVideoMarker, true
	default:
		return "", false
	}
}
