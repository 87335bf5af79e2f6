package lexicon

import "sort"

// Match is one dictionary occurrence over normalized text.
// Spans are [Start,End) byte offsets; stem matches extend End to the end of
// the containing token so the span covers the whole inflected word
type Match struct {
	Kind  Kind
	Key   string
	Start int
	End   int
	Stem  bool
}

// Len returns the span length in bytes
func (m Match) Len() int { return m.End - m.Start }

// Overlaps reports whether two spans share at least one byte
func (m Match) Overlaps(o Match) bool { return m.Start < o.End && o.Start < m.End }

type pattern struct {
	kind Kind
	key  string
	text string
	stem bool
}

// Scanner finds dictionary occurrences in normalized questions
type Scanner struct {
	ac   *acAutomaton
	pats []pattern
}

// NewScanner compiles the pack into a single automaton over all groups
func NewScanner(p *Pack) *Scanner {
	s := &Scanner{ac: newAutomaton()}
	for _, g := range p.Groups {
		for _, ph := range g.Phrases {
			s.add(g.Kind, g.Key, ph, false)
		}
		for _, st := range g.Stems {
			s.add(g.Kind, g.Key, st, true)
		}
	}
	s.ac.Build()
	return s
}

func (s *Scanner) add(kind Kind, key, text string, stem bool) {
	if text == "" {
		return
	}
	id := len(s.pats)
	s.pats = append(s.pats, pattern{kind: kind, key: key, text: text, stem: stem})
	s.ac.AddPattern([]byte(text), id)
}

// Scan returns every boundary-respecting match, sorted by position with
// longer spans first. The scanner only reports; callers resolve overlaps
func (s *Scanner) Scan(norm string) []Match {
	if norm == "" {
		return nil
	}

	var out []Match
	s.ac.FindAll([]byte(norm), func(end, id int) bool {
		p := s.pats[id]
		start := end - len(p.text)
		if p.stem {
			if !leftBoundaryOK(norm, start) {
				return true
			}
			_, rs := expandToToken(norm, start, end)
			out = append(out, Match{Kind: p.kind, Key: p.key, Start: start, End: rs, Stem: true})
			return true
		}
		if !boundaryOK(norm, start, end) {
			return true
		}
		out = append(out, Match{Kind: p.kind, Key: p.key, Start: start, End: end})
		return true
	})
	if len(out) == 0 {
		return nil
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End > b.End
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		return !a.Stem && b.Stem
	})

	// a stem and a phrase can land on the same token; keep one
	dst := out[:1]
	for _, m := range out[1:] {
		last := dst[len(dst)-1]
		if m.Kind == last.Kind && m.Key == last.Key && m.Start == last.Start && m.End == last.End {
			continue
		}
		dst = append(dst, m)
	}
	return dst
}
