// Package normalize is the deterministic text pipeline every question walks
// through before any parse strategy sees it. In order: UTF-8 repair, NFKC,
// case folding, stripping combining and format marks, width folding,
// cyrillic yo to ye so lexicon stems match both spellings, and whitespace
// collapse with trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer runs the pipeline. Safe for concurrent use, the transformer
// chains live in a pool
type Normalizer struct{}

// transform.Chain carries state, so each goroutine takes a fresh one
var chainPool = sync.Pool{
	New: func() any {
		// the order here is the pipeline order
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)), // combining marks
			runes.Remove(runes.In(unicode.Cf)), // format chars, ZWJ ZWNJ FEFF
			width.Fold,                         // fullwidth forms to ASCII
		)
	},
}

// New returns a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize runs s through the full pipeline
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)
	s = strings.ToValidUTF8(s, "")

	// NFKC through width folding ride the pooled chain
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	ns = yoFold(ns)
	return collapseSpaces(ns)
}

// yoFold maps ё to е so "объём"/"объем" style variants normalize identically.
// Case folding has already run, but the uppercase form is handled anyway
func yoFold(s string) string {
	if !strings.ContainsAny(s, "ёЁ") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case 'ё':
			b.WriteRune('е')
		case 'Ё':
			b.WriteRune('Е')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseSpaces squeezes whitespace runs down to one ASCII space. A run
// holding any newline becomes a single newline instead, and the edges are
// trimmed
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	sawNL := false
	flush := func() {
		if !inWS {
			return
		}
		if sawNL {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		inWS = false
		sawNL = false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return strings.Trim(b.String(), " \n\t\r")
}
