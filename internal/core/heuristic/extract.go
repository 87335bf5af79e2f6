package heuristic

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"vidtally/internal/core/lexicon"
)

// grouped literals first so "1 000 000" reads whole, not as "1"
var reNumber = regexp.MustCompile(`\d{1,3}(?:[ ,_]\d{3})+|\d+`)

// amountAfter reads the first numeric literal at or after pos, accepting
// space, comma and underscore digit grouping
func amountAfter(norm string, pos int) (int64, bool) {
	if pos < 0 || pos >= len(norm) {
		return 0, false
	}
	loc := reNumber.FindStringIndex(norm[pos:])
	if loc == nil {
		return 0, false
	}
	raw := norm[pos+loc[0] : pos+loc[1]]
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ',', '_':
			return -1
		}
		return r
	}, raw)
	v, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Identifiers are latin tokens: ids in the data are hex, UUIDs or
// creator-prefixed handles, so a Cyrillic word is never one. The stoplist
// keeps English filler and date words from being read as ids
var idStopwords = map[string]struct{}{
	"id": {}, "the": {}, "a": {}, "an": {}, "of": {}, "in": {}, "on": {},
	"at": {}, "for": {}, "to": {}, "from": {}, "by": {}, "with": {},
	"and": {}, "or": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"last": {}, "past": {}, "this": {}, "that": {}, "week": {}, "weeks": {},
	"day": {}, "days": {}, "hour": {}, "hours": {}, "month": {}, "months": {},
	"year": {}, "years": {}, "yesterday": {}, "today": {}, "now": {},
}

func isIDByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}

// nextIDToken returns the first plausible id token after from. It looks at
// most a few tokens ahead so far-away words never become identifiers, and
// skips tokens the lexicon already claimed for another meaning
func nextIDToken(norm string, from int, ms []lexicon.Match) (string, bool) {
	if from < 0 || from >= len(norm) {
		return "", false
	}
	rest := norm[from:]
	for i, steps := 0, 0; i < len(rest) && steps < 4; {
		c := rest[i]
		if isIDByte(c) {
			j := i
			for j < len(rest) && isIDByte(rest[j]) {
				j++
			}
			tok := rest[i:j]
			steps++
			if acceptableID(tok, from+i, from+j, ms) {
				return tok, true
			}
			i = j
			continue
		}

		r, sz := utf8.DecodeRuneInString(rest[i:])
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			// non-latin word, skip it whole
			j := i
			for j < len(rest) {
				rr, ssz := utf8.DecodeRuneInString(rest[j:])
				if !unicode.IsLetter(rr) && !unicode.IsNumber(rr) {
					break
				}
				j += ssz
			}
			steps++
			i = j
			continue
		}
		i += sz
	}
	return "", false
}

func acceptableID(tok string, start, end int, ms []lexicon.Match) bool {
	if len(tok) < 2 {
		return false
	}
	if _, stop := idStopwords[tok]; stop {
		return false
	}
	alnum := false
	for i := 0; i < len(tok); i++ {
		if tok[i] != '_' && tok[i] != '-' {
			alnum = true
			break
		}
	}
	if !alnum {
		return false
	}
	for _, m := range ms {
		switch m.Kind {
		case lexicon.KindCreatorMarker, lexicon.KindVideoMarker:
			continue
		}
		if m.Start < end && start < m.End {
			return false
		}
	}
	return true
}

// resolveIdentifiers extracts creator and video filters. A token carrying
// the literal creator prefix and a digit is a creator id on its own;
// otherwise marker wording points at the next id-looking token
func resolveIdentifiers(norm string, ms []lexicon.Match) (creator, video string) {
	for _, m := range ms {
		if m.Kind != lexicon.KindCreatorMarker || creator != "" {
			continue
		}
		tok := norm[m.Start:m.End]
		if rest, ok := strings.CutPrefix(tok, "creator"); ok && rest != "" && hasDigit(rest) {
			creator = tok
			continue
		}
		if id, ok := nextIDToken(norm, m.End, ms); ok {
			creator = id
		}
	}
	for _, m := range ms {
		if m.Kind != lexicon.KindVideoMarker || video != "" {
			continue
		}
		if id, ok := nextIDToken(norm, m.End, ms); ok {
			video = id
		}
	}
	return creator, video
}
