// Package langhint guesses whether a question is Russian or English.
// The hint only feeds logs and the LLM prompt; parsing never branches on it
package langhint

import (
	"unicode"
)

// Hint is a coarse language guess
type Hint string

const (
	// HintRU means Cyrillic letters dominate
	HintRU Hint = "ru"
	// HintEN means Latin letters dominate
	HintEN Hint = "en"
	// HintUnknown means the text carries no letters to judge by
	HintUnknown Hint = "unknown"
)

// Detect counts Cyrillic vs Latin letters and returns the dominant side.
// Mixed questions lean Russian: a RU question quoting an English id or
// column name stays RU, while the reverse almost never happens
func Detect(s string) Hint {
	var cyrillic, latin int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		switch {
		case unicode.In(r, unicode.Cyrillic):
			cyrillic++
		case unicode.In(r, unicode.Latin):
			latin++
		}
	}

	switch {
	case cyrillic == 0 && latin == 0:
		return HintUnknown
	case cyrillic >= latin:
		return HintRU
	default:
		return HintEN
	}
}
