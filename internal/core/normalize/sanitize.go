package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize strips the bytes that must never reach logs or the parsers:
// NUL, ASCII controls other than '\n', '\r', '\t', DEL, the C1 range
// U+0080..U+009F, and invalid UTF-8. Clean input comes back as the same
// string with no allocation
func Sanitize(s string) string {
	if s == "" {
		return s
	}

	n := len(s)
	i := 0

	// scan forward while everything is clean
	for i < n {
		b := s[i]
		if b < 0x20 { // ASCII control
			if b == '\n' || b == '\r' || b == '\t' {
				i++
				continue
			}
			break
		}
		if b == 0x7F { // DEL
			break
		}
		if b < 0x80 { // ASCII
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			break // invalid byte
		}
		if r >= 0x80 && r <= 0x9F { // C1 control
			break
		}
		i += size
	}
	if i == n {
		return s
	}

	// something needs dropping, rebuild from the clean prefix
	var out strings.Builder
	out.Grow(n)
	out.WriteString(s[:i])

	for i < n {
		c := s[i]

		if c < 0x20 {
			if c == '\n' || c == '\r' || c == '\t' {
				out.WriteByte(c)
			}
			i++
			continue
		}
		if c == 0x7F {
			i++
			continue
		}
		if c < 0x80 {
			out.WriteByte(c)
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		if r >= 0x80 && r <= 0x9F {
			i += size
			continue
		}

		// copy the source bytes as they are, no re-encode
		out.WriteString(s[i : i+size])
		i += size
	}

	return out.String()
}
