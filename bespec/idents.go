package bespec

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UpperIdent joins the given parts with underscores and upper-cases the
// result, which is how generated C spells enum constants such as
// REG_GP_SP or CLASS_SPARC_FLAGS.
func UpperIdent(parts ...string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteString(makeIdentUnderscores(part))
	}
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Upper(language.Und).String(b.String())
}

func makeIdentUnderscores(inp string) string {
	var b strings.Builder
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		case unicode.IsLetter(r):
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// isIdent reports whether s can be used verbatim as a C identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r < unicode.MaxASCII && unicode.IsLetter(r):
		case r < unicode.MaxASCII && unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}
