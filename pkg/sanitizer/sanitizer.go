package sanitizer

import (
	"regexp"
	"strings"
)

// Strategy is a single normalization step; Pipeline applies them in order.
type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var reNonCodeChars = regexp.MustCompile(`[^0-9A-Za-z]+`)

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

func upper(s string) string {
	return strings.ToUpper(s)
}

// NormalizeCouponCode canonicalizes a user-typed promotion code the way the
// booking backend stores them: trimmed, alphanumeric only, uppercase.
func NormalizeCouponCode(code string) string {
	p := Pipeline{
		trimSpace,
		func(s string) string { return reNonCodeChars.ReplaceAllString(s, "") },
		upper,
	}
	return p.Apply(code)
}

// NormalizeRoomID trims and lowercases a room identifier.
func NormalizeRoomID(id string) string {
	p := Pipeline{trimSpace, strings.ToLower}
	return p.Apply(id)
}
