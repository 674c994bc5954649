// Package match provides the string-level evidence primitives used to link a
// directory record to a scraped social profile: phone normalization and
// extraction, fuzzy partial similarity, and address detection in short names.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// countryPrefix is the international dialing code stripped from local numbers.
const countryPrefix = "216"

// localDigits is the length of a local subscriber number.
const localDigits = 8

// NormalizePhone reduces a phone number to its comparable local digits:
//  1. Drop every non-digit
//  2. Drop a leading "216" country code
//  3. Otherwise keep only the last 8 digits of longer numbers
//
// Empty input yields "".
func NormalizePhone(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if strings.HasPrefix(digits, countryPrefix) {
		return digits[len(countryPrefix):]
	}
	if len(digits) > localDigits {
		return digits[len(digits)-localDigits:]
	}
	return digits
}

// FoldText lowercases s, strips diacritics and maps every unicode space to
// an ASCII space so "Café  Lac" and "CAFE LAC" compare equal.
func FoldText(s string) string {
	if s == "" {
		return ""
	}

	// Chains carry state, so one is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	return strings.ToLower(foldSpaces(folded))
}

// foldSpaces replaces non-ASCII whitespace (NBSP, narrow NBSP) with ' '.
func foldSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r != ' ' && (unicode.IsSpace(r) && r > unicode.MaxASCII || unicode.Is(unicode.Zs, r)) {
			return ' '
		}
		return r
	}, s)
}
