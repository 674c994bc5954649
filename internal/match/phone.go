package match

import (
	"regexp"
	"sort"
)

// phonePatterns are applied in order; every hit is normalized and collected.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:\+|00)?216\s*\d{1,3}\s*\d{2}\s*\d{2}\s*\d{2}`),
	regexp.MustCompile(`\d{2}\s*\d{3}\s*\d{3}`),
	regexp.MustCompile(`\d{3}\s*\d{2}\s*\d{2}\s*\d{2}`),
	regexp.MustCompile(`(?:\d{2}\s*){4}`),
	regexp.MustCompile(`\d{8}`),
}

// ExtractPhones returns the distinct normalized phone numbers found in text,
// sorted so callers iterate deterministically.
func ExtractPhones(text string) []string {
	if text == "" {
		return nil
	}
	text = foldSpaces(text)

	seen := make(map[string]struct{})
	for _, re := range phonePatterns {
		for _, hit := range re.FindAllString(text, -1) {
			if n := NormalizePhone(hit); n != "" {
				seen[n] = struct{}{}
			}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	phones := make([]string, 0, len(seen))
	for p := range seen {
		phones = append(phones, p)
	}
	sort.Strings(phones)
	return phones
}

// PhonesMatch reports whether two phone numbers denote the same line. Both
// sides are normalized; empty values never match. Numbers of at least 8
// digits also match on their last 8 digits.
func PhonesMatch(a, b string) bool {
	na, nb := NormalizePhone(a), NormalizePhone(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if len(na) >= localDigits && len(nb) >= localDigits {
		return na[len(na)-localDigits:] == nb[len(nb)-localDigits:]
	}
	return false
}

// MatchesAny reports whether phone matches any of the extracted numbers.
func MatchesAny(phone string, extracted []string) bool {
	if NormalizePhone(phone) == "" {
		return false
	}
	for _, p := range extracted {
		if PhonesMatch(phone, p) {
			return true
		}
	}
	return false
}
