package match

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// commonWords are generic business-category and place tokens that carry no
// address evidence on their own.
var commonWords = map[string]bool{
	"restaurant": true,
	"cafe":       true,
	"bistro":     true,
	"pub":        true,
	"bar":        true,
	"grill":      true,
	"pizza":      true,
	"burger":     true,
	"tunis":      true,
	"tunisie":    true,
}

var segmentSep = regexp.MustCompile(`[,;]`)

const (
	// wholeSegmentScale weights a full segment hit by its share of the name.
	wholeSegmentScale = 3.0
	// wholeSegmentCap bounds a full segment hit.
	wholeSegmentCap = 0.9
	// tokenScore is awarded when a single significant address word appears.
	tokenScore = 0.6
)

// IsCommonWord reports whether token is on the generic stop list.
func IsCommonWord(token string) bool {
	return commonWords[FoldText(token)]
}

// AddressSegments splits an address into the folded segments worth looking
// for in a display name. Segments of 3 characters or less, purely numeric
// segments and segments made only of stop-list words are dropped.
func AddressSegments(address string) []string {
	var out []string
	for _, part := range segmentSep.Split(FoldText(address), -1) {
		part = strings.Join(strings.Fields(part), " ")
		if utf8.RuneCountInString(part) <= 3 || isDigits(part) || onlyCommon(part) {
			continue
		}
		out = append(out, part)
	}
	return out
}

// AddressInName scores how strongly a short profile display name embeds
// fragments of the business address. A whole segment scores its length
// share of the name times 3 (capped at 0.9); a single significant word
// scores 0.6. The best hit wins; no hit scores 0.
func AddressInName(displayName, address string) float64 {
	name := strings.Join(strings.Fields(FoldText(displayName)), " ")
	if name == "" || strings.TrimSpace(address) == "" {
		return 0
	}
	nameLen := float64(utf8.RuneCountInString(name))

	best := 0.0
	for _, seg := range AddressSegments(address) {
		if strings.Contains(name, seg) {
			score := float64(utf8.RuneCountInString(seg)) / nameLen * wholeSegmentScale
			if score > wholeSegmentCap {
				score = wholeSegmentCap
			}
			if score > best {
				best = score
			}
			continue
		}
		for _, tok := range strings.Fields(seg) {
			if utf8.RuneCountInString(tok) <= 2 || commonWords[tok] {
				continue
			}
			if strings.Contains(name, tok) && tokenScore > best {
				best = tokenScore
			}
		}
	}
	return best
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func onlyCommon(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return true
	}
	for _, w := range words {
		if !commonWords[w] {
			return false
		}
	}
	return true
}
