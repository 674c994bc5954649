package match

import (
	"strings"

	"github.com/agext/levenshtein"
)

// indelParams makes a substitution cost as much as a delete plus an insert,
// so the distance is the insert/delete distance used by ratio().
var indelParams = levenshtein.NewParams().SubCost(2)

// Ratio returns the normalized insert/delete similarity of a and b in [0,1].
func Ratio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	return ratio(a, la, b, lb)
}

func ratio(a string, la int, b string, lb int) float64 {
	total := la + lb
	if total == 0 {
		return 1
	}
	d := levenshtein.Distance(a, b, indelParams)
	r := 1 - float64(d)/float64(total)
	if r < 0 {
		return 0
	}
	return r
}

// PartialRatio scores the best alignment of the shorter string inside the
// longer one, in [0,1]. Windows that hang over either edge of the longer
// string are considered too. Comparison is case-sensitive; callers fold
// both sides first. Either side empty scores 0.
func PartialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	needle := string(short)
	if strings.Contains(string(long), needle) {
		return 1
	}

	m, n := len(short), len(long)
	best := 0.0
	consider := func(window []rune) bool {
		if r := ratio(needle, m, string(window), len(window)); r > best {
			best = r
		}
		return best >= 1
	}

	for i := 1; i < m; i++ {
		if consider(long[:i]) {
			return 1
		}
	}
	for i := 0; i+m <= n; i++ {
		if consider(long[i : i+m]) {
			return 1
		}
	}
	for i := n - m + 1; i < n; i++ {
		if consider(long[i:]) {
			return 1
		}
	}
	return best
}

// FoldedPartialRatio folds both inputs before scoring, making the result
// independent of case and accents.
func FoldedPartialRatio(a, b string) float64 {
	return PartialRatio(FoldText(strings.TrimSpace(a)), FoldText(b))
}
