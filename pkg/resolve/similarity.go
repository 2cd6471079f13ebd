package resolve

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Ratio scores the similarity of two strings from 0 to 100 using
// normalized indel distance (insertions and deletions only, so a
// substitution costs two edits). Identical strings score 100 and strings
// with no characters in common score 0.
func Ratio(a, b string) int {
	lenSum := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if lenSum == 0 {
		return 100
	}

	dist := indelDistance([]rune(a), []rune(b))
	return int(math.Round(100 * float64(lenSum-dist) / float64(lenSum)))
}

// indelDistance is lenA + lenB - 2*LCS(a, b), computed with a two-row
// dynamic program.
func indelDistance(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return len(a) + len(b)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(b)]
	return len(a) + len(b) - 2*lcs
}

// PartialRatio scores how well the shorter string matches anywhere inside
// the longer one, from 0 to 100. An exact substring scores 100; otherwise
// the best Ratio of the shorter string against every window of its length
// in the longer string is returned.
func PartialRatio(a, b string) int {
	shorter, longer := a, b
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}

	if shorter == "" {
		return 100
	}
	if strings.Contains(longer, shorter) {
		return 100
	}

	shortRunes := []rune(shorter)
	longRunes := []rune(longer)
	window := len(shortRunes)

	best := 0
	for start := 0; start+window <= len(longRunes); start++ {
		score := Ratio(shorter, string(longRunes[start:start+window]))
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}

	return best
}
