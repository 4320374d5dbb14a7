// File path: internal/kb/similarity.go
package kb

import "strings"

// Similarity scores how close two strings are on a [0,1] scale using
// normalized Levenshtein distance: (len(longer) - distance) / len(longer)
// over the lowercased inputs. Two empty strings score 1.0. Scores stay as
// raw floats; rounding happens only at display time.
func Similarity(a, b string) float64 {
	left := []rune(strings.ToLower(a))
	right := []rune(strings.ToLower(b))
	longer, shorter := left, right
	if len(right) > len(left) {
		longer, shorter = right, left
	}
	if len(longer) == 0 {
		return 1.0
	}
	dist := levenshtein(longer, shorter)
	return float64(len(longer)-dist) / float64(len(longer))
}

// levenshtein computes the edit distance between two rune slices using the
// classic two-row dynamic program.
func levenshtein(a, b []rune) int {
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := 0; i <= len(a); i++ {
		prev[i] = i
	}
	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[i] = min3(curr[i-1]+1, prev[i]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
