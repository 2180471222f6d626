package tui

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// nearest returns the index of the item best matching query: the first
// case-insensitive prefix match, else the smallest edit distance with the
// earliest item winning ties. It returns -1 for an empty list or query.
func nearest(items []string, query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(items) == 0 {
		return -1
	}
	for i, it := range items {
		if strings.HasPrefix(strings.ToLower(it), q) {
			return i
		}
	}
	best, bestDist := -1, 0
	for i, it := range items {
		d := levenshtein.ComputeDistance(strings.ToLower(it), q)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
