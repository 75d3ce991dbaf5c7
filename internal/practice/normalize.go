package practice

import "strings"

// normalizeAnswer lowercases, trims, and collapses runs of whitespace so
// that "  SEEN[num] = I  " compares equal to "seen[num] = i".
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
