package matching

import "github.com/mmwithiga/tarumbeta/features"

// DedupeKey is the key two display names must share to count as the same
// instructor: NFKC normalized, trimmed and case folded.
func DedupeKey(name string) string {
	return features.CanonicalValue(name)
}

// Dedupe keeps the first item for every distinct DedupeKey of name(item).
// Items are expected in rank order, so the highest ranked occurrence wins.
func Dedupe[T any](items []T, name func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		key := DedupeKey(name(item))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
