package syncer

import "strings"

// Filter returns the records whose searchable fields contain term as a
// case-insensitive substring. A blank or whitespace-only term is the
// identity filter and returns list unchanged. Pure: never mutates list.
func Filter[T any](list []T, term string, searchText func(T) []string) []T {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return list
	}

	filtered := make([]T, 0, len(list))
	for _, rec := range list {
		for _, field := range searchText(rec) {
			if strings.Contains(strings.ToLower(field), needle) {
				filtered = append(filtered, rec)
				break
			}
		}
	}
	return filtered
}
