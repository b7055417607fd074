package persistence

import "strings"

// ValidateSortField returns the field if it is in the allowed set, otherwise
// the fallback. Prevents order-by injection through list queries.
func ValidateSortField(field string, allowed map[string]bool, fallback string) string {
	if allowed[field] {
		return field
	}
	return fallback
}

// ValidateSortOrder normalizes a sort direction to ASC or DESC
func ValidateSortOrder(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}
