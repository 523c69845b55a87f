package utils

// Bounds applied to every list endpoint.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ClampLimit forces limit into (0, MaxPageSize], falling back to
// DefaultPageSize for zero, negative or oversized values.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxPageSize {
		return DefaultPageSize
	}
	return limit
}

// ClampOffset forces offset to be non-negative
func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// TotalPages returns how many pages of size limit cover totalCount items
func TotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := int((totalCount + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}
	return pages
}
