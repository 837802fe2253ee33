package domain

// IndexPageSize is the fixed page size for browsing topical indexes.
const IndexPageSize = 10

// Page is one slice of a paginated sequence.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Index      int  `json:"index"`
	TotalPages int  `json:"total_pages"`
	Total      int  `json:"total"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// Paginate returns page index of items split into pages of size.
// It never mutates items and never fails: an out-of-range index yields an
// empty slice, and callers are expected to validate navigation with
// ValidPage before moving a cursor.
func Paginate[T any](items []T, index, size int) Page[T] {
	if size <= 0 {
		size = 1
	}
	total := len(items)
	p := Page[T]{
		Index:      index,
		TotalPages: TotalPages(total, size),
		Total:      total,
		HasPrev:    index > 0,
		HasNext:    (index+1)*size < total,
	}

	start := index * size
	if index < 0 || start >= total {
		p.Items = []T{}
		return p
	}
	end := start + size
	if end > total {
		end = total
	}
	p.Items = items[start:end]
	return p
}

// TotalPages is ceil(n/size), zero when n is zero.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ValidPage reports whether index addresses an existing page.
func ValidPage(n, size, index int) bool {
	return index >= 0 && index < TotalPages(n, size)
}
