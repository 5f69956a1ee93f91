package pagination

// Page is a slice of an already-materialised list plus the counters callers
// need to render pagination controls. PageNumber is zero-based.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items into the requested page. It is a pure view over the
// input: pages past the end come back empty rather than failing, and the
// input slice is never mutated. A non-positive pageSize yields an empty page.
func Paginate[T any](items []T, pageNumber, pageSize int) Page[T] {
	total := len(items)

	page := Page[T]{
		Items:      []T{},
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: total,
	}
	if pageSize <= 0 || pageNumber < 0 {
		return page
	}

	page.TotalPages = (total + pageSize - 1) / pageSize

	start := pageNumber * pageSize
	if start > total {
		return page
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	page.Items = items[start:end]
	return page
}
