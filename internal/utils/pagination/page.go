package pagination

// Page is one slice of an ordered sequence plus navigation metadata.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Paginate slices items for a 1-based page of size limit.
// Callers validate page >= 1 and limit >= 1; smaller values are treated as 1.
// A page past the end yields an empty, non-nil slice rather than an error.
func Paginate[T any](items []T, page, limit int) Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(items)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	out := Page[T]{
		Items:      []T{},
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}

	// page <= totalPages keeps (page-1)*limit below total, so it cannot overflow
	if page > totalPages {
		return out
	}
	start := (page - 1) * limit
	end := start + min(limit, total-start)
	out.Items = append(out.Items, items[start:end]...)
	return out
}
