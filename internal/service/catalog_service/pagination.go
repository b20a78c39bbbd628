package catalog_service

// Paginate slices items into the 1-based page of the given size. Page and
// limit below 1 are treated as 1, pages past the end are empty.
func Paginate[T any](items []T, page, limit int) Page[T] {
	page = max(page, 1)
	limit = max(limit, 1)

	total := len(items)
	result := Page[T]{
		Items:      []T{},
		Total:      total,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
	}

	// compared before multiplying, (page-1)*limit overflows for huge pages
	if page > result.TotalPages {
		return result
	}
	start := (page - 1) * limit
	end := min(start+limit, total)
	result.Items = items[start:end]
	return result
}
