package models

// Pagination describes an in-memory page over a fetched list. The
// console paginates client-side exactly like the original screens did.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// Paginate clamps page into range and slices items for it. Deleting
// the last row of a page beyond the first lands the caller on the
// previous page via the clamp.
func Paginate[T any](items []T, page, pageSize int) ([]T, *Pagination) {
	if pageSize <= 0 {
		pageSize = 4
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: len(items),
		TotalPages: totalPages,
	}
}
