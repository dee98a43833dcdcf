package pagination

// DefaultPageSize is the number of rows shown per page of a listing.
const DefaultPageSize = 6

type Pagination struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"-"`
}

// Window is the LIMIT/OFFSET pair for a 1-based page.
type Window struct {
	Limit  int
	Offset int
}

type PageInfo struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// WindowFor computes the window for page. Pages below 1 resolve to offset 0;
// bounds beyond the data are left to the store, which returns no rows.
func WindowFor(page, size int) Window {
	if size <= 0 {
		size = DefaultPageSize
	}
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	return Window{Limit: size, Offset: offset}
}

// TotalPages returns ceil(count / size).
func TotalPages(count int64, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 0
	}
	return int((count + int64(size) - 1) / int64(size))
}

// ClampPage keeps a caller-supplied page number within [1, totalPages]. A
// listing with no pages clamps to 1.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}
