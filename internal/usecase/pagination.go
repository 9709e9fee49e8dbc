package usecase

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// paginate normalizes a 1-based page and page size into limit/offset.
func paginate(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
