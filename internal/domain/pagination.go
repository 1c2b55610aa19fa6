package domain

// Pagination 是列表接口的分页参数，每个列表视图各自持有一份
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	Total       int `json:"total"`
}

func DefaultPagination() Pagination {
	return Pagination{
		CurrentPage: 1,
		PageSize:    15,
	}
}
