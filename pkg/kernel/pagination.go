package kernel

// PaginationOptions carries paging parameters from the API layer
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize applies defaults and bounds to the options
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

// Offset returns the row offset for the current page
func (p PaginationOptions) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page describes the position of a result set within the full collection
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// Paginated wraps a page of items with its paging metadata
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// HasMore reports whether a further page exists
func (p *Paginated[T]) HasMore() bool {
	return (p.Page.Number-1)*p.Page.Size+len(p.Items) < p.Page.Total
}
