package paginate

// Paginator normalizes page/page_size into safe offset/limit values and
// shapes the uniform paginated envelope every list endpoint returns.
type Paginator struct {
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// New clamps page to >= 1 and pageSize to [1, MaxPageSize].
func New(page, pageSize int) Paginator {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Paginator{Page: page, PageSize: pageSize}
}

// Offset returns the SQL offset for the current page.
func (p Paginator) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the SQL limit (same as page size).
func (p Paginator) Limit() int {
	return p.PageSize
}

// TotalPages returns ceil(total/page_size), or 0 when total <= 0.
func (p Paginator) TotalPages(total int) int {
	return TotalPages(total, p.PageSize)
}

func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Transformer maps a raw item into its response shape.
type Transformer[T, R any] func(T) R

// BuildResponse shapes the paginated envelope with a caller-chosen items key.
func BuildResponse[T, R any](p Paginator, items []T, total int, itemsKey string, transform Transformer[T, R]) map[string]interface{} {
	transformed := make([]R, 0, len(items))
	for _, item := range items {
		transformed = append(transformed, transform(item))
	}

	return map[string]interface{}{
		itemsKey:      transformed,
		"total":       total,
		"page":        p.Page,
		"page_size":   p.PageSize,
		"total_pages": p.TotalPages(total),
	}
}

// Identity is the default transformer.
func Identity[T any](item T) T { return item }
