package shared

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageQuery 分页参数，page 从 1 开始
type PageQuery struct {
	Page     int
	PageSize int
}

// NewPageQuery 规范化分页参数
func NewPageQuery(page, pageSize int) PageQuery {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageQuery{Page: page, PageSize: pageSize}
}

func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p PageQuery) Limit() int {
	return p.PageSize
}

// Page 分页结果
type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

// MapPage 转换分页结果的元素类型
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	items := make([]R, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[R]{Items: items, Total: p.Total, Page: p.Page, PageSize: p.PageSize}
}
