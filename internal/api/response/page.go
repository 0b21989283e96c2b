package response

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MinPageSize     = 1
	MaxPageSize     = 100
)

// PageRequest is a zero-based page index plus a size clamped to [1,100].
type PageRequest struct {
	Page int
	Size int
}

func NewPageRequest(page, size int) PageRequest {
	if page < 0 {
		page = 0
	}
	if size < MinPageSize {
		size = MinPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: page, Size: size}
}

// ParsePageRequest reads ?page=&size= leniently: absent or malformed values get defaults,
// out of range values are clamped.
func ParsePageRequest(c *gin.Context) PageRequest {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 0
	}
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil {
		size = DefaultPageSize
	}
	return NewPageRequest(page, size)
}

func (p PageRequest) Offset() int { return p.Page * p.Size }

// Page is the wrapper every paginated list is nested in.
type Page[T any] struct {
	Items         []T   `json:"items"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	PageSize      int   `json:"pageSize"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(req.Size)))
	}
	return Page[T]{
		Items:         items,
		TotalElements: total,
		TotalPages:    totalPages,
		CurrentPage:   req.Page,
		PageSize:      req.Size,
		HasNext:       req.Page < totalPages-1,
		HasPrevious:   req.Page > 0,
	}
}

// MapPage converts the items of a page, keeping its metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return Page[U]{
		Items:         out,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		CurrentPage:   p.CurrentPage,
		PageSize:      p.PageSize,
		HasNext:       p.HasNext,
		HasPrevious:   p.HasPrevious,
	}
}
