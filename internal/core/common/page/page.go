package page

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/frahmantamala/employee-management/internal"
)

const (
	DefaultSize = 20
	MaxSize     = 100
	// MaxNumber keeps Number*Size within int for any allowed size.
	MaxNumber = math.MaxInt / MaxSize
)

// Order is one sort key. Column is the storage column resolved from the
// public field name.
type Order struct {
	Field  string
	Column string
	Desc   bool
}

// Request is a zero-based page number, a page size and sort keys.
type Request struct {
	Number int
	Size   int
	Sort   []Order
}

func (r Request) Offset() int {
	return r.Number * r.Size
}

// OrderClause renders the sort keys as SQL, e.g. "name DESC, id ASC".
// Columns come from a whitelist, never from user input. "id ASC" is appended
// as a tie-breaker unless id is already a key, so page boundaries are stable.
func (r Request) OrderClause(fallback string) string {
	if len(r.Sort) == 0 {
		return fallback
	}
	parts := make([]string, 0, len(r.Sort)+1)
	hasID := false
	for _, o := range r.Sort {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		if o.Column == "id" {
			hasID = true
		}
		parts = append(parts, o.Column+" "+dir)
	}
	if !hasID {
		parts = append(parts, "id ASC")
	}
	return strings.Join(parts, ", ")
}

type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func New[T any](content []T, req Request, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int(math.Ceil(float64(total) / float64(req.Size)))
	}
	return &Page[T]{
		Content:       content,
		Page:          req.Number,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// Map converts the content of p, keeping its paging metadata.
func Map[S, T any](p *Page[S], fn func(S) T) *Page[T] {
	out := make([]T, len(p.Content))
	for i, item := range p.Content {
		out[i] = fn(item)
	}
	return &Page[T]{
		Content:       out,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}

// FromQuery reads page, size and sort parameters. sortable maps public field
// names to storage columns; "sort=name,desc" may repeat.
func FromQuery(q url.Values, sortable map[string]string) (Request, error) {
	req := Request{Number: 0, Size: DefaultSize}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Request{}, internal.NewValidationFieldError("page", "page must be a non-negative integer", internal.ErrCodeValidationFailed)
		}
		if n > MaxNumber {
			return Request{}, internal.NewValidationFieldError("page", fmt.Sprintf("page must not exceed %d", MaxNumber), internal.ErrCodeValidationFailed)
		}
		req.Number = n
	}

	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxSize {
			return Request{}, internal.NewValidationFieldError("size", fmt.Sprintf("size must be between 1 and %d", MaxSize), internal.ErrCodeValidationFailed)
		}
		req.Size = n
	}

	for _, raw := range q["sort"] {
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, ",")
		field := strings.TrimSpace(parts[0])
		column, ok := sortable[field]
		if !ok {
			return Request{}, internal.NewValidationFieldError("sort", fmt.Sprintf("cannot sort by %q", field), internal.ErrCodeInvalidSort)
		}
		order := Order{Field: field, Column: column}
		if len(parts) > 1 {
			switch strings.ToLower(strings.TrimSpace(parts[1])) {
			case "asc":
			case "desc":
				order.Desc = true
			default:
				return Request{}, internal.NewValidationFieldError("sort", "sort direction must be asc or desc", internal.ErrCodeInvalidSort)
			}
		}
		req.Sort = append(req.Sort, order)
	}

	return req, nil
}
