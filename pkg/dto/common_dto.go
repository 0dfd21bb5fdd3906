package dto

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type PageQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Size     int    `form:"size" binding:"omitempty,min=1"`
	Ordering string `form:"ordering"`
}

// Normalize applies the default page size and clamps it to max.
func (q PageQuery) Normalize(defaultSize, maxSize int) PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = defaultSize
	}
	if q.Size > maxSize {
		q.Size = maxSize
	}
	return q
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Size
}

type PaginatedResponse[T any] struct {
	Count      int64   `json:"count"`
	TotalPages int     `json:"total_pages"`
	Next       *string `json:"next"`
	Previous   *string `json:"previous"`
	Results    []T     `json:"results"`
}

// NewPaginatedResponse builds next/previous links by rewriting the page
// parameter of the request URL.
func NewPaginatedResponse[T any](results []T, total int64, q PageQuery, requestURL *url.URL) PaginatedResponse[T] {
	if results == nil {
		results = []T{}
	}

	totalPages := 0
	if q.Size > 0 {
		totalPages = int((total + int64(q.Size) - 1) / int64(q.Size))
	}

	res := PaginatedResponse[T]{
		Count:      total,
		TotalPages: totalPages,
		Results:    results,
	}
	if q.Page < totalPages {
		res.Next = pageLink(requestURL, q.Page+1)
	}
	if q.Page > 1 && totalPages > 0 {
		res.Previous = pageLink(requestURL, min(q.Page-1, totalPages))
	}
	return res
}

func pageLink(requestURL *url.URL, page int) *string {
	if requestURL == nil {
		return nil
	}
	u := *requestURL
	query := u.Query()
	if page == 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = query.Encode()
	link := u.String()
	return &link
}

// Ordering maps the public ordering names to columns. Unknown names fall
// back to the default.
type Ordering struct {
	Allowed map[string]string
	Default string
}

func (o Ordering) Clause(raw string) clause.OrderByColumn {
	raw = strings.TrimSpace(raw)
	desc := strings.HasPrefix(raw, "-")
	name := strings.TrimPrefix(raw, "-")

	column, ok := o.Allowed[name]
	if !ok {
		column = o.Allowed[o.Default]
		desc = false
	}
	return clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,required"`
}

type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// ParseIDs splits bulk-delete ids into unique UUIDs and the raw values that
// are not UUIDs at all.
func ParseIDs(raw []string) ([]uuid.UUID, []string) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	var invalid []string
	for _, value := range raw {
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			invalid = append(invalid, value)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, invalid
}

func UUIDStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
