package pagination

import (
	"net/url"
	"strconv"
)

// Page is one slice of a list plus the cursors around it.
type Page[T any] struct {
	Items      []T
	Total      int
	NextCursor string
	PrevCursor string
	Link       string
}

// Request describes the page wanted and how to build links to its neighbours.
type Request struct {
	Cursor   Cursor
	Limit    int
	BasePath string
	Query    url.Values
}

// Paginate cuts the page after req.Cursor out of items, which must already be in
// their final order. A cursor whose item has disappeared restarts from the top.
func Paginate[T any](items []T, req Request, id func(T) string) Page[T] {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := 0
	if req.Cursor.Value != "" {
		for i, item := range items {
			if id(item) == req.Cursor.Value {
				start = i + 1
				break
			}
		}
	}
	end := min(start+limit, len(items))
	page := Page[T]{Items: items[start:end], Total: len(items)}

	if end < len(items) {
		page.NextCursor = Cursor{Type: req.Cursor.Type, Value: id(items[end-1])}.Encode()
	}
	switch {
	case start == 0:
	case start <= limit:
		page.PrevCursor = Cursor{Type: req.Cursor.Type}.Encode()
	default:
		page.PrevCursor = Cursor{Type: req.Cursor.Type, Value: id(items[start-limit-1])}.Encode()
	}

	q := cloneValues(req.Query)
	q.Set("limit", strconv.Itoa(limit))
	page.Link = BuildLinkHeader(req.BasePath, q, page.NextCursor, page.PrevCursor)
	return page
}
