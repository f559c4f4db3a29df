package pagination

import (
	"net/url"
	"strings"
)

// BuildLinkHeader renders RFC 8288 next/prev links on basePath, keeping the other
// query parameters of the request.
func BuildLinkHeader(basePath string, query url.Values, nextCursor, prevCursor string) string {
	var links []string
	for _, l := range []struct{ cursor, rel string }{{nextCursor, "next"}, {prevCursor, "prev"}} {
		if l.cursor == "" {
			continue
		}
		q := cloneValues(query)
		q.Set("cursor", l.cursor)
		links = append(links, "<"+basePath+"?"+q.Encode()+`>; rel="`+l.rel+`"`)
	}
	return strings.Join(links, ", ")
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
