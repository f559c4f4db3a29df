// Package pagination implements opaque cursors and RFC 8288 Link headers for list endpoints.
package pagination

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidCursor means the cursor could not be decoded or belongs to another resource.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is a position in a list: the resource type and the id of the last item seen.
// An empty Value means the start of the list.
type Cursor struct {
	Type  string
	Value string
}

// Encode returns the URL-safe base64 form.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Type + ":" + c.Value))
}

// DecodeCursor parses s and checks it was issued for resourceType. An empty string is
// the start of the list.
func DecodeCursor(s, resourceType string) (Cursor, error) {
	if s == "" {
		return Cursor{Type: resourceType}, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	typ, value, ok := strings.Cut(string(raw), ":")
	if !ok || typ != resourceType {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{Type: typ, Value: value}, nil
}
