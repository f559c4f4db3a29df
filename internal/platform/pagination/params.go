package pagination

// DefaultLimit is the page size when the client does not ask for one.
const DefaultLimit = 20

// Params embeds into huma input structs of list operations.
type Params struct {
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous Link header"`
	Limit  int    `query:"limit"  doc:"Maximum items per page"                   default:"20" minimum:"1" maximum:"100"`
}

// PageLimit returns Limit, or DefaultLimit when unset.
func (p Params) PageLimit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}
	return p.Limit
}
