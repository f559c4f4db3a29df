package pantry

// ItemOutput wraps a single item.
type ItemOutput struct {
	Body Item
}

// ItemCreateOutput for POST /pantry (201 Created)
type ItemCreateOutput struct {
	Location string `header:"Location" doc:"URL of the created item"`
	Body     Item
}

// ListData is the response body of a pantry page.
type ListData struct {
	Items []Item `json:"items" doc:"Items on this page, ordered by name"`
	Total int    `json:"total" doc:"Total count of items matching the filter" example:"12"`
}

// ItemsListOutput carries the page and its RFC 8288 Link header.
type ItemsListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ListData
}
