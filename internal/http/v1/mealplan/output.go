package mealplan

// EntryAddOutput for POST /meal-plan (201 Created)
type EntryAddOutput struct {
	Body Entry
}

// ListData is the calendar for a date range.
type ListData struct {
	From    string  `json:"from"    doc:"First day, inclusive"`
	To      string  `json:"to"      doc:"Last day, inclusive"`
	Entries []Entry `json:"entries" doc:"Entries ordered by date, then meal slot"`
	Count   int     `json:"count"   doc:"Number of entries"`
}

// EntriesListOutput for GET /meal-plan
type EntriesListOutput struct {
	Body ListData
}
