package sheets

// WriteResult reports what a table write changed, as confirmed by the
// service.
type WriteResult struct {
	// Range is the A1 range the service reports as updated.
	Range string `json:"range"`

	// UpdatedRows is the number of rows written, including the header.
	UpdatedRows int64 `json:"updatedRows"`

	// UpdatedCells is the total number of cells written.
	UpdatedCells int64 `json:"updatedCells"`
}

// ImageFormula builds the cell formula that renders the image behind a Drive
// share link.
func ImageFormula(shareURL string) string {
	return `=IMAGE("` + shareURL + `")`
}
