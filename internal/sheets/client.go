package sheets

import (
	"context"
	"fmt"

	sheets "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	"github.com/tberndt/sheetfeed/internal/dataset"
	"github.com/tberndt/sheetfeed/internal/faults"
)

// Client wraps the Google Sheets API service.
type Client struct {
	service *sheets.Service
}

// NewClient creates a Sheets client. The caller supplies the authenticated
// transport (or a test endpoint) via opts.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Client{service: service}, nil
}

// SheetID returns the numeric id of the named sheet (tab), or a NotFoundError
// when the spreadsheet has no tab with that title.
func (c *Client) SheetID(ctx context.Context, spreadsheetID, title string) (int64, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, faults.Remote("sheets", "spreadsheets.get", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == title {
			return sheet.Properties.SheetId, nil
		}
	}

	return 0, &faults.NotFoundError{Name: title}
}

// EnsureSheet returns the id of the named sheet (tab), creating it when the
// spreadsheet has no tab with that title. rows and cols size the grid of a
// newly created tab; zero leaves the service default.
func (c *Client) EnsureSheet(ctx context.Context, spreadsheetID, title string, rows, cols int64) (sheetID int64, created bool, err error) {
	sheetID, err = c.SheetID(ctx, spreadsheetID, title)
	if err == nil {
		return sheetID, false, nil
	}
	if !faults.IsNotFound(err) {
		return 0, false, err
	}

	properties := &sheets.SheetProperties{Title: title}
	if rows > 0 && cols > 0 {
		properties.GridProperties = &sheets.GridProperties{
			RowCount:    rows,
			ColumnCount: cols,
		}
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{Properties: properties},
		}},
	}

	resp, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, &rq).Context(ctx).Do()
	if err != nil {
		return 0, false, faults.Remote("sheets", "spreadsheets.batchUpdate", err)
	}

	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			return reply.AddSheet.Properties.SheetId, true, nil
		}
	}

	return 0, true, nil
}

// WriteTable writes the table's header and rows starting at A1 of the named
// sheet. Values are written raw; nothing is interpreted as a formula.
func (c *Client) WriteTable(ctx context.Context, spreadsheetID, title string, table *dataset.Table) (*WriteResult, error) {
	writeRange := fmt.Sprintf("%s!A1", title)
	values := sheets.ValueRange{
		Range:  writeRange,
		Values: table.Values(),
	}

	resp, err := c.service.Spreadsheets.Values.Update(spreadsheetID, writeRange, &values).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return nil, faults.Remote("sheets", "values.update", err)
	}

	return &WriteResult{
		Range:        resp.UpdatedRange,
		UpdatedRows:  resp.UpdatedRows,
		UpdatedCells: resp.UpdatedCells,
	}, nil
}

// UpdateCell writes a single cell, addressed by zero-based row and column.
// The value goes in as user-entered input so formulas like =IMAGE(...) are
// evaluated by the service.
func (c *Client) UpdateCell(ctx context.Context, spreadsheetID, title string, row, col int, value string) error {
	writeRange := fmt.Sprintf("%s!%s", title, dataset.A1(row, col))
	values := sheets.ValueRange{
		Range:  writeRange,
		Values: [][]interface{}{{value}},
	}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, writeRange, &values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return faults.Remote("sheets", "values.update", err)
	}

	return nil
}

// AddColumn writes a header plus one value per row into the zero-based
// column startCol of an existing sheet. The sheet must already exist; a
// missing tab is a NotFoundError.
func (c *Client) AddColumn(ctx context.Context, spreadsheetID, title, header string, startCol int, values []string) error {
	if _, err := c.SheetID(ctx, spreadsheetID, title); err != nil {
		return err
	}

	column := make([][]interface{}, 0, len(values)+1)
	column = append(column, []interface{}{header})
	for _, v := range values {
		column = append(column, []interface{}{v})
	}

	writeRange := fmt.Sprintf("%s!%s:%s", title, dataset.A1(0, startCol), dataset.A1(len(values), startCol))
	vr := sheets.ValueRange{
		Range:  writeRange,
		Values: column,
	}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, writeRange, &vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return faults.Remote("sheets", "values.update", err)
	}

	return nil
}
