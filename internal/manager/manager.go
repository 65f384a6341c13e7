package manager

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/tberndt/sheetfeed/internal/creds"
	"github.com/tberndt/sheetfeed/internal/dataset"
	"github.com/tberndt/sheetfeed/internal/drive"
	"github.com/tberndt/sheetfeed/internal/faults"
	"github.com/tberndt/sheetfeed/internal/logging"
	"github.com/tberndt/sheetfeed/internal/sheets"
)

// NoImageMarker is written into an image column cell whose source value is
// empty.
const NoImageMarker = "no image"

// gridPadding is the extra rows/columns allocated beyond the table when a
// new sheet tab is created.
const gridPadding = 10

// Config carries everything needed to construct a Manager.
type Config struct {
	// Source yields the service account credentials.
	Source creds.Source

	// FolderID is the Drive folder the manager is bound to.
	FolderID string

	// Logger receives operation logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Manager ties an authenticated Drive client and Sheets client together
// behind the operations sheetfeed exposes. Credentials are resolved exactly
// once, at construction; the manager never mutates them afterwards.
type Manager struct {
	drive  *drive.Client
	sheets *sheets.Client
	log    *slog.Logger
	email  string
}

// New resolves credentials from cfg.Source and builds the Drive and Sheets
// service handles. It fails with a *faults.CredentialsError before any
// handle exists when resolution or parsing fails.
func New(ctx context.Context, cfg Config) (*Manager, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("credential source is required")
	}
	if cfg.FolderID == "" {
		return nil, fmt.Errorf("folder id is required")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	credentials, err := cfg.Source.Resolve()
	if err != nil {
		return nil, err
	}

	jwt, err := google.JWTConfigFromJSON(credentials.JSON, gdrive.DriveScope, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, &faults.CredentialsError{Source: cfg.Source.Describe(), Err: err}
	}

	httpClient := jwt.Client(ctx)

	driveClient, err := drive.NewClient(ctx, cfg.FolderID, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}

	sheetsClient, err := sheets.NewClient(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}

	log.Debug("Google clients initialized",
		slog.String("account", credentials.Email),
		logging.Folder(cfg.FolderID),
	)

	return &Manager{
		drive:  driveClient,
		sheets: sheetsClient,
		log:    log,
		email:  credentials.Email,
	}, nil
}

// AccountEmail returns the client_email of the resolved service account.
func (m *Manager) AccountEmail() string {
	return m.email
}

// FolderID returns the Drive folder the manager is bound to.
func (m *Manager) FolderID() string {
	return m.drive.FolderID()
}

// ListFilesInFolder lists the files in the bound folder in the order the
// remote service reports them.
func (m *Manager) ListFilesInFolder(ctx context.Context, opts *drive.ListOptions) ([]drive.File, error) {
	files, err := m.drive.ListFolder(ctx, opts)
	if err != nil {
		m.log.Error("Failed to list folder",
			logging.Service("drive"),
			logging.Err(err),
		)
		return nil, err
	}

	m.log.Info("Listed folder",
		logging.Folder(m.drive.FolderID()),
		logging.Count(len(files)),
	)
	return files, nil
}

// ListSubfolders lists the folders directly under parentID, or under the
// bound folder when parentID is empty.
func (m *Manager) ListSubfolders(ctx context.Context, parentID string) ([]drive.File, error) {
	folders, err := m.drive.ListSubfolders(ctx, parentID)
	if err != nil {
		return nil, err
	}

	m.log.Info("Listed subfolders", logging.Count(len(folders)))
	return folders, nil
}

// GetDriveLink resolves fileName in subfolderID (the bound folder when
// empty), grants anyone-with-the-link read access and returns the public
// share URL. A duplicate name resolves to the first match in remote listing
// order.
func (m *Manager) GetDriveLink(ctx context.Context, fileName, subfolderID string) (string, error) {
	url, err := m.drive.ShareLink(ctx, fileName, subfolderID)
	if err != nil {
		return "", err
	}

	m.log.Info("Shared file", logging.File(fileName))
	return url, nil
}

// UploadResult reports what CreateSheetWithData wrote.
type UploadResult struct {
	SheetID        int64  `json:"sheetId"`
	SheetCreated   bool   `json:"sheetCreated"`
	UpdatedRange   string `json:"updatedRange"`
	UpdatedRows    int64  `json:"updatedRows"`
	UpdatedCells   int64  `json:"updatedCells"`
	ImagesEmbedded int    `json:"imagesEmbedded"`
}

// CreateSheetWithData writes the table into the named sheet tab of the
// spreadsheet, creating the tab when absent, then replaces every cell of the
// image columns with an =IMAGE formula pointing at the share link of the
// Drive file the cell names. imageCols maps a column name to the Drive
// subfolder id holding its files (empty id means the bound folder).
//
// An empty image cell is written as the literal "no image". A cell naming a
// file that does not exist aborts the upload with a *faults.NotFoundError;
// cells already written stay written.
func (m *Manager) CreateSheetWithData(ctx context.Context, spreadsheetID, sheetName string, table *dataset.Table, imageCols map[string]string) (*UploadResult, error) {
	if table == nil || len(table.Columns) == 0 {
		return nil, fmt.Errorf("table with at least a header row is required")
	}

	for col := range imageCols {
		if table.ColumnIndex(col) < 0 {
			return nil, fmt.Errorf("image column %q is not in the table header", col)
		}
	}

	rows := int64(table.NumRows() + 1 + gridPadding)
	cols := int64(len(table.Columns) + gridPadding)

	sheetID, created, err := m.sheets.EnsureSheet(ctx, spreadsheetID, sheetName, rows, cols)
	if err != nil {
		return nil, err
	}

	write, err := m.sheets.WriteTable(ctx, spreadsheetID, sheetName, table)
	if err != nil {
		return nil, err
	}

	embedded := 0
	for col, folderID := range imageCols {
		colIdx := table.ColumnIndex(col)

		for i := 0; i < table.NumRows(); i++ {
			// row 0 of the sheet is the header
			sheetRow := i + 1

			name := table.Cell(i, colIdx)
			if name == "" {
				if err := m.sheets.UpdateCell(ctx, spreadsheetID, sheetName, sheetRow, colIdx, NoImageMarker); err != nil {
					return nil, err
				}
				continue
			}

			url, err := m.drive.ShareLink(ctx, name, folderID)
			if err != nil {
				m.log.Error("Failed to resolve image file",
					logging.File(name),
					logging.Sheet(sheetName),
					logging.Err(err),
				)
				return nil, err
			}

			if err := m.sheets.UpdateCell(ctx, spreadsheetID, sheetName, sheetRow, colIdx, sheets.ImageFormula(url)); err != nil {
				return nil, err
			}
			embedded++
		}
	}

	m.log.Info("Uploaded dataset",
		logging.Spreadsheet(spreadsheetID),
		logging.Sheet(sheetName),
		slog.Int64("rows", write.UpdatedRows),
		slog.Int("images", embedded),
	)

	return &UploadResult{
		SheetID:        sheetID,
		SheetCreated:   created,
		UpdatedRange:   write.Range,
		UpdatedRows:    write.UpdatedRows,
		UpdatedCells:   write.UpdatedCells,
		ImagesEmbedded: embedded,
	}, nil
}

// AddColumnWithDriveFiles writes columnName as a header into the zero-based
// column startCol of an existing sheet tab, followed by one public share URL
// per file name. Files are resolved in subfolderID (the bound folder when
// empty); a missing file aborts before anything is written.
func (m *Manager) AddColumnWithDriveFiles(ctx context.Context, spreadsheetID, sheetName string, fileNames []string, columnName string, startCol int, subfolderID string) error {
	urls := make([]string, 0, len(fileNames))
	for _, name := range fileNames {
		url, err := m.drive.ShareLink(ctx, name, subfolderID)
		if err != nil {
			return err
		}
		urls = append(urls, url)
	}

	if err := m.sheets.AddColumn(ctx, spreadsheetID, sheetName, columnName, startCol, urls); err != nil {
		return err
	}

	m.log.Info("Added link column",
		logging.Spreadsheet(spreadsheetID),
		logging.Sheet(sheetName),
		logging.Count(len(urls)),
	)
	return nil
}
