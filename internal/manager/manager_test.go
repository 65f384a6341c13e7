package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/tberndt/sheetfeed/internal/creds"
	"github.com/tberndt/sheetfeed/internal/dataset"
	"github.com/tberndt/sheetfeed/internal/drive"
	"github.com/tberndt/sheetfeed/internal/faults"
	"github.com/tberndt/sheetfeed/internal/sheets"
)

var nameQueryRe = regexp.MustCompile(`name='([^']*)'`)

// fakeDrive answers files.list with ids from the files map and accepts every
// permission grant. It records which file ids were shared.
type fakeDrive struct {
	files  map[string]string // name -> id
	shared []string
}

func (f *fakeDrive) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method == http.MethodPost && strings.Contains(r.URL.Path, "/permissions") {
			parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
			f.shared = append(f.shared, parts[len(parts)-2])
			fmt.Fprint(w, `{"id":"perm1"}`)
			return
		}

		match := nameQueryRe.FindStringSubmatch(r.URL.Query().Get("q"))
		if match == nil {
			t.Errorf("Unexpected Drive request: %s %s", r.Method, r.URL)
			http.NotFound(w, r)
			return
		}

		id, ok := f.files[match[1]]
		if !ok {
			fmt.Fprint(w, `{"files":[]}`)
			return
		}
		fmt.Fprintf(w, `{"files":[{"id":%q,"name":%q}]}`, id, match[1])
	}
}

// fakeSheets serves a spreadsheet with the given tabs and records every
// values write as range -> first cell value.
type fakeSheets struct {
	tabs   []string
	writes map[string]string
}

func (f *fakeSheets) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet:
			tabs := make([]map[string]any, 0, len(f.tabs))
			for i, title := range f.tabs {
				tabs = append(tabs, map[string]any{
					"properties": map[string]any{"sheetId": i + 1, "title": title},
				})
			}
			if err := json.NewEncoder(w).Encode(map[string]any{"sheets": tabs}); err != nil {
				t.Fatalf("encode spreadsheet: %v", err)
			}

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":batchUpdate"):
			fmt.Fprint(w, `{"replies":[{"addSheet":{"properties":{"sheetId":42,"title":"new"}}}]}`)

		case r.Method == http.MethodPut:
			var body struct {
				Values [][]any `json:"values"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode values: %v", err)
			}
			parts := strings.Split(r.URL.Path, "/values/")
			cell := ""
			if len(body.Values) > 0 && len(body.Values[0]) > 0 {
				cell, _ = body.Values[0][0].(string)
			}
			if f.writes == nil {
				f.writes = map[string]string{}
			}
			f.writes[parts[len(parts)-1]] = cell
			fmt.Fprintf(w, `{"updatedRows":%d,"updatedCells":%d,"updatedRange":"r"}`, len(body.Values), len(body.Values))

		default:
			t.Errorf("Unexpected Sheets request: %s %s", r.Method, r.URL)
			http.NotFound(w, r)
		}
	}
}

func newTestManager(t *testing.T, fd *fakeDrive, fs *fakeSheets) *Manager {
	t.Helper()
	ctx := context.Background()

	driveSrv := httptest.NewServer(fd.handler(t))
	t.Cleanup(driveSrv.Close)
	sheetsSrv := httptest.NewServer(fs.handler(t))
	t.Cleanup(sheetsSrv.Close)

	dc, err := drive.NewClient(ctx, "folder1",
		option.WithoutAuthentication(),
		option.WithHTTPClient(driveSrv.Client()),
		option.WithEndpoint(driveSrv.URL+"/"),
	)
	require.NoError(t, err)

	sc, err := sheets.NewClient(ctx,
		option.WithoutAuthentication(),
		option.WithHTTPClient(sheetsSrv.Client()),
		option.WithEndpoint(sheetsSrv.URL+"/"),
	)
	require.NoError(t, err)

	return &Manager{
		drive:  dc,
		sheets: sc,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewRequiresSourceAndFolder(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, Config{FolderID: "folder1"})
	assert.ErrorContains(t, err, "credential source")

	_, err = New(ctx, Config{Source: creds.FromEnvVar("SHEETFEED_TEST_KEY")})
	assert.ErrorContains(t, err, "folder id")
}

func TestNewFailsBeforeClientsOnBadCredentials(t *testing.T) {
	t.Setenv("SHEETFEED_TEST_KEY", "")

	_, err := New(context.Background(), Config{
		Source:   creds.FromEnvVar("SHEETFEED_TEST_KEY"),
		FolderID: "folder1",
	})
	assert.True(t, faults.IsCredentials(err), "expected CredentialsError, got %v", err)
}

func TestCreateSheetWithDataEmbedsImages(t *testing.T) {
	fd := &fakeDrive{files: map[string]string{
		"alice.png": "fa",
		"carol.png": "fc",
	}}
	fs := &fakeSheets{tabs: []string{"Sheet1"}}
	m := newTestManager(t, fd, fs)

	table := &dataset.Table{
		Columns: []string{"name", "photo"},
		Rows: [][]string{
			{"alice", "alice.png"},
			{"bob", ""},
			{"carol", "carol.png"},
		},
	}

	result, err := m.CreateSheetWithData(context.Background(), "s1", "Report", table,
		map[string]string{"photo": "imgfolder"})
	require.NoError(t, err)

	assert.True(t, result.SheetCreated)
	assert.Equal(t, int64(42), result.SheetID)
	assert.Equal(t, 2, result.ImagesEmbedded)

	assert.Equal(t, `=IMAGE("https://drive.google.com/uc?id=fa")`, fs.writes["Report!B2"])
	assert.Equal(t, NoImageMarker, fs.writes["Report!B3"])
	assert.Equal(t, `=IMAGE("https://drive.google.com/uc?id=fc")`, fs.writes["Report!B4"])
	assert.ElementsMatch(t, []string{"fa", "fc"}, fd.shared)
}

func TestCreateSheetWithDataMissingImageAborts(t *testing.T) {
	fd := &fakeDrive{files: map[string]string{}}
	fs := &fakeSheets{tabs: []string{"Report"}}
	m := newTestManager(t, fd, fs)

	table := &dataset.Table{
		Columns: []string{"name", "photo"},
		Rows:    [][]string{{"alice", "gone.png"}},
	}

	_, err := m.CreateSheetWithData(context.Background(), "s1", "Report", table,
		map[string]string{"photo": ""})
	assert.True(t, faults.IsNotFound(err), "expected NotFoundError, got %v", err)
}

func TestCreateSheetWithDataRejectsUnknownImageColumn(t *testing.T) {
	fd := &fakeDrive{}
	fs := &fakeSheets{}
	m := newTestManager(t, fd, fs)

	table := &dataset.Table{Columns: []string{"name"}}

	_, err := m.CreateSheetWithData(context.Background(), "s1", "Report", table,
		map[string]string{"photo": ""})
	assert.ErrorContains(t, err, `image column "photo"`)
}

func TestGetDriveLink(t *testing.T) {
	fd := &fakeDrive{files: map[string]string{"report.pdf": "f9"}}
	m := newTestManager(t, fd, &fakeSheets{})

	url, err := m.GetDriveLink(context.Background(), "report.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, "https://drive.google.com/uc?id=f9", url)
}

func TestGetDriveLinkNotFound(t *testing.T) {
	fd := &fakeDrive{files: map[string]string{}}
	m := newTestManager(t, fd, &fakeSheets{})

	_, err := m.GetDriveLink(context.Background(), "missing.pdf", "")
	assert.True(t, faults.IsNotFound(err), "expected NotFoundError, got %v", err)
}

func TestAddColumnWithDriveFiles(t *testing.T) {
	fd := &fakeDrive{files: map[string]string{
		"a.png": "f1",
		"b.png": "f2",
	}}
	fs := &fakeSheets{tabs: []string{"Report"}}
	m := newTestManager(t, fd, fs)

	err := m.AddColumnWithDriveFiles(context.Background(), "s1", "Report",
		[]string{"a.png", "b.png"}, "Link", 3, "")
	require.NoError(t, err)

	assert.Equal(t, "Link", fs.writes["Report!D1:D3"])
	assert.ElementsMatch(t, []string{"f1", "f2"}, fd.shared)
}

func TestAddColumnWithDriveFilesMissingFileAbortsEarly(t *testing.T) {
	fd := &fakeDrive{files: map[string]string{}}
	fs := &fakeSheets{tabs: []string{"Report"}}
	m := newTestManager(t, fd, fs)

	err := m.AddColumnWithDriveFiles(context.Background(), "s1", "Report",
		[]string{"gone.png"}, "Link", 0, "")
	assert.True(t, faults.IsNotFound(err), "expected NotFoundError, got %v", err)
	assert.Empty(t, fs.writes, "no sheet write expected after a failed lookup")
}
