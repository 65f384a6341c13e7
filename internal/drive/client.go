package drive

import (
	"context"
	"fmt"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/tberndt/sheetfeed/internal/faults"
)

const (
	// FolderMimeType is the MIME type for Google Drive folders
	FolderMimeType = "application/vnd.google-apps.folder"

	// shareURLFormat is the canonical public link for a Drive file. The uc
	// endpoint serves the raw content, which is what =IMAGE() needs.
	shareURLFormat = "https://drive.google.com/uc?id=%s"

	// fileFields is the field mask requested on every listing call
	fileFields = "nextPageToken, files(id, name, mimeType, size, modifiedTime, webViewLink)"
)

// Client wraps the Google Drive API service, bound to a single folder.
type Client struct {
	service  *drive.Service
	folderID string
}

// NewClient creates a Drive client bound to folderID. The caller supplies the
// authenticated transport (or a test endpoint) via opts.
func NewClient(ctx context.Context, folderID string, opts ...option.ClientOption) (*Client, error) {
	if folderID == "" {
		return nil, fmt.Errorf("folder id is required")
	}

	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		service:  service,
		folderID: folderID,
	}, nil
}

// FolderID returns the folder this client is bound to.
func (c *Client) FolderID() string {
	return c.folderID
}

// ListFolder lists the files in the bound folder. Results are returned in the
// order the remote service reports them; pagination is followed to exhaustion.
func (c *Client) ListFolder(ctx context.Context, options *ListOptions) ([]File, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", c.folderID)
	if options != nil && options.Query != "" {
		query = fmt.Sprintf("%s and (%s)", query, options.Query)
	}

	var files []File
	page := ""
	for {
		call := c.service.Files.List().
			Context(ctx).
			Q(query).
			Fields(fileFields)

		if options != nil && options.PageSize > 0 {
			call = call.PageSize(options.PageSize)
		}
		if page != "" {
			call = call.PageToken(page)
		}

		list, err := call.Do()
		if err != nil {
			return nil, faults.Remote("drive", "files.list", err)
		}

		for _, f := range list.Files {
			files = append(files, convertFile(f))
		}

		if page = list.NextPageToken; page == "" {
			break
		}
	}

	return files, nil
}

// ListSubfolders lists the folders directly under parentID. An empty parentID
// uses the bound folder.
func (c *Client) ListSubfolders(ctx context.Context, parentID string) ([]File, error) {
	if parentID == "" {
		parentID = c.folderID
	}

	query := fmt.Sprintf("'%s' in parents and mimeType = '%s' and trashed=false", parentID, FolderMimeType)

	var folders []File
	page := ""
	for {
		call := c.service.Files.List().
			Context(ctx).
			Q(query).
			Fields(fileFields)
		if page != "" {
			call = call.PageToken(page)
		}

		list, err := call.Do()
		if err != nil {
			return nil, faults.Remote("drive", "files.list", err)
		}

		for _, f := range list.Files {
			folders = append(folders, convertFile(f))
		}

		if page = list.NextPageToken; page == "" {
			break
		}
	}

	return folders, nil
}

// FindInFolder looks up a file by exact name in folderID (the bound folder
// when empty). When the folder holds several files with the same name, the
// first match in remote listing order wins.
func (c *Client) FindInFolder(ctx context.Context, name, folderID string) (*File, error) {
	if name == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if folderID == "" {
		folderID = c.folderID
	}

	query := fmt.Sprintf("name='%s' and '%s' in parents and trashed=false", escapeQuery(name), folderID)

	list, err := c.service.Files.List().
		Context(ctx).
		Q(query).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, faults.Remote("drive", "files.list", err)
	}

	if len(list.Files) == 0 {
		return nil, &faults.NotFoundError{Name: name, FolderID: folderID}
	}

	file := convertFile(list.Files[0])
	return &file, nil
}

// ShareLink resolves a file by name, grants anyone-with-the-link read access
// and returns the public share URL.
func (c *Client) ShareLink(ctx context.Context, name, folderID string) (string, error) {
	file, err := c.FindInFolder(ctx, name, folderID)
	if err != nil {
		return "", err
	}

	permission := &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}

	if _, err := c.service.Permissions.Create(file.ID, permission).Context(ctx).Do(); err != nil {
		return "", faults.Remote("drive", "permissions.create", err)
	}

	return fmt.Sprintf(shareURLFormat, file.ID), nil
}

// ShareURL returns the public share URL for a known file id without touching
// permissions.
func ShareURL(fileID string) string {
	return fmt.Sprintf(shareURLFormat, fileID)
}

// escapeQuery escapes a value for embedding in a Drive query string.
func escapeQuery(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}
