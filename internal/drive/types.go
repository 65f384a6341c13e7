package drive

import (
	"time"

	drive "google.golang.org/api/drive/v3"
)

// File represents metadata about a file or folder in Google Drive
type File struct {
	// ID is the unique identifier for the file
	ID string `json:"id"`

	// Name is the name of the file
	Name string `json:"name"`

	// MimeType is the MIME type of the file
	MimeType string `json:"mimeType"`

	// Size is the size of the file in bytes (not populated for folders)
	Size int64 `json:"size,omitempty"`

	// ModifiedTime is when the file was last modified
	ModifiedTime time.Time `json:"modifiedTime"`

	// WebViewLink is a link for opening the file in a relevant Google viewer
	WebViewLink string `json:"webViewLink,omitempty"`
}

// IsFolder reports whether the file is a Drive folder.
func (f File) IsFolder() bool {
	return f.MimeType == FolderMimeType
}

// ListOptions contains options for listing the bound folder
type ListOptions struct {
	// Query is an additional filter in Drive's query language, ANDed with
	// the folder filter. Example: "mimeType='image/png'"
	Query string

	// PageSize is the page size requested from the listing endpoint. The
	// listing still follows pagination to exhaustion.
	PageSize int64
}

// convertFile converts a Drive API File to the local File type
func convertFile(f *drive.File) File {
	file := File{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		Size:        f.Size,
		WebViewLink: f.WebViewLink,
	}

	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			file.ModifiedTime = t
		}
	}

	return file
}
