// Package drive provides a thin client for the Google Drive API, bound to a
// single folder.
//
// The client covers exactly what sheetfeed needs from Drive:
//   - Listing the files in the bound folder (remote order, full pagination)
//   - Listing subfolders
//   - Resolving a file by exact name (first match in remote order wins)
//   - Granting anyone-with-the-link read access and building the share URL
//
// Authentication is supplied by the caller as client options, typically an
// HTTP client carrying service account credentials.
package drive
