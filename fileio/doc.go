// Package fileio saves response values to files and reads files back for
// upload.
//
// Download writes a value as JSON text. UploadText and UploadBytes read a
// file selected by path. An empty path means no file was selected and
// yields ErrNoFileSelected.
//
//	if err := fileio.Download(data, "export.json"); err != nil { ... }
//	up, err := fileio.UploadText("import.json")
package fileio
