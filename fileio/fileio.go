package fileio

import (
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	apperrors "github.com/kbukum/reqkit/errors"
	"github.com/kbukum/reqkit/logger"
)

// ErrNoFileSelected is returned by the upload helpers when path is empty.
var ErrNoFileSelected = apperrors.NoFileSelected()

// DownloadContentType is the media type recorded for downloaded files.
const DownloadContentType = "text/plain"

// File describes an uploaded file.
type File struct {
	Name    string
	Path    string
	Size    int64
	Type    string
	ModTime time.Time
}

// Upload is the content of a file together with its description.
type Upload[T string | []byte] struct {
	Content T
	File    File
}

// Files reads and writes files on an afero filesystem.
type Files struct {
	fs  afero.Fs
	log *logger.Logger
}

// Option configures Files.
type Option func(*Files)

// WithFs sets the filesystem. The default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(f *Files) { f.fs = fs }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(f *Files) { f.log = l }
}

// New creates Files.
func New(opts ...Option) *Files {
	f := &Files{}
	for _, opt := range opts {
		opt(f)
	}
	if f.fs == nil {
		f.fs = afero.NewOsFs()
	}
	if f.log == nil {
		f.log = logger.Get(logger.ComponentFileIO)
	}
	return f
}

// Download writes value to filename as JSON text.
func (f *Files) Download(value any, filename string) error {
	if filename == "" {
		return apperrors.Validation("filename is required")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.EncodeFailure(err)
	}
	if err := afero.WriteFile(f.fs, filename, data, 0o644); err != nil {
		return fmt.Errorf("fileio: write %s: %w", filename, err)
	}
	f.log.Debug("file downloaded", logger.Fields(
		"file", filename, "bytes", len(data), "content_type", DownloadContentType))
	return nil
}

// UploadText reads path as text.
func (f *Files) UploadText(path string) (*Upload[string], error) {
	data, file, err := f.read(path)
	if err != nil {
		return nil, err
	}
	return &Upload[string]{Content: string(data), File: file}, nil
}

// UploadBytes reads path as raw bytes.
func (f *Files) UploadBytes(path string) (*Upload[[]byte], error) {
	data, file, err := f.read(path)
	if err != nil {
		return nil, err
	}
	return &Upload[[]byte]{Content: data, File: file}, nil
}

func (f *Files) read(path string) ([]byte, File, error) {
	if path == "" {
		f.log.Error("No file selected")
		return nil, File{}, ErrNoFileSelected
	}
	info, err := f.fs.Stat(path)
	if err != nil {
		return nil, File{}, fmt.Errorf("fileio: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, File{}, apperrors.Validation(fmt.Sprintf("%s is a directory", path))
	}
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, File{}, fmt.Errorf("fileio: read %s: %w", path, err)
	}
	file := File{
		Name:    info.Name(),
		Path:    path,
		Size:    int64(len(data)),
		Type:    mime.TypeByExtension(filepath.Ext(path)),
		ModTime: info.ModTime(),
	}
	f.log.Debug("file uploaded", logger.Fields("file", path, "bytes", len(data)))
	return data, file, nil
}

// Download writes value to filename on the OS filesystem.
func Download(value any, filename string) error {
	return New().Download(value, filename)
}

// UploadText reads path from the OS filesystem as text.
func UploadText(path string) (*Upload[string], error) {
	return New().UploadText(path)
}

// UploadBytes reads path from the OS filesystem as raw bytes.
func UploadBytes(path string) (*Upload[[]byte], error) {
	return New().UploadBytes(path)
}
