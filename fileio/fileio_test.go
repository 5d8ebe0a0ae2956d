package fileio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	apperrors "github.com/kbukum/reqkit/errors"
	"github.com/kbukum/reqkit/logger"
)

func memFiles(t *testing.T) (*Files, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return New(WithFs(fs), WithLogger(logger.Nop())), fs
}

func TestDownload_WritesJSON(t *testing.T) {
	f, fs := memFiles(t)
	if err := f.Download(map[string]any{"a": 1}, "out.json"); err != nil {
		t.Fatalf("Download: %v", err)
	}
	data, err := afero.ReadFile(fs, "out.json")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("unexpected content %q", data)
	}
}

func TestDownload_String(t *testing.T) {
	f, fs := memFiles(t)
	if err := f.Download("hi", "s.txt"); err != nil {
		t.Fatalf("Download: %v", err)
	}
	data, _ := afero.ReadFile(fs, "s.txt")
	if string(data) != `"hi"` {
		t.Errorf("strings are written as JSON text, got %q", data)
	}
}

func TestDownload_Errors(t *testing.T) {
	f, _ := memFiles(t)
	if err := f.Download(1, ""); !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for empty filename, got %v", err)
	}
	if err := f.Download(func() {}, "x.json"); !apperrors.HasCode(err, apperrors.ErrCodeEncodeError) {
		t.Errorf("expected ENCODE_ERROR, got %v", err)
	}
}

func TestUploadText(t *testing.T) {
	f, fs := memFiles(t)
	afero.WriteFile(fs, "dir/in.json", []byte(`{"k":"v"}`), 0o644)

	up, err := f.UploadText("dir/in.json")
	if err != nil {
		t.Fatalf("UploadText: %v", err)
	}
	if up.Content != `{"k":"v"}` {
		t.Errorf("unexpected content %q", up.Content)
	}
	if up.File.Name != "in.json" || up.File.Size != 9 || up.File.Path != "dir/in.json" {
		t.Errorf("unexpected file %+v", up.File)
	}
	if !strings.HasPrefix(up.File.Type, "application/json") {
		t.Errorf("expected json media type, got %q", up.File.Type)
	}
}

func TestUploadBytes(t *testing.T) {
	f, fs := memFiles(t)
	afero.WriteFile(fs, "b.bin", []byte{0, 1, 2}, 0o644)

	up, err := f.UploadBytes("b.bin")
	if err != nil {
		t.Fatalf("UploadBytes: %v", err)
	}
	if !bytes.Equal(up.Content, []byte{0, 1, 2}) {
		t.Errorf("unexpected content %v", up.Content)
	}
}

func TestUpload_NoFileSelected(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)
	f := New(WithFs(afero.NewMemMapFs()), WithLogger(log))

	_, err := f.UploadText("")
	if !errors.Is(err, ErrNoFileSelected) {
		t.Fatalf("expected ErrNoFileSelected, got %v", err)
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeNoFileSelected) {
		t.Errorf("expected NO_FILE_SELECTED, got %v", err)
	}
	if !strings.Contains(buf.String(), "No file selected") {
		t.Errorf("expected log line, got %q", buf.String())
	}
	if _, err := f.UploadBytes(""); !errors.Is(err, ErrNoFileSelected) {
		t.Errorf("expected ErrNoFileSelected, got %v", err)
	}
}

func TestUpload_Missing(t *testing.T) {
	f, fs := memFiles(t)
	if _, err := f.UploadText("nope.txt"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	fs.MkdirAll("d", 0o755)
	if _, err := f.UploadText("d"); !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for a directory, got %v", err)
	}
}

func TestPackageLevel_OSFilesystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round.json")
	if err := Download([]any{"x", 2.5}, path); err != nil {
		t.Fatalf("Download: %v", err)
	}
	up, err := UploadText(path)
	if err != nil {
		t.Fatalf("UploadText: %v", err)
	}
	if up.Content != `["x",2.5]` {
		t.Errorf("unexpected content %q", up.Content)
	}
}

func TestPackageLevel_UsesCurrentLogger(t *testing.T) {
	prev := logger.Get(logger.ComponentFileIO)
	t.Cleanup(func() { logger.Register(logger.ComponentFileIO, prev) })

	var buf bytes.Buffer
	logger.Register(logger.ComponentFileIO,
		logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf))

	if _, err := UploadText(""); !errors.Is(err, ErrNoFileSelected) {
		t.Fatalf("expected ErrNoFileSelected, got %v", err)
	}
	if !strings.Contains(buf.String(), "No file selected") {
		t.Errorf("expected the logger registered after init to be used, got %q", buf.String())
	}
}
