package filestorage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	ErrFileTooLarge    = errors.New("file_too_large")
	ErrInvalidFileType = errors.New("invalid_file_type")
	ErrInvalidPath     = errors.New("invalid_file_path")
)

// UploadMetadata describes a stored file.
type UploadMetadata struct {
	FileName      string  // name the caller asked for
	FilePath      string  // disk path, object key or Drive file ID
	FileSize      int64   // bytes written
	MimeType      string
	StorageType   string  // 'local', 'google_drive', 's3'
	GoogleDriveID *string // set by the google_drive provider
}

// FileStorageProvider stores files on a disk or in the cloud. Providers
// only move bytes; recording metadata is up to the caller.
type FileStorageProvider interface {
	// Put stores body under name and reports where it went.
	Put(ctx context.Context, name string, body io.Reader, contentType string) (UploadMetadata, error)

	Delete(ctx context.Context, metadata UploadMetadata) error

	Exists(ctx context.Context, metadata UploadMetadata) (bool, error)

	// GetDownloadURL returns a URL or path the file can be fetched from.
	GetDownloadURL(ctx context.Context, metadata UploadMetadata) (string, error)

	GetProviderName() string
}

// CleanName turns name into a relative slash path and rejects names that
// are empty or climb out of the storage root.
func CleanName(name string) (string, error) {
	name = strings.Trim(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"), "/")
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}

	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == "" {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

// SizeLimitReader counts bytes read and fails once more than max bytes
// have been read.
type SizeLimitReader struct {
	r   io.Reader
	max int64
	N   int64
}

func NewSizeLimitReader(r io.Reader, max int64) *SizeLimitReader {
	return &SizeLimitReader{r: r, max: max}
}

func (l *SizeLimitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.N += int64(n)
	if l.max > 0 && l.N > l.max {
		return n, ErrFileTooLarge
	}
	return n, err
}
