package providers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	filestorage "github.com/galaplate/petitions/file-storage"
	fsconfig "github.com/galaplate/petitions/file-storage/config"
)

// LocalStorage implements FileStorageProvider for local disk storage
type LocalStorage struct {
	config fsconfig.LocalConfig
}

func NewLocalStorage(cfg fsconfig.LocalConfig) *LocalStorage {
	if cfg.MaxSize == 0 {
		cfg.Limits = fsconfig.DefaultLimits()
	}
	return &LocalStorage{config: cfg}
}

func (ls *LocalStorage) root() string {
	root := ls.config.Path
	if !filepath.IsAbs(root) {
		if cwd, err := os.Getwd(); err == nil {
			root = filepath.Join(cwd, root)
		}
	}
	return root
}

// Put writes body below the configured path. A partially written file is
// removed on failure.
func (ls *LocalStorage) Put(ctx context.Context, name string, body io.Reader, contentType string) (filestorage.UploadMetadata, error) {
	if !ls.config.Allows(contentType) {
		return filestorage.UploadMetadata{}, filestorage.ErrInvalidFileType
	}
	key, err := filestorage.CleanName(name)
	if err != nil {
		return filestorage.UploadMetadata{}, err
	}

	filePath := filepath.Join(ls.root(), filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return filestorage.UploadMetadata{}, fmt.Errorf("directory_creation_failed: %w", err)
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return filestorage.UploadMetadata{}, fmt.Errorf("file_create_failed: %w", err)
	}

	src := filestorage.NewSizeLimitReader(body, ls.config.MaxSize)
	_, err = io.Copy(dst, readerWithContext{ctx: ctx, r: src})
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
		return filestorage.UploadMetadata{}, fmt.Errorf("file_save_failed: %w", err)
	}

	return filestorage.UploadMetadata{
		FileName:    key,
		FilePath:    filePath,
		FileSize:    src.N,
		MimeType:    contentType,
		StorageType: ls.GetProviderName(),
	}, nil
}

func (ls *LocalStorage) Delete(_ context.Context, metadata filestorage.UploadMetadata) error {
	if metadata.FilePath == "" {
		return filestorage.ErrInvalidPath
	}

	if err := os.Remove(metadata.FilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("file_delete_failed: %w", err)
	}
	return nil
}

func (ls *LocalStorage) Exists(_ context.Context, metadata filestorage.UploadMetadata) (bool, error) {
	if metadata.FilePath == "" {
		return false, nil
	}

	_, err := os.Stat(metadata.FilePath)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}

// GetDownloadURL returns the local file path for download
func (ls *LocalStorage) GetDownloadURL(_ context.Context, metadata filestorage.UploadMetadata) (string, error) {
	return metadata.FilePath, nil
}

func (ls *LocalStorage) GetProviderName() string {
	return "local"
}

// readerWithContext stops a copy once ctx is done.
type readerWithContext struct {
	ctx context.Context
	r   io.Reader
}

func (r readerWithContext) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
