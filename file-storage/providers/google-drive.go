package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	filestorage "github.com/galaplate/petitions/file-storage"
	fsconfig "github.com/galaplate/petitions/file-storage/config"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleDriveStorage implements FileStorageProvider for Google Drive
type GoogleDriveStorage struct {
	config  fsconfig.GoogleDriveConfig
	service *drive.Service
}

// NewGoogleDriveStorage authenticates with the service account file.
func NewGoogleDriveStorage(ctx context.Context, cfg fsconfig.GoogleDriveConfig, opts ...option.ClientOption) (*GoogleDriveStorage, error) {
	if cfg.MaxSize == 0 {
		cfg.Limits = fsconfig.DefaultLimits()
	}

	if cfg.ServiceAccountFile != "" {
		opts = append([]option.ClientOption{
			option.WithCredentialsFile(cfg.ServiceAccountFile),
			option.WithScopes(drive.DriveFileScope),
		}, opts...)
	}

	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &GoogleDriveStorage{config: cfg, service: service}, nil
}

func (gd *GoogleDriveStorage) Put(ctx context.Context, name string, body io.Reader, contentType string) (filestorage.UploadMetadata, error) {
	if !gd.config.Allows(contentType) {
		return filestorage.UploadMetadata{}, filestorage.ErrInvalidFileType
	}
	cleaned, err := filestorage.CleanName(name)
	if err != nil {
		return filestorage.UploadMetadata{}, err
	}

	driveFile := &drive.File{
		Name:     path.Base(cleaned),
		MimeType: contentType,
	}
	if gd.config.FolderID != "" {
		driveFile.Parents = []string{gd.config.FolderID}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	src := filestorage.NewSizeLimitReader(body, gd.config.MaxSize)
	res, err := gd.service.Files.Create(driveFile).
		Media(src).
		Fields("id, size").
		Context(ctx).
		Do()
	if err != nil {
		return filestorage.UploadMetadata{}, fmt.Errorf("google_drive_upload_failed: %w", err)
	}

	id := res.Id
	return filestorage.UploadMetadata{
		FileName:      cleaned,
		FilePath:      id,
		FileSize:      src.N,
		MimeType:      contentType,
		StorageType:   gd.GetProviderName(),
		GoogleDriveID: &id,
	}, nil
}

func (gd *GoogleDriveStorage) Delete(ctx context.Context, metadata filestorage.UploadMetadata) error {
	if metadata.FilePath == "" {
		return filestorage.ErrInvalidPath
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := gd.service.Files.Delete(metadata.FilePath).Context(ctx).Do(); err != nil {
		return fmt.Errorf("google_drive_delete_failed: %w", err)
	}
	return nil
}

func (gd *GoogleDriveStorage) Exists(ctx context.Context, metadata filestorage.UploadMetadata) (bool, error) {
	if metadata.FilePath == "" {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := gd.service.Files.Get(metadata.FilePath).Fields("id").Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (gd *GoogleDriveStorage) GetDownloadURL(_ context.Context, metadata filestorage.UploadMetadata) (string, error) {
	if metadata.FilePath == "" {
		return "", filestorage.ErrInvalidPath
	}
	return fmt.Sprintf("https://drive.google.com/uc?id=%s&export=download", metadata.FilePath), nil
}

func (gd *GoogleDriveStorage) GetProviderName() string {
	return "google_drive"
}
