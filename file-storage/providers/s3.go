package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	filestorage "github.com/galaplate/petitions/file-storage"
	fsconfig "github.com/galaplate/petitions/file-storage/config"
)

// S3Storage implements FileStorageProvider for AWS S3 and S3-compatible
// services.
type S3Storage struct {
	config   fsconfig.S3Config
	client   *s3.Client
	uploader *manager.Uploader
	presign  *s3.PresignClient
}

func NewS3Storage(cfg fsconfig.S3Config) *S3Storage {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return NewS3StorageWithClient(cfg, s3.New(opts))
}

// NewS3StorageWithClient uses an existing client, e.g. one built from the
// shared AWS config.
func NewS3StorageWithClient(cfg fsconfig.S3Config, client *s3.Client) *S3Storage {
	if cfg.MaxSize == 0 {
		cfg.Limits = fsconfig.DefaultLimits()
	}
	return &S3Storage{
		config:   cfg,
		client:   client,
		uploader: manager.NewUploader(client),
		presign:  s3.NewPresignClient(client),
	}
}

func (s *S3Storage) key(name string) string {
	if s.config.PathPrefix == "" {
		return name
	}
	return path.Join(s.config.PathPrefix, name)
}

func (s *S3Storage) Put(ctx context.Context, name string, body io.Reader, contentType string) (filestorage.UploadMetadata, error) {
	if !s.config.Allows(contentType) {
		return filestorage.UploadMetadata{}, filestorage.ErrInvalidFileType
	}
	cleaned, err := filestorage.CleanName(name)
	if err != nil {
		return filestorage.UploadMetadata{}, err
	}

	key := s.key(cleaned)
	src := filestorage.NewSizeLimitReader(body, s.config.MaxSize)
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		if errors.Is(err, filestorage.ErrFileTooLarge) {
			return filestorage.UploadMetadata{}, filestorage.ErrFileTooLarge
		}
		return filestorage.UploadMetadata{}, fmt.Errorf("s3_upload_failed: %w", err)
	}

	return filestorage.UploadMetadata{
		FileName:    cleaned,
		FilePath:    key,
		FileSize:    src.N,
		MimeType:    contentType,
		StorageType: s.GetProviderName(),
	}, nil
}

func (s *S3Storage) Delete(ctx context.Context, metadata filestorage.UploadMetadata) error {
	if metadata.FilePath == "" {
		return filestorage.ErrInvalidPath
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(metadata.FilePath),
	})
	if err != nil {
		return fmt.Errorf("s3_delete_failed: %w", err)
	}
	return nil
}

func (s *S3Storage) Exists(ctx context.Context, metadata filestorage.UploadMetadata) (bool, error) {
	if metadata.FilePath == "" {
		return false, nil
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(metadata.FilePath),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetDownloadURL returns a presigned GET URL valid for the configured
// expiration.
func (s *S3Storage) GetDownloadURL(ctx context.Context, metadata filestorage.UploadMetadata) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(metadata.FilePath),
	}, s3.WithPresignExpires(s.config.PresignedURLExpiration))
	if err != nil {
		return "", fmt.Errorf("s3_presign_failed: %w", err)
	}
	return req.URL, nil
}

func (s *S3Storage) GetProviderName() string {
	return "s3"
}
