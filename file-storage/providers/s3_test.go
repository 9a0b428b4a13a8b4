package providers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	filestorage "github.com/galaplate/petitions/file-storage"
	fsconfig "github.com/galaplate/petitions/file-storage/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBucket is a path-style S3 endpoint keeping objects in memory.
type fakeBucket struct {
	mu       sync.Mutex
	objects  map[string][]byte
	requests []string
}

func newFakeBucket(t *testing.T) (*fakeBucket, *httptest.Server) {
	fb := &fakeBucket{objects: map[string][]byte{}}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBucket) serve(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.requests = append(fb.requests, r.Method+" "+r.URL.Path)

	switch r.Method {
	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fb.objects[r.URL.Path] = body
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodHead:
		if _, ok := fb.objects[r.URL.Path]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(fb.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (fb *fakeBucket) object(path string) ([]byte, bool) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	body, ok := fb.objects[path]
	return body, ok
}

func (fb *fakeBucket) requestCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.requests)
}

func newTestS3Storage(endpoint string, maxSize int64) *S3Storage {
	return NewS3Storage(fsconfig.S3Config{
		Limits:                 fsconfig.Limits{MaxSize: maxSize, AllowedTypes: fsconfig.DefaultAllowedTypes()},
		Region:                 "us-east-1",
		Bucket:                 "petitions",
		Endpoint:               endpoint,
		AccessKey:              "key",
		SecretKey:              "secret",
		PathPrefix:             "exports",
		PresignedURLExpiration: 15 * time.Minute,
	})
}

func TestS3StoragePutExistsDelete(t *testing.T) {
	ctx := context.Background()
	fb, srv := newFakeBucket(t)
	s := newTestS3Storage(srv.URL, 10)

	meta, err := s.Put(ctx, "a/b.txt", strings.NewReader("hello"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "a/b.txt", meta.FileName)
	assert.Equal(t, "exports/a/b.txt", meta.FilePath)
	assert.EqualValues(t, 5, meta.FileSize)
	assert.Equal(t, "s3", meta.StorageType)

	body, ok := fb.object("/petitions/exports/a/b.txt")
	require.True(t, ok)
	assert.Equal(t, "hello", string(body))

	exists, err := s.Exists(ctx, meta)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Delete(ctx, meta))
	_, ok = fb.object("/petitions/exports/a/b.txt")
	assert.False(t, ok)

	exists, err = s.Exists(ctx, meta)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestS3StorageExistsMissingObject(t *testing.T) {
	_, srv := newFakeBucket(t)
	s := newTestS3Storage(srv.URL, 10)

	exists, err := s.Exists(context.Background(), filestorage.UploadMetadata{FilePath: "exports/missing.json"})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestS3StorageRejectsOversizedFile(t *testing.T) {
	fb, srv := newFakeBucket(t)
	s := newTestS3Storage(srv.URL, 10)

	_, err := s.Put(context.Background(), "big.txt", strings.NewReader(strings.Repeat("x", 100)), "text/plain")
	assert.ErrorIs(t, err, filestorage.ErrFileTooLarge)

	_, ok := fb.object("/petitions/exports/big.txt")
	assert.False(t, ok)
}

func TestS3StorageValidatesBeforeUploading(t *testing.T) {
	ctx := context.Background()
	fb, srv := newFakeBucket(t)
	s := newTestS3Storage(srv.URL, 10)

	_, err := s.Put(ctx, "image.png", strings.NewReader("png"), "image/png")
	assert.ErrorIs(t, err, filestorage.ErrInvalidFileType)

	_, err = s.Put(ctx, "../escape.txt", strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, filestorage.ErrInvalidPath)

	assert.ErrorIs(t, s.Delete(ctx, filestorage.UploadMetadata{}), filestorage.ErrInvalidPath)
	assert.Zero(t, fb.requestCount())
}

func TestS3StoragePresignedDownloadURL(t *testing.T) {
	_, srv := newFakeBucket(t)
	s := newTestS3Storage(srv.URL, 10)

	raw, err := s.GetDownloadURL(context.Background(), filestorage.UploadMetadata{FilePath: "exports/petitions.json"})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimPrefix(srv.URL, "http://"), u.Host)
	assert.Equal(t, "/petitions/exports/petitions.json", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Contains(t, u.Query().Get("X-Amz-Credential"), "key/")
}
