package factory

import (
	"context"
	"fmt"
	"sync"

	filestorage "github.com/galaplate/petitions/file-storage"
	fsconfig "github.com/galaplate/petitions/file-storage/config"
	"github.com/galaplate/petitions/file-storage/providers"
)

// Factory manages file storage provider registration and access
type Factory struct {
	mu              sync.Mutex
	defaultProvider string
	providers       map[string]filestorage.FileStorageProvider
}

var (
	globalFactory *Factory
	globalOnce    sync.Once
)

// New creates a new Factory instance
func New(defaultProvider string) *Factory {
	return &Factory{
		defaultProvider: defaultProvider,
		providers:       make(map[string]filestorage.FileStorageProvider),
	}
}

// RegisterProvider registers a new storage provider
func (f *Factory) RegisterProvider(name string, provider filestorage.FileStorageProvider) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.providers[name] = provider
}

// Disk returns the provider registered as name, or builds one from the
// filesystems config. An empty name means the default disk.
func (f *Factory) Disk(ctx context.Context, name string) (filestorage.FileStorageProvider, error) {
	f.mu.Lock()
	if name == "" {
		name = f.defaultProvider
	}
	provider, exists := f.providers[name]
	f.mu.Unlock()

	if exists {
		return provider, nil
	}
	return FromConfig(ctx, name)
}

// SetDefaultProvider sets the default storage provider
func (f *Factory) SetDefaultProvider(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defaultProvider = name
}

// FromConfig builds the provider for filestorage.disks.<disk>.
func FromConfig(ctx context.Context, disk string) (filestorage.FileStorageProvider, error) {
	cfg, err := fsconfig.Load(disk)
	if err != nil {
		return nil, err
	}

	switch c := cfg.(type) {
	case *fsconfig.LocalConfig:
		return providers.NewLocalStorage(*c), nil
	case *fsconfig.S3Config:
		return providers.NewS3Storage(*c), nil
	case *fsconfig.GoogleDriveConfig:
		return providers.NewGoogleDriveStorage(ctx, *c)
	default:
		return nil, fmt.Errorf("no provider for driver %q", cfg.Driver())
	}
}

// Global returns the process-wide factory. Its default disk is read from
// filesystems.default on every lookup.
func Global() *Factory {
	globalOnce.Do(func() {
		globalFactory = New("")
	})
	return globalFactory
}

// Disk resolves a disk on the global factory.
func Disk(ctx context.Context, name string) (filestorage.FileStorageProvider, error) {
	return Global().Disk(ctx, name)
}
