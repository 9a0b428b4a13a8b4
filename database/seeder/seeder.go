package seeder

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"
)

// DefaultSeeder is run when no seeder name is given.
const DefaultSeeder = "DatabaseSeeder"

// Seeder populates the database with records.
type Seeder interface {
	Signature() string
	Run(ctx context.Context, db *gorm.DB) error
}

// Registry holds seeders by signature.
type Registry struct {
	mu      sync.RWMutex
	seeders map[string]Seeder
}

// DefaultRegistry is filled by the init functions of the seeders package.
var DefaultRegistry = NewRegistry()

func NewRegistry(seeders ...Seeder) *Registry {
	r := &Registry{seeders: make(map[string]Seeder)}
	for _, s := range seeders {
		r.Register(s)
	}
	return r
}

// normalize folds PetitionSeeder, petitionseeder and petition_seeder to
// the same key.
func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "", "-", "").Replace(name)
}

// Register adds a seeder, replacing one with the same signature.
func (r *Registry) Register(s Seeder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seeders[normalize(s.Signature())] = s
}

// Get resolves a seeder by signature. The "Seeder" suffix may be omitted.
func (r *Registry) Get(name string) (Seeder, error) {
	key := normalize(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.seeders[key]; ok {
		return s, nil
	}
	if s, ok := r.seeders[key+"seeder"]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("seeder %q is not registered", name)
}

// Signatures lists the registered seeders sorted by name.
func (r *Registry) Signatures() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.seeders))
	for _, s := range r.seeders {
		names = append(names, s.Signature())
	}
	sort.Strings(names)
	return names
}

// Register adds a seeder to the default registry.
func Register(s Seeder) {
	DefaultRegistry.Register(s)
}

// Call runs seeders in order on db and stops at the first failure.
func Call(ctx context.Context, db *gorm.DB, seeders ...Seeder) error {
	for _, s := range seeders {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("%s: %w", s.Signature(), err)
		}
	}
	return nil
}
