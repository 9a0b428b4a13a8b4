package seeder

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/galaplate/petitions/database"
	"github.com/galaplate/petitions/logger"
	"gorm.io/gorm"
)

// Runner executes a registered seeder inside a transaction.
type Runner struct {
	db       *gorm.DB
	registry *Registry
	out      io.Writer
}

// NewRunner creates a runner on the global connection and registry.
func NewRunner() *Runner {
	return NewRunnerFor(database.Connect, DefaultRegistry)
}

func NewRunnerFor(db *gorm.DB, registry *Registry) *Runner {
	return &Runner{db: db, registry: registry, out: os.Stdout}
}

// SetOutput redirects progress messages.
func (r *Runner) SetOutput(w io.Writer) {
	r.out = w
}

// Run seeds with the named seeder, or DatabaseSeeder when name is empty.
// Nothing is kept if the seeder fails.
func (r *Runner) Run(ctx context.Context, name string) error {
	if name == "" {
		name = DefaultSeeder
	}
	if r.db == nil {
		return fmt.Errorf("no database connection")
	}

	s, err := r.registry.Get(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Seeding: %s\n", s.Signature())
	logger.Info("seeding started", map[string]any{"seeder": s.Signature()})

	start := time.Now()
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Run(ctx, tx)
	})
	elapsed := time.Since(start).Round(time.Millisecond)

	if err != nil {
		logger.Error("seeding failed", map[string]any{
			"seeder": s.Signature(),
			"error":  err.Error(),
		})
		return fmt.Errorf("seeder %s failed: %w", s.Signature(), err)
	}

	logger.Info("seeding finished", map[string]any{
		"seeder":   s.Signature(),
		"duration": elapsed.String(),
	})
	fmt.Fprintf(r.out, "Seeded:  %s (%s)\n", s.Signature(), elapsed)
	return nil
}
