package seeders

import (
	"context"

	"github.com/galaplate/petitions/database/seeder"
	"gorm.io/gorm"
)

type DatabaseSeeder struct{}

func init() {
	seeder.Register(&DatabaseSeeder{})
}

func (s *DatabaseSeeder) Signature() string {
	return seeder.DefaultSeeder
}

func (s *DatabaseSeeder) Run(ctx context.Context, db *gorm.DB) error {
	return seeder.Call(ctx, db,
		&PetitionSeeder{},
	)
}
