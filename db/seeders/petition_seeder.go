package seeders

import (
	"context"
	"fmt"

	"github.com/galaplate/petitions/database/seeder"
	"github.com/galaplate/petitions/db/factories"
	"gorm.io/gorm"
)

// PetitionCount is how many petitions one run adds.
const PetitionCount = 50

type PetitionSeeder struct {
	// Factory overrides the default petition factory.
	Factory *factories.PetitionFactory
}

func init() {
	seeder.Register(&PetitionSeeder{})
}

func (s *PetitionSeeder) Signature() string {
	return "PetitionSeeder"
}

// Run adds PetitionCount petitions. Rows are never deduplicated, so
// running it twice leaves twice as many petitions.
func (s *PetitionSeeder) Run(ctx context.Context, db *gorm.DB) error {
	pf := s.Factory
	if pf == nil {
		pf = factories.NewPetitionFactory()
	}

	if _, err := pf.On(db.WithContext(ctx)).Times(PetitionCount).Create(); err != nil {
		return fmt.Errorf("failed to create petitions: %w", err)
	}
	return nil
}
