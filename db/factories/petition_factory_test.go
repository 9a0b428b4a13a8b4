package factories

import (
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/galaplate/petitions/models"
	"github.com/galaplate/petitions/supports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetitionFactoryBuildsValidPetitions(t *testing.T) {
	petitions := NewPetitionFactory().Make(200)
	require.Len(t, petitions, 200)

	slugs := make(map[string]bool)
	statuses := make(map[models.PetitionStatus]int)
	for _, p := range petitions {
		require.NoError(t, supports.Validate(p), "%+v", p)
		assert.False(t, slugs[p.Slug], "duplicate slug %s", p.Slug)
		slugs[p.Slug] = true
		statuses[p.Status]++
	}
	assert.Greater(t, statuses[models.PetitionOpen], 0)
}

func TestPetitionFactoryIsReproducibleWithSeed(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	first := NewPetitionFactory(WithFaker(gofakeit.New(42)), WithClock(clock)).Make(5)
	second := NewPetitionFactory(WithFaker(gofakeit.New(42)), WithClock(clock)).Make(5)

	assert.Equal(t, first, second)
}

func TestPetitionFactoryStates(t *testing.T) {
	pf := NewPetitionFactory()

	for _, p := range pf.Draft().Make(20) {
		assert.Equal(t, models.PetitionDraft, p.Status)
		assert.Nil(t, p.PublishedAt)
		assert.Zero(t, p.SignatureCount)
		assert.NoError(t, supports.Validate(p))
	}

	for _, p := range pf.Open().Make(20) {
		assert.Equal(t, models.PetitionOpen, p.Status)
		assert.NotNil(t, p.PublishedAt)
		assert.NoError(t, supports.Validate(p))
	}

	for _, p := range pf.Closed().Make(20) {
		assert.Equal(t, models.PetitionClosed, p.Status)
		assert.NoError(t, supports.Validate(p))
	}

	for _, p := range pf.Victory().Make(20) {
		assert.Equal(t, models.PetitionVictory, p.Status)
		assert.GreaterOrEqual(t, p.SignatureCount, p.SignatureGoal)
		assert.NoError(t, supports.Validate(p))
	}
}

func TestPetitionFactoryValidatesBeforePersisting(t *testing.T) {
	broken := NewPetitionFactory().State(func(p *models.Petition) {
		p.AuthorEmail = "not-an-email"
	})

	_, err := broken.CreateMany(1)
	require.Error(t, err)

	var verr *supports.ValidationError
	if assert.ErrorAs(t, err, &verr) {
		assert.Contains(t, verr.Errors, "author_email")
	}
}

func TestPetitionFactoryConcurrentBuilds(t *testing.T) {
	pf := NewPetitionFactory()
	open := pf.Open()

	const workers, perWorker = 8, 50
	results := make([][]models.Petition, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				results[i] = pf.Make(perWorker)
			} else {
				results[i] = open.Make(perWorker)
			}
		}()
	}
	wg.Wait()

	uuids := make(map[string]bool)
	emails := make(map[string]bool)
	for _, batch := range results {
		require.Len(t, batch, perWorker)
		for _, p := range batch {
			assert.NoError(t, supports.Validate(p))
			assert.False(t, uuids[p.UUID], "duplicate uuid %s", p.UUID)
			assert.False(t, emails[p.AuthorEmail], "duplicate email %s", p.AuthorEmail)
			uuids[p.UUID] = true
			emails[p.AuthorEmail] = true
		}
	}
	assert.Len(t, uuids, workers*perWorker)
}
