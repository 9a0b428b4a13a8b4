package models

import (
	"errors"
	"testing"
	"time"

	"github.com/galaplate/petitions/supports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPetition() Petition {
	published := time.Now().Add(-time.Hour)
	return Petition{
		UUID:           uuid.NewString(),
		Title:          "Protect the river",
		Slug:           "protect-the-river-1a2b3c4d",
		Description:    "Stop the dumping.",
		Recipient:      "City Council",
		Category:       "environment",
		AuthorName:     "Sam Doe",
		AuthorEmail:    "sam@example.com",
		SignatureGoal:  1000,
		SignatureCount: 120,
		Status:         PetitionOpen,
		PublishedAt:    &published,
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *supports.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Errors
}

func TestPetitionValid(t *testing.T) {
	p := validPetition()
	assert.NoError(t, supports.Validate(p))
	assert.NoError(t, supports.Validate(&p))
}

func TestPetitionFieldRules(t *testing.T) {
	p := validPetition()
	p.UUID = "not-a-uuid"
	p.Slug = "Not A Slug"
	p.Category = "sports"
	p.AuthorEmail = "nobody"
	p.SignatureGoal = 0
	p.Status = "archived"

	errs := fieldErrors(t, supports.Validate(p))

	for _, field := range []string{"uuid", "slug", "category", "author_email", "signature_goal", "status"} {
		assert.Contains(t, errs, field)
	}
}

func TestPetitionLifecycleRules(t *testing.T) {
	draft := validPetition()
	draft.Status = PetitionDraft
	errs := fieldErrors(t, supports.Validate(draft))
	assert.Contains(t, errs, "published_at")
	assert.Contains(t, errs, "signature_count")

	draft.PublishedAt = nil
	draft.SignatureCount = 0
	assert.NoError(t, supports.Validate(draft))

	open := validPetition()
	open.PublishedAt = nil
	assert.Contains(t, fieldErrors(t, supports.Validate(open)), "published_at")

	victory := validPetition()
	victory.Status = PetitionVictory
	assert.Contains(t, fieldErrors(t, supports.Validate(victory)), "signature_count")

	victory.SignatureCount = victory.SignatureGoal
	assert.NoError(t, supports.Validate(victory))
}

func TestPetitionBeforeCreateAssignsUUID(t *testing.T) {
	p := Petition{}
	require.NoError(t, p.BeforeCreate(nil))
	_, err := uuid.Parse(p.UUID)
	assert.NoError(t, err)

	kept := Petition{UUID: "6f1c2a52-6f57-4b8b-9d8e-2f6f3c1d2e4a"}
	require.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "6f1c2a52-6f57-4b8b-9d8e-2f6f3c1d2e4a", kept.UUID)
}
