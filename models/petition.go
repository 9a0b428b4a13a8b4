package models

import (
	"time"

	"github.com/galaplate/petitions/supports"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PetitionStatus string

const (
	PetitionDraft   PetitionStatus = "draft"
	PetitionOpen    PetitionStatus = "open"
	PetitionClosed  PetitionStatus = "closed"
	PetitionVictory PetitionStatus = "victory"
)

// PetitionStatuses lists every status in lifecycle order.
var PetitionStatuses = []string{
	string(PetitionDraft),
	string(PetitionOpen),
	string(PetitionClosed),
	string(PetitionVictory),
}

var PetitionCategories = []string{
	"environment",
	"education",
	"health",
	"human_rights",
	"animals",
	"economy",
	"politics",
	"community",
}

type Petition struct {
	ID             uint64         `gorm:"primaryKey" json:"id"`
	UUID           string         `gorm:"column:uuid;size:36;uniqueIndex" json:"uuid" validate:"required,uuid4"`
	Title          string         `gorm:"size:255" json:"title" validate:"required,max=255"`
	Slug           string         `gorm:"size:255;uniqueIndex" json:"slug" validate:"required,max=255,slug"`
	Description    string         `json:"description" validate:"required"`
	Recipient      string         `gorm:"size:255" json:"recipient" validate:"required,max=255"`
	Category       string         `gorm:"size:50" json:"category" validate:"required,oneof=environment education health human_rights animals economy politics community"`
	AuthorName     string         `gorm:"size:255" json:"author_name" validate:"required,max=255"`
	AuthorEmail    string         `gorm:"size:255" json:"author_email" validate:"required,email,max=255"`
	Location       string         `gorm:"size:255" json:"location,omitempty" validate:"max=255"`
	SignatureGoal  int            `json:"signature_goal" validate:"gt=0"`
	SignatureCount int            `json:"signature_count" validate:"gte=0"`
	Status         PetitionStatus `gorm:"size:20" json:"status" validate:"required,oneof=draft open closed victory"`
	PublishedAt    *time.Time     `json:"published_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (Petition) TableName() string {
	return "petitions"
}

func (p *Petition) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	return nil
}

func init() {
	supports.RegisterStructValidation(petitionLifecycle, Petition{})
}

// petitionLifecycle ties published_at and signature_count to the status.
func petitionLifecycle(sl validator.StructLevel) {
	p := sl.Current().Interface().(Petition)

	switch p.Status {
	case PetitionDraft:
		if p.PublishedAt != nil {
			sl.ReportError(p.PublishedAt, "published_at", "PublishedAt", "isdefault", "")
		}
		if p.SignatureCount != 0 {
			sl.ReportError(p.SignatureCount, "signature_count", "SignatureCount", "eq", "0")
		}
	case PetitionOpen, PetitionClosed, PetitionVictory:
		if p.PublishedAt == nil {
			sl.ReportError(p.PublishedAt, "published_at", "PublishedAt", "required", "")
		}
	}

	if p.Status == PetitionVictory && p.SignatureCount < p.SignatureGoal {
		sl.ReportError(p.SignatureCount, "signature_count", "SignatureCount", "gtefield", "SignatureGoal")
	}
}
