package factories

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/galaplate/petitions/database/factory"
	"github.com/galaplate/petitions/models"
	"github.com/galaplate/petitions/supports"
	"github.com/google/uuid"
)

// PetitionFactory builds valid petitions filled with fake data.
type PetitionFactory struct {
	*factory.BaseFactory[models.Petition]
}

type PetitionFactoryOption func(*petitionOptions)

type petitionOptions struct {
	// mu guards faker, whose rand source is not safe for concurrent use.
	mu    *sync.Mutex
	faker *gofakeit.Faker
	now   func() time.Time
}

// WithFaker uses faker as the data source. A faker created with a fixed
// seed makes the generated petitions reproducible. The faker must not be
// used elsewhere while the factory builds.
func WithFaker(faker *gofakeit.Faker) PetitionFactoryOption {
	return func(o *petitionOptions) {
		o.faker = faker
	}
}

// WithClock fixes the reference time used for published_at.
func WithClock(now func() time.Time) PetitionFactoryOption {
	return func(o *petitionOptions) {
		o.now = now
	}
}

// NewPetitionFactory returns a factory bound to the global connection.
// Factories derived from it share its faker; building is safe from several
// goroutines at once.
func NewPetitionFactory(opts ...PetitionFactoryOption) *PetitionFactory {
	o := petitionOptions{mu: &sync.Mutex{}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.faker == nil {
		o.faker = gofakeit.New(0)
	}

	base := factory.NewBaseFactory(func(seq int64) models.Petition {
		o.mu.Lock()
		defer o.mu.Unlock()
		return definition(o, seq)
	}).Validate(supports.Validate)

	return &PetitionFactory{BaseFactory: base}
}

func definition(o petitionOptions, seq int64) models.Petition {
	f := o.faker

	id, err := uuid.NewRandomFromReader(f.Rand)
	if err != nil {
		id = uuid.New()
	}

	title := fmt.Sprintf("%s %s", f.RandomString(titleVerbs), f.Sentence(f.IntRange(3, 8)))
	slug := supports.Slugify(title)
	if len(slug) > 200 {
		slug = strings.TrimRight(slug[:200], "-")
	}

	p := models.Petition{
		UUID:          id.String(),
		Title:         title,
		Slug:          fmt.Sprintf("%s-%s", slug, id.String()[:8]),
		Description:   f.Paragraph(f.IntRange(1, 3), f.IntRange(2, 5), 12, "\n\n"),
		Recipient:     recipient(f),
		Category:      f.RandomString(models.PetitionCategories),
		AuthorName:    f.Name(),
		AuthorEmail:   authorEmail(f, seq),
		SignatureGoal: f.IntRange(1, 100) * 100,
	}
	if f.Bool() {
		p.Location = fmt.Sprintf("%s, %s", f.City(), f.Country())
	}

	applyStatus(o, &p, pickStatus(f))
	return p
}

var titleVerbs = []string{"Stop", "Save", "Protect", "Ban", "Fund", "Restore", "Support", "Demand"}

var emailDomains = []string{"example.com", "example.org", "example.net"}

func recipient(f *gofakeit.Faker) string {
	switch f.IntRange(1, 4) {
	case 1:
		return "The Mayor of " + f.City()
	case 2:
		return f.Company() + " Board of Directors"
	case 3:
		return "Ministry of " + f.RandomString([]string{"Health", "Education", "Environment", "Transport"})
	default:
		return f.State() + " State Legislature"
	}
}

// authorEmail stays unique per sequence and within the reserved example
// domains.
func authorEmail(f *gofakeit.Faker, seq int64) string {
	local := strings.ReplaceAll(supports.Slugify(f.FirstName()), "-", ".")
	if local == "" {
		local = "petitioner"
	}
	return fmt.Sprintf("%s.%d@%s", local, seq, f.RandomString(emailDomains))
}

// pickStatus favours open petitions, the usual state of a live site.
func pickStatus(f *gofakeit.Faker) models.PetitionStatus {
	switch n := f.IntRange(1, 10); {
	case n <= 2:
		return models.PetitionDraft
	case n <= 7:
		return models.PetitionOpen
	case n <= 9:
		return models.PetitionClosed
	default:
		return models.PetitionVictory
	}
}

// applyStatus sets the status and the fields the status constrains.
func applyStatus(o petitionOptions, p *models.Petition, status models.PetitionStatus) {
	f := o.faker
	p.Status = status

	switch status {
	case models.PetitionDraft:
		p.PublishedAt = nil
		p.SignatureCount = 0
		return
	case models.PetitionVictory:
		p.SignatureCount = p.SignatureGoal + f.IntRange(0, p.SignatureGoal)
	default:
		p.SignatureCount = f.IntRange(0, p.SignatureGoal)
	}

	now := o.now()
	published := f.DateRange(now.AddDate(-1, 0, 0), now).UTC()
	p.PublishedAt = &published
}

// Draft returns a factory producing unpublished petitions.
func (pf *PetitionFactory) Draft() *PetitionFactory {
	return pf.withStatus(models.PetitionDraft)
}

// Open returns a factory producing petitions collecting signatures.
func (pf *PetitionFactory) Open() *PetitionFactory {
	return pf.withStatus(models.PetitionOpen)
}

func (pf *PetitionFactory) Closed() *PetitionFactory {
	return pf.withStatus(models.PetitionClosed)
}

// Victory returns a factory producing petitions that reached their goal.
func (pf *PetitionFactory) Victory() *PetitionFactory {
	return pf.withStatus(models.PetitionVictory)
}

func (pf *PetitionFactory) withStatus(status models.PetitionStatus) *PetitionFactory {
	return &PetitionFactory{BaseFactory: pf.State(func(p *models.Petition) {
		setStatus(p, status)
	})}
}

// setStatus moves a built petition to status without reaching for the
// faker, keeping the generated sequence independent of states.
func setStatus(p *models.Petition, status models.PetitionStatus) {
	p.Status = status

	switch status {
	case models.PetitionDraft:
		p.PublishedAt = nil
		p.SignatureCount = 0
		return
	case models.PetitionVictory:
		if p.SignatureCount < p.SignatureGoal {
			p.SignatureCount = p.SignatureGoal
		}
	default:
		if p.SignatureCount > p.SignatureGoal {
			p.SignatureCount = p.SignatureGoal
		}
	}

	if p.PublishedAt == nil {
		published := p.CreatedAt
		if published.IsZero() {
			published = time.Now().UTC().Add(-24 * time.Hour)
		}
		p.PublishedAt = &published
	}
}
