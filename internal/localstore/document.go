package localstore

import (
	"encoding/json"
	"fmt"
	"time"

	"guidemarket/internal/domain"
)

// DocumentKey is the fixed region key the whole document lives under.
const DocumentKey = "guide_platform_db"

// Document is the persisted layout: every collection in one JSON value.
type Document struct {
	Guides      []domain.GuideProfile `json:"guides"`
	Reviews     []domain.Review       `json:"reviews"`
	Bookings    []domain.Booking      `json:"bookings"`
	LastUpdated time.Time             `json:"lastUpdated"`
}

func emptyDocument(now time.Time) *Document {
	return &Document{
		Guides:      []domain.GuideProfile{},
		Reviews:     []domain.Review{},
		Bookings:    []domain.Booking{},
		LastUpdated: now,
	}
}

func decodeDocument(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc.normalize()
	return &doc, nil
}

func (d *Document) encode() ([]byte, error) {
	return json.Marshal(d)
}

// normalize replaces null collections so callers always see empty slices.
func (d *Document) normalize() {
	if d.Guides == nil {
		d.Guides = []domain.GuideProfile{}
	}
	if d.Reviews == nil {
		d.Reviews = []domain.Review{}
	}
	if d.Bookings == nil {
		d.Bookings = []domain.Booking{}
	}
}

func (d *Document) clone() *Document {
	out := &Document{
		Guides:      domain.CloneGuides(d.Guides),
		Reviews:     make([]domain.Review, len(d.Reviews)),
		Bookings:    make([]domain.Booking, len(d.Bookings)),
		LastUpdated: d.LastUpdated,
	}
	for i, r := range d.Reviews {
		out.Reviews[i] = r.Clone()
	}
	copy(out.Bookings, d.Bookings)
	return out
}

func (d *Document) guideIndex(id string) int {
	for i := range d.Guides {
		if d.Guides[i].ID == id {
			return i
		}
	}
	return -1
}

// emailTaken reports whether another guide than exceptID already uses email.
func (d *Document) emailTaken(email, exceptID string) bool {
	for _, g := range d.Guides {
		if g.ID != exceptID && g.Email == email {
			return true
		}
	}
	return false
}

// recompute rewrites the guide's reputation from its reviews. It reports
// false when no guide has that id.
func (d *Document) recompute(guideID string, now time.Time) bool {
	i := d.guideIndex(guideID)
	if i < 0 {
		return false
	}
	d.Guides[i].ApplyReviews(domain.Ratings(d.Reviews, guideID))
	d.Guides[i].UpdatedAt = now
	return true
}

// prepareImport re-derives combined fields and rejects documents that break
// id or email uniqueness.
func prepareImport(in Document) (*Document, error) {
	doc := in.clone()
	doc.normalize()

	ids := make(map[string]struct{}, len(doc.Guides))
	emails := make(map[string]struct{}, len(doc.Guides))
	for i := range doc.Guides {
		g := &doc.Guides[i]
		if g.ID == "" {
			return nil, domain.NewValidationError(map[string]string{fmt.Sprintf("guides[%d].id", i): "required"})
		}
		if _, dup := ids[g.ID]; dup {
			return nil, domain.NewValidationError(map[string]string{fmt.Sprintf("guides[%d].id", i): "unique"})
		}
		ids[g.ID] = struct{}{}

		g.Email = domain.NormalizeEmail(g.Email)
		if _, dup := emails[g.Email]; dup && g.Email != "" {
			return nil, domain.NewValidationError(map[string]string{fmt.Sprintf("guides[%d].email", i): "unique"})
		}
		emails[g.Email] = struct{}{}

		g.Languages = domain.UniqueLabels(g.Languages)
		g.Specializations = domain.UniqueLabels(g.Specializations)
		g.Derive()
	}
	return doc, nil
}
