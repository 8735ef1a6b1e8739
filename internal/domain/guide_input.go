package domain

import (
	"strings"
	"time"

	"guidemarket/internal/pkg/validator"
)

// GuideInput is the signup payload. Reputation and derived fields are not accepted.
type GuideInput struct {
	ID              string   `json:"id,omitempty"`
	FirstName       string   `json:"firstName" validate:"required_without=LastName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone"`
	DateOfBirth     string   `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	City            string   `json:"city" validate:"required"`
	Country         string   `json:"country" validate:"required"`
	Languages       []string `json:"languages"`
	Specializations []string `json:"specializations"`
	Experience      int      `json:"experience" validate:"gte=0"`
	PricePerHour    float64  `json:"pricePerHour" validate:"required,gt=0"`
	Description     string   `json:"description"`
	ProfilePhoto    string   `json:"profilePhoto"`
	Gallery         []string `json:"gallery"`
	Certifications  []string `json:"certifications"`
}

// Validate checks required fields before any store is touched.
func (in GuideInput) Validate() error {
	if fields := validator.Validate(in); len(fields) > 0 {
		return NewValidationError(fields)
	}
	if FullName(strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)) == "" {
		return NewValidationError(map[string]string{"firstName": "required_without"})
	}
	return nil
}

// NewGuide builds a fresh profile with creation defaults and derived fields set.
func NewGuide(in GuideInput, id string, now time.Time) GuideProfile {
	photo := strings.TrimSpace(in.ProfilePhoto)
	if photo == "" {
		photo = DefaultProfilePhoto
	}
	g := GuideProfile{
		ID:              id,
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		Email:           NormalizeEmail(in.Email),
		Phone:           in.Phone,
		DateOfBirth:     in.DateOfBirth,
		City:            strings.TrimSpace(in.City),
		Country:         strings.TrimSpace(in.Country),
		Languages:       UniqueLabels(in.Languages),
		Specializations: UniqueLabels(in.Specializations),
		Experience:      in.Experience,
		PricePerHour:    in.PricePerHour,
		Description:     in.Description,
		ProfilePhoto:    photo,
		Gallery:         cloneStrings(in.Gallery),
		Certifications:  cloneStrings(in.Certifications),
		Achievements:    []string{NewGuideAchievement},
		Rating:          DefaultRating,
		ReviewCount:     0,
		Verified:        false,
		Availability:    true,
		JoinDate:        now.Format(DateLayout),
		TotalTours:      0,
		ResponseTime:    DefaultResponseTime,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	g.Derive()
	return g
}

// GuidePatch is a typed partial update: nil means "leave as is".
type GuidePatch struct {
	FirstName       *string   `json:"firstName,omitempty"`
	LastName        *string   `json:"lastName,omitempty"`
	Email           *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string   `json:"phone,omitempty"`
	DateOfBirth     *string   `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	City            *string   `json:"city,omitempty"`
	Country         *string   `json:"country,omitempty"`
	Languages       *[]string `json:"languages,omitempty"`
	Specializations *[]string `json:"specializations,omitempty"`
	Experience      *int      `json:"experience,omitempty" validate:"omitempty,gte=0"`
	PricePerHour    *float64  `json:"pricePerHour,omitempty" validate:"omitempty,gt=0"`
	Description     *string   `json:"description,omitempty"`
	ProfilePhoto    *string   `json:"profilePhoto,omitempty"`
	Gallery         *[]string `json:"gallery,omitempty"`
	Certifications  *[]string `json:"certifications,omitempty"`
	Achievements    *[]string `json:"achievements,omitempty"`
	Availability    *bool     `json:"availability,omitempty"`
	TotalTours      *int      `json:"totalTours,omitempty" validate:"omitempty,gte=0"`
	ResponseTime    *string   `json:"responseTime,omitempty"`
}

func (p GuidePatch) Validate() error {
	if fields := validator.Validate(p); len(fields) > 0 {
		return NewValidationError(fields)
	}
	// zero values slip past omitempty
	if p.PricePerHour != nil && *p.PricePerHour <= 0 {
		return NewValidationError(map[string]string{"pricePerHour": "gt"})
	}
	if p.Email != nil && strings.TrimSpace(*p.Email) == "" {
		return NewValidationError(map[string]string{"email": "required"})
	}
	fields := map[string]string{}
	if blank(p.City) {
		fields["city"] = "required"
	}
	if blank(p.Country) {
		fields["country"] = "required"
	}
	if blank(p.FirstName) && blank(p.LastName) {
		fields["firstName"] = "required_without"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

// ValidateAgainst rejects a patch that would leave g without a name once merged.
func (p GuidePatch) ValidateAgainst(g GuideProfile) error {
	first, last := g.FirstName, g.LastName
	if p.FirstName != nil {
		first = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		last = strings.TrimSpace(*p.LastName)
	}
	if FullName(first, last) == "" {
		return NewValidationError(map[string]string{"firstName": "required_without"})
	}
	return nil
}

// Apply merges the patch into g, re-derives combined fields and stamps UpdatedAt.
func (p GuidePatch) Apply(g *GuideProfile, now time.Time) {
	setString(&g.FirstName, p.FirstName)
	setString(&g.LastName, p.LastName)
	if p.Email != nil {
		g.Email = NormalizeEmail(*p.Email)
	}
	setString(&g.Phone, p.Phone)
	setString(&g.DateOfBirth, p.DateOfBirth)
	setString(&g.City, p.City)
	setString(&g.Country, p.Country)
	setString(&g.Description, p.Description)
	setString(&g.ProfilePhoto, p.ProfilePhoto)
	setString(&g.ResponseTime, p.ResponseTime)
	if p.Languages != nil {
		g.Languages = UniqueLabels(*p.Languages)
	}
	if p.Specializations != nil {
		g.Specializations = UniqueLabels(*p.Specializations)
	}
	if p.Gallery != nil {
		g.Gallery = cloneStrings(*p.Gallery)
	}
	if p.Certifications != nil {
		g.Certifications = cloneStrings(*p.Certifications)
	}
	if p.Achievements != nil {
		g.Achievements = cloneStrings(*p.Achievements)
	}
	if p.Experience != nil {
		g.Experience = *p.Experience
	}
	if p.PricePerHour != nil {
		g.PricePerHour = *p.PricePerHour
	}
	if p.Availability != nil {
		g.Availability = *p.Availability
	}
	if p.TotalTours != nil {
		g.TotalTours = *p.TotalTours
	}
	g.Derive()
	g.UpdatedAt = now
}

// ChangesEmail reports whether applying p would move g to a different email.
func (p GuidePatch) ChangesEmail(g GuideProfile) bool {
	return p.Email != nil && NormalizeEmail(*p.Email) != g.Email
}

// NormalizeEmail is applied on every write so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// blank reports a field that is present but empty after trimming.
func blank(v *string) bool {
	return v != nil && strings.TrimSpace(*v) == ""
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
