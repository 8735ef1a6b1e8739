package domain

import (
	"math"
	"strings"
	"time"
)

const (
	DefaultProfilePhoto = "/images/guides/default-avatar.jpg"
	DefaultResponseTime = "< 1 hour"
	DefaultRating       = 5.0
	NewGuideAchievement = "New Guide"

	// DateLayout is used for dateOfBirth, joinDate and review dates.
	DateLayout = "2006-01-02"
)

// GuideProfile is the canonical guide record handed to the presentation layer.
// Name, Location, Rating and ReviewCount are derived; only the stores write them.
type GuideProfile struct {
	ID string `json:"id"`

	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`

	City      string   `json:"city"`
	Country   string   `json:"country"`
	Location  string   `json:"location"`
	Languages []string `json:"languages"`

	Specializations []string `json:"specializations"`
	Experience      int      `json:"experience"`
	PricePerHour    float64  `json:"pricePerHour"`
	Description     string   `json:"description"`

	ProfilePhoto   string   `json:"profilePhoto"`
	Gallery        []string `json:"gallery"`
	Certifications []string `json:"certifications"`
	Achievements   []string `json:"achievements"`

	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`

	Verified     bool `json:"verified"`
	Availability bool `json:"availability"`

	JoinDate     string `json:"joinDate"`
	TotalTours   int    `json:"totalTours"`
	ResponseTime string `json:"responseTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName joins first and last name the way every store derives Name.
func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// FormatLocation renders the "{city}, {country}" display string.
func FormatLocation(city, country string) string {
	return city + ", " + country
}

// Derive recomputes Name and Location from their constituent fields.
func (g *GuideProfile) Derive() {
	g.Name = FullName(g.FirstName, g.LastName)
	g.Location = FormatLocation(g.City, g.Country)
}

// ApplyReviews recomputes Rating and ReviewCount from the guide's full review set.
// An empty set leaves the rating untouched and resets the count.
func (g *GuideProfile) ApplyReviews(ratings []int) {
	g.ReviewCount = len(ratings)
	if len(ratings) == 0 {
		return
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	g.Rating = RoundRating(float64(sum) / float64(len(ratings)))
}

// RoundRating rounds to one decimal place, half away from zero.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// Clone returns a deep copy; slices are not shared with the receiver.
func (g GuideProfile) Clone() GuideProfile {
	g.Languages = cloneStrings(g.Languages)
	g.Specializations = cloneStrings(g.Specializations)
	g.Gallery = cloneStrings(g.Gallery)
	g.Certifications = cloneStrings(g.Certifications)
	g.Achievements = cloneStrings(g.Achievements)
	return g
}

// CloneGuides deep-copies a slice of guides. A nil input yields an empty slice.
func CloneGuides(in []GuideProfile) []GuideProfile {
	out := make([]GuideProfile, 0, len(in))
	for _, g := range in {
		out = append(out, g.Clone())
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// UniqueLabels trims labels, drops empties and duplicates, and keeps first-seen order.
func UniqueLabels(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
