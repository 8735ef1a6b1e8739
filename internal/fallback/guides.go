package fallback

import (
	"time"

	"guidemarket/internal/domain"
)

// Warning texts attached to degraded reads.
const (
	WarnNotConfigured = "remote store is not configured; showing sample guides"
	WarnUnavailable   = "remote store is unavailable; showing sample guides"
	WarnEmpty         = "no guides found; showing sample guides"
)

var seededAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var guides = []domain.GuideProfile{
	sample("fallback-1", "Ahmed", "Hassan", "ahmed@example.com", "+20 123 456 7890", "Cairo", "Egypt",
		[]string{"English", "Arabic", "French"},
		[]string{"Historical Sites", "Cultural Tours", "Food Tours"},
		8, 25, 4.9, 156, "ahmed",
		"Passionate about sharing Cairo's rich history and vibrant culture with visitors from around the world."),
	sample("fallback-2", "Elena", "Rodriguez", "elena@example.com", "+34 654 321 987", "Barcelona", "Spain",
		[]string{"Spanish", "English", "Portuguese"},
		[]string{"Art Tours", "Architecture", "Local Cuisine"},
		6, 35, 4.8, 203, "elena",
		"Art enthusiast and local food expert who loves showing visitors the hidden gems of Barcelona."),
	sample("fallback-3", "Thomas", "Mueller", "thomas@example.com", "+49 172 345 678", "Munich", "Germany",
		[]string{"German", "English", "Dutch"},
		[]string{"Historical Tours", "Beer Culture", "Museums"},
		10, 40, 4.7, 178, "thomas",
		"History buff and beer connoisseur offering authentic Bavarian experiences in Munich."),
	sample("fallback-4", "Marie", "Dubois", "marie@example.com", "+33 6 12 34 56 78", "Paris", "France",
		[]string{"French", "English", "Italian"},
		[]string{"Fashion", "Art", "Gastronomy"},
		12, 50, 4.9, 234, "marie",
		"Fashion industry professional turned tour guide, specializing in Parisian style and culinary experiences."),
	sample("fallback-5", "Hiroshi", "Tanaka", "hiroshi@example.com", "+81 90 1234 5678", "Tokyo", "Japan",
		[]string{"Japanese", "English"},
		[]string{"Traditional Culture", "Temples", "Modern Tokyo"},
		7, 45, 4.8, 189, "hiroshi",
		"Cultural ambassador passionate about bridging traditional Japanese culture with modern Tokyo life."),
	sample("fallback-6", "Sarah", "Johnson", "sarah@example.com", "+1 555 123 4567", "New York", "USA",
		[]string{"English"},
		[]string{"Urban Photography", "Street Art", "Local Music"},
		5, 55, 4.7, 167, "sarah",
		"NYC native and photographer offering unique perspectives on the city's vibrant street culture and art scene."),
}

// Guides returns a fresh copy of the sample set. The ids and contents are the
// same on every call.
func Guides() []domain.GuideProfile {
	return domain.CloneGuides(guides)
}

// IDs lists the sample guide ids in serving order.
func IDs() []string {
	out := make([]string, 0, len(guides))
	for _, g := range guides {
		out = append(out, g.ID)
	}
	return out
}

func sample(id, first, last, email, phone, city, country string, langs, specs []string,
	experience int, price, rating float64, reviews int, photo, description string) domain.GuideProfile {
	g := domain.GuideProfile{
		ID:              id,
		FirstName:       first,
		LastName:        last,
		Email:           email,
		Phone:           phone,
		City:            city,
		Country:         country,
		Languages:       langs,
		Specializations: specs,
		Experience:      experience,
		PricePerHour:    price,
		Description:     description,
		ProfilePhoto:    "/images/guides/" + photo + ".jpg",
		Gallery:         []string{},
		Certifications:  []string{},
		Achievements:    []string{},
		Rating:          rating,
		ReviewCount:     reviews,
		Verified:        true,
		Availability:    true,
		JoinDate:        seededAt.Format(domain.DateLayout),
		ResponseTime:    domain.DefaultResponseTime,
		CreatedAt:       seededAt,
		UpdatedAt:       seededAt,
	}
	g.Derive()
	return g
}
