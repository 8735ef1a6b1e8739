package stats

import (
	"strings"
	"time"

	"guidemarket/internal/domain"
)

// Summary is the dashboard view of a guide collection.
type Summary struct {
	TotalGuides   int            `json:"totalGuides"`
	TotalReviews  int            `json:"totalReviews"`
	TotalBookings int            `json:"totalBookings"`
	ByCity        map[string]int `json:"byCity"`
	ByLocation    map[string]int `json:"byLocation"`
	ByLanguage    map[string]int `json:"byLanguage"`
	AverageRating float64        `json:"averageRating"`
	LastUpdated   time.Time      `json:"lastUpdated"`
}

// Compute counts guides by city, location and language and averages their
// ratings. Review and booking totals come from the caller since stores keep
// them separately.
func Compute(guides []domain.GuideProfile, reviews, bookings int, now time.Time) Summary {
	s := Summary{
		TotalGuides:   len(guides),
		TotalReviews:  reviews,
		TotalBookings: bookings,
		ByCity:        map[string]int{},
		ByLocation:    map[string]int{},
		ByLanguage:    map[string]int{},
		LastUpdated:   now.UTC(),
	}
	if len(guides) == 0 {
		return s
	}

	var sum float64
	for _, g := range guides {
		if city := strings.TrimSpace(g.City); city != "" {
			s.ByCity[city]++
		}
		if loc := strings.TrimSpace(g.Location); loc != "" {
			s.ByLocation[loc]++
		}
		for _, lang := range domain.UniqueLabels(g.Languages) {
			s.ByLanguage[lang]++
		}
		sum += g.Rating
	}
	s.AverageRating = domain.RoundRating(sum / float64(len(guides)))
	return s
}
