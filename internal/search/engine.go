package search

import (
	"sort"
	"strings"

	"guidemarket/internal/domain"
)

// Apply returns the guides matching every active predicate of q, ordered by
// q.Sort. Ties keep input order and the input slice is never modified.
func Apply(guides []domain.GuideProfile, q Query) []domain.GuideProfile {
	m := newMatcher(q)
	out := make([]domain.GuideProfile, 0, len(guides))
	for _, g := range guides {
		if m.match(g) {
			out = append(out, g.Clone())
		}
	}

	if less := lessFor(q.Sort); less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// Matches reports whether g satisfies every active predicate of q.
func Matches(g domain.GuideProfile, q Query) bool {
	return newMatcher(q).match(g)
}

func lessFor(key SortKey) func(a, b domain.GuideProfile) bool {
	switch key {
	case SortPriceLow:
		return func(a, b domain.GuideProfile) bool { return a.PricePerHour < b.PricePerHour }
	case SortPriceHigh:
		return func(a, b domain.GuideProfile) bool { return a.PricePerHour > b.PricePerHour }
	case SortRating:
		return func(a, b domain.GuideProfile) bool { return a.Rating > b.Rating }
	case SortExperience:
		return func(a, b domain.GuideProfile) bool { return a.Experience > b.Experience }
	case SortReviews:
		return func(a, b domain.GuideProfile) bool { return a.ReviewCount > b.ReviewCount }
	default:
		return nil
	}
}

// matcher holds the lowered, trimmed form of a query so it is prepared once
// per Apply call.
type matcher struct {
	text      string
	location  string
	languages []string
	specs     []string
	q         Query
}

func newMatcher(q Query) matcher {
	return matcher{
		text:      strings.ToLower(strings.TrimSpace(q.Text)),
		location:  strings.ToLower(strings.TrimSpace(q.Location)),
		languages: lowerAll(nonEmpty(q.Languages)),
		specs:     lowerAll(nonEmpty(q.Specializations)),
		q:         q,
	}
}

func (m matcher) match(g domain.GuideProfile) bool {
	if m.text != "" && !matchesText(g, m.text) {
		return false
	}
	if m.location != "" && !strings.Contains(strings.ToLower(g.Location), m.location) {
		return false
	}
	if len(m.languages) > 0 && !intersects(g.Languages, m.languages) {
		return false
	}
	if len(m.specs) > 0 && !intersects(g.Specializations, m.specs) {
		return false
	}
	if m.q.Price.Min != nil && g.PricePerHour < *m.q.Price.Min {
		return false
	}
	if m.q.Price.Max != nil && g.PricePerHour > *m.q.Price.Max {
		return false
	}
	if m.q.MinRating != nil && g.Rating < *m.q.MinRating {
		return false
	}
	if m.q.Availability != nil && g.Availability != *m.q.Availability {
		return false
	}
	return true
}

func matchesText(g domain.GuideProfile, term string) bool {
	for _, s := range []string{g.Name, g.Location, g.Description} {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	for _, s := range g.Languages {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	for _, s := range g.Specializations {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// intersects compares labels case-insensitively; want is already lowered.
func intersects(have, want []string) bool {
	for _, h := range have {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
