package search

import "strings"

type SortKey string

const (
	SortFeatured   SortKey = "featured"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortRating     SortKey = "rating"
	SortExperience SortKey = "experience"
	SortReviews    SortKey = "reviews"
)

var sortKeys = map[SortKey]struct{}{
	SortFeatured:   {},
	SortPriceLow:   {},
	SortPriceHigh:  {},
	SortRating:     {},
	SortExperience: {},
	SortReviews:    {},
}

// ParseSort reports whether s names a known sort key. Empty means featured.
func ParseSort(s string) (SortKey, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortFeatured, true
	}
	k := SortKey(s)
	if _, ok := sortKeys[k]; !ok {
		return SortFeatured, false
	}
	return k, true
}

// PriceRange bounds are inclusive; a nil bound is unconstrained.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Query describes the filters and sort order of a catalog request. The zero value matches everything
// and keeps input order.
type Query struct {
	Text            string     `json:"text,omitempty"`
	Location        string     `json:"location,omitempty"`
	Languages       []string   `json:"languages,omitempty"`
	Specializations []string   `json:"specializations,omitempty"`
	Price           PriceRange `json:"price"`
	MinRating       *float64   `json:"minRating,omitempty"`
	Availability    *bool      `json:"availability,omitempty"`
	Sort            SortKey    `json:"sort,omitempty"`
}

// IsEmpty reports whether no filter category is active.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == "" &&
		strings.TrimSpace(q.Location) == "" &&
		len(nonEmpty(q.Languages)) == 0 &&
		len(nonEmpty(q.Specializations)) == 0 &&
		q.Price.Min == nil && q.Price.Max == nil &&
		q.MinRating == nil &&
		q.Availability == nil
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
