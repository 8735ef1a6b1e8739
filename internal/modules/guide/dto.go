package guide

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"guidemarket/internal/domain"
	"guidemarket/internal/search"
)

// parseQuery reads filter and sort parameters. Multi-value filters accept
// both repeated keys and comma-separated values.
func parseQuery(c *gin.Context) (search.Query, error) {
	q := search.Query{
		Text:            strings.TrimSpace(firstNonEmpty(c.Query("q"), c.Query("text"))),
		Location:        strings.TrimSpace(c.Query("location")),
		Languages:       multiValue(c, "languages"),
		Specializations: multiValue(c, "specializations"),
	}
	invalid := map[string]string{}

	var ok bool
	if q.Sort, ok = search.ParseSort(c.Query("sort")); !ok {
		invalid["sort"] = "oneof"
	}
	q.Price.Min = floatParam(c, "minPrice", invalid)
	q.Price.Max = floatParam(c, "maxPrice", invalid)
	q.MinRating = floatParam(c, "minRating", invalid)

	if raw := strings.TrimSpace(c.Query("availability")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid["availability"] = "boolean"
		} else {
			q.Availability = &v
		}
	}

	if q.Price.Min != nil && q.Price.Max != nil && *q.Price.Min > *q.Price.Max {
		invalid["minPrice"] = "ltefield"
	}
	if len(invalid) > 0 {
		return search.Query{}, domain.NewValidationError(invalid)
	}
	return q, nil
}

func multiValue(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func floatParam(c *gin.Context, key string, invalid map[string]string) *float64 {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		invalid[key] = "number"
		return nil
	}
	return &v
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
