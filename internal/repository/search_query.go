package repository

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"guidemarket/internal/database"
	"guidemarket/internal/domain"
	"guidemarket/internal/search"
)

func goquDialect(db *gorm.DB) string {
	if database.IsPostgres(db) {
		return "postgres"
	}
	return "sqlite3"
}

// buildSearchSQL renders the server-side guide search as a single SELECT with
// values interpolated by goqu.
func buildSearchSQL(dialect string, q search.Query) (string, error) {
	var where []exp.Expression

	if loc := strings.TrimSpace(q.Location); loc != "" {
		where = append(where, containsFold(dialect, "location", loc))
	}
	if langs := domain.UniqueLabels(q.Languages); len(langs) > 0 {
		expr, err := overlapsAny(dialect, "languages", langs)
		if err != nil {
			return "", err
		}
		where = append(where, expr)
	}
	if specs := domain.UniqueLabels(q.Specializations); len(specs) > 0 {
		expr, err := overlapsAny(dialect, "specializations", specs)
		if err != nil {
			return "", err
		}
		where = append(where, expr)
	}
	if q.Price.Min != nil {
		where = append(where, goqu.C("price_per_hour").Gte(*q.Price.Min))
	}
	if q.Price.Max != nil {
		where = append(where, goqu.C("price_per_hour").Lte(*q.Price.Max))
	}
	if q.MinRating != nil {
		where = append(where, goqu.C("rating").Gte(*q.MinRating))
	}
	if q.Availability != nil {
		where = append(where, goqu.C("availability").Eq(*q.Availability))
	}
	if text := strings.TrimSpace(q.Text); text != "" {
		where = append(where, goqu.Or(
			containsFold(dialect, "name", text),
			containsFold(dialect, "description", text),
			containsFold(dialect, "location", text),
		))
	}

	query, _, err := goqu.Dialect(dialect).
		From(guidesTable).
		Where(where...).
		Order(goqu.C("rating").Desc(), goqu.C("created_at").Desc(), goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return "", fmt.Errorf("build guide search: %w", err)
	}
	return query, nil
}

// overlapsAny matches rows whose label column shares at least one value with
// want, ignoring case. Postgres compares the unnested array; sqlite only has
// the encoded array literal, so it falls back to a per-label substring test.
func overlapsAny(dialect, column string, want []string) (exp.Expression, error) {
	if dialect == "postgres" {
		lowered := make([]string, 0, len(want))
		for _, label := range want {
			lowered = append(lowered, strings.ToLower(label))
		}
		lit, err := pq.StringArray(lowered).Value()
		if err != nil {
			return nil, err
		}
		return goqu.L("EXISTS (SELECT 1 FROM unnest(?) AS l(label) WHERE lower(l.label) = ANY(?::text[]))",
			goqu.C(column), lit), nil
	}
	ors := make([]exp.Expression, 0, len(want))
	for _, label := range want {
		ors = append(ors, containsFold(dialect, column, label))
	}
	return goqu.Or(ors...), nil
}

// containsFold is a case-insensitive substring match. sqlite LIKE already
// folds ASCII case; postgres needs ILIKE.
func containsFold(dialect, column, value string) exp.Expression {
	op := "LIKE"
	if dialect == "postgres" {
		op = "ILIKE"
	}
	return goqu.L("? "+op+" ? ESCAPE '\\'", goqu.C(column), contains(value))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains wraps s for a substring match, with its own wildcards taken literally.
func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
