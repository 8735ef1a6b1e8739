package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"guidemarket/internal/database"
	"guidemarket/internal/domain"
	"guidemarket/internal/search"
)

type GuideRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewGuideRepository(db *gorm.DB, log zerolog.Logger) *GuideRepository {
	return &GuideRepository{db: db, log: log}
}

// List returns every guide, newest first.
func (r *GuideRepository) List(ctx context.Context) ([]domain.GuideProfile, error) {
	var rows []guideRow
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, classify("list guides", err)
	}
	return toDomainGuides(rows), nil
}

func (r *GuideRepository) GetByID(ctx context.Context, id string) (*domain.GuideProfile, error) {
	var m guideRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("guide", id)
	}
	if err != nil {
		return nil, classify("get guide", err)
	}
	g := toDomainGuide(m)
	return &g, nil
}

// Create inserts g; an email collision surfaces as domain.ErrDuplicateEmail.
func (r *GuideRepository) Create(ctx context.Context, g *domain.GuideProfile) error {
	m := toGuideRow(g)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return classify("create guide", err)
	}
	*g = toDomainGuide(m)
	return nil
}

// Update runs load-modify-save for one guide inside a transaction so the
// derived fields are written together with the change that produced them.
func (r *GuideRepository) Update(ctx context.Context, id string, fn func(g *domain.GuideProfile) error) (*domain.GuideProfile, error) {
	var out domain.GuideProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m guideRow
		err := lockForUpdate(tx).Where("id = ?", id).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("guide", id)
		}
		if err != nil {
			return err
		}

		g := toDomainGuide(m)
		if err := fn(&g); err != nil {
			return err
		}
		g.ID = id

		updated := toGuideRow(&g)
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		out = toDomainGuide(updated)
		return nil
	})
	if err != nil {
		return nil, classify("update guide", err)
	}
	return &out, nil
}

// Delete removes the guide and its reviews in one transaction.
func (r *GuideRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guide_id = ?", id).Delete(&reviewRow{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&guideRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NotFound("guide", id)
		}
		return nil
	})
	return classify("delete guide", err)
}

// DeleteAll clears both tables and reports how many guides were removed.
func (r *GuideRepository) DeleteAll(ctx context.Context) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&reviewRow{}).Error; err != nil {
			return err
		}
		res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&guideRow{})
		removed = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, classify("clear guides", err)
	}
	return removed, nil
}

// Search translates q into SQL predicates; results come back by rating.
func (r *GuideRepository) Search(ctx context.Context, q search.Query) ([]domain.GuideProfile, error) {
	query, err := buildSearchSQL(goquDialect(r.db), q)
	if err != nil {
		return nil, classify("build search query", err)
	}
	r.log.Debug().Str("sql", query).Msg("guide search")

	var rows []guideRow
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, classify("search guides", err)
	}
	return toDomainGuides(rows), nil
}

func (r *GuideRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&guideRow{}).Count(&n).Error; err != nil {
		return 0, classify("count guides", err)
	}
	return n, nil
}

// Ping checks that the store answers and the guides table exists.
func (r *GuideRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return classify("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return classify("ping", err)
	}
	if !r.db.Migrator().HasTable(&guideRow{}) {
		return domain.Unavailable("ping", errors.New("guides table not found"))
	}
	return nil
}

func toDomainGuides(rows []guideRow) []domain.GuideProfile {
	out := make([]domain.GuideProfile, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainGuide(m))
	}
	return out
}

// lockForUpdate takes a row lock where the dialect supports it; sqlite
// serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if database.IsPostgres(tx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
