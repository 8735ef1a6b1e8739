package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"guidemarket/internal/domain"
)

type ReviewRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewReviewRepository(db *gorm.DB, log zerolog.Logger) *ReviewRepository {
	return &ReviewRepository{db: db, log: log}
}

// CreateAndRecompute inserts rv and rewrites the owning guide's rating and
// review count from the full review set, all in one transaction.
func (r *ReviewRepository) CreateAndRecompute(ctx context.Context, rv *domain.Review) (*domain.GuideProfile, error) {
	var guide domain.GuideProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g guideRow
		err := lockForUpdate(tx).Where("id = ?", rv.GuideID).First(&g).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("guide", rv.GuideID)
		}
		if err != nil {
			return err
		}

		m := toReviewRow(rv)
		if err := tx.Omit("Guide").Create(&m).Error; err != nil {
			return err
		}

		var agg struct {
			Total int64
			Cnt   int64
		}
		err = tx.Model(&reviewRow{}).
			Select("COALESCE(SUM(rating), 0) AS total, COUNT(*) AS cnt").
			Where("guide_id = ?", rv.GuideID).
			Scan(&agg).Error
		if err != nil {
			return err
		}

		if agg.Cnt > 0 {
			g.Rating = domain.RoundRating(float64(agg.Total) / float64(agg.Cnt))
		}
		g.ReviewCount = int(agg.Cnt)
		g.UpdatedAt = rv.CreatedAt
		err = tx.Model(&guideRow{}).Where("id = ?", g.ID).Updates(map[string]any{
			"rating":       g.Rating,
			"review_count": g.ReviewCount,
			"updated_at":   g.UpdatedAt,
		}).Error
		if err != nil {
			return err
		}

		*rv = toDomainReview(m)
		guide = toDomainGuide(g)
		return nil
	})
	if err != nil {
		return nil, classify("create review", err)
	}
	return &guide, nil
}

// ListByGuide returns the guide's reviews, newest first.
func (r *ReviewRepository) ListByGuide(ctx context.Context, guideID string) ([]domain.Review, error) {
	var rows []reviewRow
	err := r.db.WithContext(ctx).
		Where("guide_id = ?", guideID).
		Order("created_at DESC").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, classify("list reviews", err)
	}
	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReview(m))
	}
	return out, nil
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&reviewRow{}).Count(&n).Error; err != nil {
		return 0, classify("count reviews", err)
	}
	return n, nil
}
