package guide

import (
	"context"

	"github.com/rs/zerolog"

	"guidemarket/internal/domain"
	"guidemarket/internal/fallback"
	"guidemarket/internal/search"
	"guidemarket/internal/stats"
)

type Service struct {
	store Store
	log   zerolog.Logger
}

func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) Store() Store { return s.store }

// ListGuides fetches the full collection from the active store and runs the
// search engine over it. When the store has nothing to show, or cannot be
// read at all, the sample guides are filtered instead and the result carries
// a warning.
func (s *Service) ListGuides(ctx context.Context, q search.Query) domain.Result[[]domain.GuideProfile] {
	res := s.store.GetAllGuides(ctx)
	switch {
	case !res.Success:
		s.log.Warn().Str("source", s.store.Source()).Str("error", res.Error).Msg("guide list failed, serving fallback data")
		res = domain.Degraded(fallback.Guides(), fallback.WarnUnavailable+": "+res.Error)
	case len(res.Data) == 0 && res.Warning == "":
		res = domain.Degraded(fallback.Guides(), fallback.WarnEmpty)
	}
	return domain.MapResult(res, func(list []domain.GuideProfile) []domain.GuideProfile {
		return search.Apply(list, q)
	})
}

func (s *Service) GetGuide(ctx context.Context, id string) domain.Result[domain.GuideProfile] {
	return s.store.GetGuideByID(ctx, id)
}

func (s *Service) SearchGuides(ctx context.Context, q search.Query) domain.Result[[]domain.GuideProfile] {
	return s.store.SearchGuides(ctx, q)
}

func (s *Service) CreateGuide(ctx context.Context, in domain.GuideInput) domain.Result[domain.GuideProfile] {
	return s.store.CreateGuide(ctx, in)
}

func (s *Service) UpdateGuide(ctx context.Context, id string, patch domain.GuidePatch) domain.Result[domain.GuideProfile] {
	return s.store.UpdateGuide(ctx, id, patch)
}

func (s *Service) DeleteGuide(ctx context.Context, id string) domain.Result[bool] {
	return s.store.DeleteGuide(ctx, id)
}

// AddReview attaches the review to guideID regardless of what the body says.
func (s *Service) AddReview(ctx context.Context, guideID string, in domain.ReviewInput) domain.Result[domain.Review] {
	in.GuideID = guideID
	return s.store.CreateReview(ctx, in)
}

func (s *Service) ListReviews(ctx context.Context, guideID string) domain.Result[[]domain.Review] {
	return s.store.GetReviewsByGuideID(ctx, guideID)
}

func (s *Service) Stats(ctx context.Context) domain.Result[stats.Summary] {
	return s.store.Stats(ctx)
}
