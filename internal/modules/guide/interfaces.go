package guide

import (
	"context"

	"guidemarket/internal/domain"
	"guidemarket/internal/events"
	"guidemarket/internal/localstore"
	"guidemarket/internal/search"
	"guidemarket/internal/stats"
)

// Store is the contract both the remote and the local store satisfy. Every
// operation resolves to a result envelope; none return bare errors.
type Store interface {
	Source() string
	Ping(ctx context.Context) error
	Subscribe(fn events.Listener) (unsubscribe func())

	GetAllGuides(ctx context.Context) domain.Result[[]domain.GuideProfile]
	GetGuideByID(ctx context.Context, id string) domain.Result[domain.GuideProfile]
	CreateGuide(ctx context.Context, in domain.GuideInput) domain.Result[domain.GuideProfile]
	UpdateGuide(ctx context.Context, id string, patch domain.GuidePatch) domain.Result[domain.GuideProfile]
	DeleteGuide(ctx context.Context, id string) domain.Result[bool]
	SearchGuides(ctx context.Context, q search.Query) domain.Result[[]domain.GuideProfile]

	CreateReview(ctx context.Context, in domain.ReviewInput) domain.Result[domain.Review]
	GetReviewsByGuideID(ctx context.Context, guideID string) domain.Result[[]domain.Review]

	Stats(ctx context.Context) domain.Result[stats.Summary]
	Clear(ctx context.Context) domain.Result[int]
}

// GuideRepository is the slice of repository.GuideRepository the remote store uses.
type GuideRepository interface {
	List(ctx context.Context) ([]domain.GuideProfile, error)
	GetByID(ctx context.Context, id string) (*domain.GuideProfile, error)
	Create(ctx context.Context, g *domain.GuideProfile) error
	Update(ctx context.Context, id string, fn func(g *domain.GuideProfile) error) (*domain.GuideProfile, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	Search(ctx context.Context, q search.Query) ([]domain.GuideProfile, error)
	Ping(ctx context.Context) error
}

type ReviewRepository interface {
	CreateAndRecompute(ctx context.Context, rv *domain.Review) (*domain.GuideProfile, error)
	ListByGuide(ctx context.Context, guideID string) ([]domain.Review, error)
	Count(ctx context.Context) (int64, error)
}

var (
	_ Store = (*RemoteStore)(nil)
	_ Store = (*localstore.Store)(nil)
)
