package guide

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"guidemarket/internal/config"
	"guidemarket/internal/database"
	"guidemarket/internal/domain"
	"guidemarket/internal/events"
	"guidemarket/internal/fallback"
	"guidemarket/internal/repository"
	"guidemarket/internal/search"
	"guidemarket/internal/stats"
)

const RemoteSourceName = "remote"

// RemoteStore talks to the relational store through the repositories. When the
// store cannot be reached, full-collection reads degrade to the sample guides
// and everything else fails.
type RemoteStore struct {
	guides  GuideRepository
	reviews ReviewRepository

	// reason is set when the store was never usable (bad config, failed connect).
	reason error
	closer func() error

	notifier *events.Notifier
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

type RemoteOption func(*RemoteStore)

func WithRemoteClock(now func() time.Time) RemoteOption {
	return func(s *RemoteStore) { s.now = now }
}

func WithRemoteNotifier(n *events.Notifier) RemoteOption {
	return func(s *RemoteStore) { s.notifier = n }
}

func NewRemoteStore(guides GuideRepository, reviews ReviewRepository, log zerolog.Logger, opts ...RemoteOption) *RemoteStore {
	s := &RemoteStore{
		guides:  guides,
		reviews: reviews,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = events.NewNotifier(log)
	}
	return s
}

// NewUnavailableRemoteStore returns a store whose every operation reports reason.
func NewUnavailableRemoteStore(reason error, log zerolog.Logger, opts ...RemoteOption) *RemoteStore {
	s := NewRemoteStore(nil, nil, log, opts...)
	s.reason = reason
	return s
}

// OpenRemoteStore connects using cfg. It never fails: a missing setting or a
// failed connection is kept as the reason reads degrade.
func OpenRemoteStore(cfg config.RemoteConfig, log zerolog.Logger, opts ...RemoteOption) *RemoteStore {
	dsn, err := cfg.DSN()
	if err != nil {
		log.Warn().Err(err).Msg("remote store not configured")
		return NewUnavailableRemoteStore(err, log, opts...)
	}

	db, err := database.Connect(dsn, log)
	if err != nil {
		log.Error().Err(err).Msg("remote store connection failed")
		return NewUnavailableRemoteStore(domain.Unavailable("connect", err), log, opts...)
	}
	if err := repository.Migrate(db); err != nil {
		log.Error().Err(err).Msg("remote store schema migration failed")
		return NewUnavailableRemoteStore(domain.Unavailable("migrate", err), log, opts...)
	}

	s := NewRemoteStore(
		repository.NewGuideRepository(db, log),
		repository.NewReviewRepository(db, log),
		log, opts...,
	)
	s.closer = func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return s
}

func (s *RemoteStore) Source() string { return RemoteSourceName }

func (s *RemoteStore) Subscribe(fn events.Listener) (unsubscribe func()) {
	return s.notifier.Subscribe(fn)
}

func (s *RemoteStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

func (s *RemoteStore) Ping(ctx context.Context) error {
	if s.reason != nil {
		return s.reason
	}
	return s.guides.Ping(ctx)
}

// GetAllGuides never fails. Configuration problems, query errors and an empty
// table all serve the sample guides with a warning saying why.
func (s *RemoteStore) GetAllGuides(ctx context.Context) domain.Result[[]domain.GuideProfile] {
	if s.reason != nil {
		return s.degrade(s.reason)
	}
	list, err := s.guides.List(ctx)
	if err != nil {
		return s.degrade(err)
	}
	if len(list) == 0 {
		s.log.Warn().Msg("remote store returned no guides, serving fallback data")
		return domain.Degraded(fallback.Guides(), fallback.WarnEmpty)
	}
	return domain.OK(list)
}

func (s *RemoteStore) degrade(cause error) domain.Result[[]domain.GuideProfile] {
	warning := fallback.WarnUnavailable
	if errors.Is(cause, config.ErrRemoteNotConfigured) {
		warning = fallback.WarnNotConfigured
	}
	s.log.Warn().Err(cause).Msg("serving fallback guides")
	return domain.Degraded(fallback.Guides(), fmt.Sprintf("%s: %v", warning, cause))
}

func (s *RemoteStore) GetGuideByID(ctx context.Context, id string) domain.Result[domain.GuideProfile] {
	if err := s.usable("get guide"); err != nil {
		return domain.Fail[domain.GuideProfile](err)
	}
	g, err := s.guides.GetByID(ctx, id)
	if err != nil {
		return domain.Fail[domain.GuideProfile](err)
	}
	return domain.OK(*g)
}

func (s *RemoteStore) CreateGuide(ctx context.Context, in domain.GuideInput) domain.Result[domain.GuideProfile] {
	if err := in.Validate(); err != nil {
		return domain.Fail[domain.GuideProfile](err)
	}
	if err := s.usable("create guide"); err != nil {
		return domain.Fail[domain.GuideProfile](err)
	}

	id := in.ID
	if id == "" {
		id = s.newID()
	}
	now := s.now()
	g := domain.NewGuide(in, id, now)
	if err := s.guides.Create(ctx, &g); err != nil {
		s.logFailure(err, "create guide")
		return domain.Fail[domain.GuideProfile](err)
	}
	s.publish(events.NewChange(events.EntityGuide, events.OpCreate, g.ID, now))
	return domain.OKWithMessage(g, "Guide profile created successfully")
}

func (s *RemoteStore) UpdateGuide(ctx context.Context, id string, patch domain.GuidePatch) domain.Result[domain.GuideProfile] {
	if err := patch.Validate(); err != nil {
		return domain.Fail[domain.GuideProfile](err)
	}
	if err := s.usable("update guide"); err != nil {
		return domain.Fail[domain.GuideProfile](err)
	}

	now := s.now()
	g, err := s.guides.Update(ctx, id, func(g *domain.GuideProfile) error {
		if err := patch.ValidateAgainst(*g); err != nil {
			return err
		}
		patch.Apply(g, now)
		return nil
	})
	if err != nil {
		s.logFailure(err, "update guide")
		return domain.Fail[domain.GuideProfile](err)
	}
	s.publish(events.NewChange(events.EntityGuide, events.OpUpdate, id, now))
	return domain.OKWithMessage(*g, "Guide profile updated successfully")
}

func (s *RemoteStore) DeleteGuide(ctx context.Context, id string) domain.Result[bool] {
	if err := s.usable("delete guide"); err != nil {
		return domain.Fail[bool](err)
	}
	if err := s.guides.Delete(ctx, id); err != nil {
		s.logFailure(err, "delete guide")
		return domain.Fail[bool](err)
	}
	s.publish(events.NewChange(events.EntityGuide, events.OpDelete, id, s.now()))
	return domain.OKWithMessage(true, "Guide deleted successfully")
}

// SearchGuides runs the predicates in SQL. Label matches are re-checked in
// process since the sqlite form is a substring approximation. An explicit sort
// key reorders the rating-ordered rows.
func (s *RemoteStore) SearchGuides(ctx context.Context, q search.Query) domain.Result[[]domain.GuideProfile] {
	if err := s.usable("search guides"); err != nil {
		return domain.Fail[[]domain.GuideProfile](err)
	}
	rows, err := s.guides.Search(ctx, q)
	if err != nil {
		s.logFailure(err, "search guides")
		return domain.Fail[[]domain.GuideProfile](err)
	}

	recheck := search.Query{Languages: q.Languages, Specializations: q.Specializations, Sort: q.Sort}
	return domain.OK(search.Apply(rows, recheck))
}

func (s *RemoteStore) CreateReview(ctx context.Context, in domain.ReviewInput) domain.Result[domain.Review] {
	if err := in.Validate(); err != nil {
		return domain.Fail[domain.Review](err)
	}
	if err := s.usable("create review"); err != nil {
		return domain.Fail[domain.Review](err)
	}

	now := s.now()
	rv := domain.NewReview(in, s.newID(), now)
	if _, err := s.reviews.CreateAndRecompute(ctx, &rv); err != nil {
		s.logFailure(err, "create review")
		return domain.Fail[domain.Review](err)
	}
	s.publish(
		events.NewChange(events.EntityReview, events.OpCreate, rv.ID, now),
		events.NewChange(events.EntityGuide, events.OpUpdate, rv.GuideID, now),
	)
	return domain.OKWithMessage(rv, "Review created successfully")
}

func (s *RemoteStore) GetReviewsByGuideID(ctx context.Context, guideID string) domain.Result[[]domain.Review] {
	if err := s.usable("list reviews"); err != nil {
		return domain.Fail[[]domain.Review](err)
	}
	list, err := s.reviews.ListByGuide(ctx, guideID)
	if err != nil {
		return domain.Fail[[]domain.Review](err)
	}
	return domain.OK(list)
}

// Stats has no bookings to count; they only exist in the local document.
func (s *RemoteStore) Stats(ctx context.Context) domain.Result[stats.Summary] {
	if err := s.usable("stats"); err != nil {
		return domain.Fail[stats.Summary](err)
	}
	list, err := s.guides.List(ctx)
	if err != nil {
		return domain.Fail[stats.Summary](err)
	}
	n, err := s.reviews.Count(ctx)
	if err != nil {
		return domain.Fail[stats.Summary](err)
	}
	return domain.OK(stats.Compute(list, int(n), 0, s.now()))
}

func (s *RemoteStore) Clear(ctx context.Context) domain.Result[int] {
	if err := s.usable("clear"); err != nil {
		return domain.Fail[int](err)
	}
	n, err := s.guides.DeleteAll(ctx)
	if err != nil {
		s.logFailure(err, "clear")
		return domain.Fail[int](err)
	}
	s.publish(events.NewChange(events.EntityDatabase, events.OpClear, "", s.now()))
	return domain.OKWithMessage(int(n), "Database cleared")
}

func (s *RemoteStore) usable(op string) error {
	if s.reason == nil {
		return nil
	}
	if errors.Is(s.reason, domain.ErrStoreUnavailable) {
		return s.reason
	}
	return domain.Unavailable(op, s.reason)
}

func (s *RemoteStore) publish(evs ...events.ChangeEvent) {
	for _, ev := range evs {
		ev.Source = RemoteSourceName
		s.notifier.Publish(ev)
	}
}

// logFailure records store outages; business failures are the caller's concern.
func (s *RemoteStore) logFailure(err error, op string) {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		s.log.Error().Err(err).Str("op", op).Msg("remote store operation failed")
	}
}
