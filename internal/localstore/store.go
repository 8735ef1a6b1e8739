package localstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"guidemarket/internal/domain"
	"guidemarket/internal/events"
	"guidemarket/internal/localstore/region"
	"guidemarket/internal/search"
	"guidemarket/internal/stats"
)

// SourceName identifies this store in health output and change events.
const SourceName = "local"

// Store keeps the whole catalog in one document inside a Region. Every
// read-modify-write holds mu, and a mutation only becomes visible after the
// region accepted the new document.
type Store struct {
	mu  sync.Mutex
	doc *Document

	region   region.Region
	notifier *events.Notifier
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

type Option func(*Store)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithNotifier shares a notifier with other stores so one feed sees every change.
func WithNotifier(n *events.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func New(r region.Region, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		region: r,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = events.NewNotifier(log)
	}
	return s
}

func (s *Store) Source() string { return SourceName }

// Subscribe registers fn for change events emitted after each successful mutation.
func (s *Store) Subscribe(fn events.Listener) (unsubscribe func()) {
	return s.notifier.Subscribe(fn)
}

func (s *Store) Close() error {
	return s.region.Close()
}

// Ping loads the document, which is the only way to learn the region is readable.
func (s *Store) Ping(ctx context.Context) error {
	return s.read(ctx, func(*Document) {})
}

func (s *Store) GetAllGuides(ctx context.Context) domain.Result[[]domain.GuideProfile] {
	var out []domain.GuideProfile
	err := s.read(ctx, func(doc *Document) {
		out = domain.CloneGuides(doc.Guides)
	})
	if err != nil {
		return domain.Fail[[]domain.GuideProfile](err)
	}
	return domain.OK(out)
}

func (s *Store) GetGuideByID(ctx context.Context, id string) domain.Result[domain.GuideProfile] {
	var (
		out   domain.GuideProfile
		found bool
	)
	err := s.read(ctx, func(doc *Document) {
		if i := doc.guideIndex(id); i >= 0 {
			out, found = doc.Guides[i].Clone(), true
		}
	})
	if err != nil {
		return domain.Fail[domain.GuideProfile](err)
	}
	if !found {
		return domain.Fail[domain.GuideProfile](domain.NotFound("guide", id))
	}
	return domain.OK(out)
}

func (s *Store) CreateGuide(ctx context.Context, in domain.GuideInput) domain.Result[domain.GuideProfile] {
	if err := in.Validate(); err != nil {
		return domain.Fail[domain.GuideProfile](err)
	}

	var created domain.GuideProfile
	err := s.mutate(ctx, func(doc *Document, now time.Time) ([]events.ChangeEvent, error) {
		id := in.ID
		if id == "" {
			id = s.newID()
		} else if doc.guideIndex(id) >= 0 {
			return nil, fmt.Errorf("guide id %q already exists: %w", id, domain.ErrValidation)
		}
		g := domain.NewGuide(in, id, now)
		if doc.emailTaken(g.Email, "") {
			return nil, domain.ErrDuplicateEmail
		}
		doc.Guides = append(doc.Guides, g)
		created = g.Clone()
		return []events.ChangeEvent{events.NewChange(events.EntityGuide, events.OpCreate, id, now)}, nil
	})
	if err != nil {
		return domain.Fail[domain.GuideProfile](err)
	}
	return domain.OKWithMessage(created, "Guide profile created successfully")
}

func (s *Store) UpdateGuide(ctx context.Context, id string, patch domain.GuidePatch) domain.Result[domain.GuideProfile] {
	if err := patch.Validate(); err != nil {
		return domain.Fail[domain.GuideProfile](err)
	}

	var updated domain.GuideProfile
	err := s.mutate(ctx, func(doc *Document, now time.Time) ([]events.ChangeEvent, error) {
		i := doc.guideIndex(id)
		if i < 0 {
			return nil, domain.NotFound("guide", id)
		}
		if patch.ChangesEmail(doc.Guides[i]) && doc.emailTaken(domain.NormalizeEmail(*patch.Email), id) {
			return nil, domain.ErrDuplicateEmail
		}
		if err := patch.ValidateAgainst(doc.Guides[i]); err != nil {
			return nil, err
		}
		patch.Apply(&doc.Guides[i], now)
		updated = doc.Guides[i].Clone()
		return []events.ChangeEvent{events.NewChange(events.EntityGuide, events.OpUpdate, id, now)}, nil
	})
	if err != nil {
		return domain.Fail[domain.GuideProfile](err)
	}
	return domain.OKWithMessage(updated, "Guide profile updated successfully")
}

// DeleteGuide removes the guide and every review written for it.
func (s *Store) DeleteGuide(ctx context.Context, id string) domain.Result[bool] {
	err := s.mutate(ctx, func(doc *Document, now time.Time) ([]events.ChangeEvent, error) {
		i := doc.guideIndex(id)
		if i < 0 {
			return nil, domain.NotFound("guide", id)
		}
		doc.Guides = append(doc.Guides[:i], doc.Guides[i+1:]...)

		kept := doc.Reviews[:0]
		for _, r := range doc.Reviews {
			if r.GuideID != id {
				kept = append(kept, r)
			}
		}
		doc.Reviews = kept
		return []events.ChangeEvent{events.NewChange(events.EntityGuide, events.OpDelete, id, now)}, nil
	})
	if err != nil {
		return domain.Fail[bool](err)
	}
	return domain.OKWithMessage(true, "Guide deleted successfully")
}

// SearchGuides filters in memory. Without an explicit sort the result is
// ordered by rating, like the remote store.
func (s *Store) SearchGuides(ctx context.Context, q search.Query) domain.Result[[]domain.GuideProfile] {
	if q.Sort == "" {
		q.Sort = search.SortRating
	}
	var out []domain.GuideProfile
	err := s.read(ctx, func(doc *Document) {
		out = search.Apply(doc.Guides, q)
	})
	if err != nil {
		return domain.Fail[[]domain.GuideProfile](err)
	}
	return domain.OK(out)
}

// CreateReview appends the review and recomputes the owning guide's rating
// and review count in the same document write. A review for an unknown guide
// is still stored; there is just nothing to recompute.
func (s *Store) CreateReview(ctx context.Context, in domain.ReviewInput) domain.Result[domain.Review] {
	if err := in.Validate(); err != nil {
		return domain.Fail[domain.Review](err)
	}

	var created domain.Review
	err := s.mutate(ctx, func(doc *Document, now time.Time) ([]events.ChangeEvent, error) {
		rv := domain.NewReview(in, s.newID(), now)
		doc.Reviews = append(doc.Reviews, rv)
		created = rv.Clone()

		evs := []events.ChangeEvent{events.NewChange(events.EntityReview, events.OpCreate, rv.ID, now)}
		if doc.recompute(rv.GuideID, now) {
			evs = append(evs, events.NewChange(events.EntityGuide, events.OpUpdate, rv.GuideID, now))
		} else {
			s.log.Warn().Str("guide_id", rv.GuideID).Msg("review stored for unknown guide")
		}
		return evs, nil
	})
	if err != nil {
		return domain.Fail[domain.Review](err)
	}
	return domain.OKWithMessage(created, "Review created successfully")
}

// GetReviewsByGuideID returns the guide's reviews in insertion order.
func (s *Store) GetReviewsByGuideID(ctx context.Context, guideID string) domain.Result[[]domain.Review] {
	out := make([]domain.Review, 0)
	err := s.read(ctx, func(doc *Document) {
		for _, r := range doc.Reviews {
			if r.GuideID == guideID {
				out = append(out, r.Clone())
			}
		}
	})
	if err != nil {
		return domain.Fail[[]domain.Review](err)
	}
	return domain.OK(out)
}

func (s *Store) CreateBooking(ctx context.Context, in domain.BookingInput) domain.Result[domain.Booking] {
	if err := in.Validate(); err != nil {
		return domain.Fail[domain.Booking](err)
	}

	var created domain.Booking
	err := s.mutate(ctx, func(doc *Document, now time.Time) ([]events.ChangeEvent, error) {
		created = domain.NewBooking(in, s.newID(), now)
		doc.Bookings = append(doc.Bookings, created)
		return []events.ChangeEvent{events.NewChange(events.EntityBooking, events.OpCreate, created.ID, now)}, nil
	})
	if err != nil {
		return domain.Fail[domain.Booking](err)
	}
	return domain.OKWithMessage(created, "Booking created successfully")
}

func (s *Store) GetBookingsByGuideID(ctx context.Context, guideID string) domain.Result[[]domain.Booking] {
	out := make([]domain.Booking, 0)
	err := s.read(ctx, func(doc *Document) {
		for _, b := range doc.Bookings {
			if b.GuideID == guideID {
				out = append(out, b)
			}
		}
	})
	if err != nil {
		return domain.Fail[[]domain.Booking](err)
	}
	return domain.OK(out)
}

func (s *Store) Stats(ctx context.Context) domain.Result[stats.Summary] {
	var sum stats.Summary
	err := s.read(ctx, func(doc *Document) {
		sum = stats.Compute(doc.Guides, len(doc.Reviews), len(doc.Bookings), s.now())
		if !doc.LastUpdated.IsZero() {
			sum.LastUpdated = doc.LastUpdated
		}
	})
	if err != nil {
		return domain.Fail[stats.Summary](err)
	}
	return domain.OK(sum)
}

// Export returns a copy of the whole document.
func (s *Store) Export(ctx context.Context) domain.Result[Document] {
	var out Document
	err := s.read(ctx, func(doc *Document) {
		out = *doc.clone()
	})
	if err != nil {
		return domain.Fail[Document](err)
	}
	return domain.OK(out)
}

// Import replaces the document wholesale. Reputation fields are taken as
// given; combined fields are re-derived.
func (s *Store) Import(ctx context.Context, in Document) domain.Result[int] {
	next, err := prepareImport(in)
	if err != nil {
		return domain.Fail[int](err)
	}

	err = s.mutate(ctx, func(doc *Document, now time.Time) ([]events.ChangeEvent, error) {
		*doc = *next
		return []events.ChangeEvent{events.NewChange(events.EntityDatabase, events.OpImport, "", now)}, nil
	})
	if err != nil {
		return domain.Fail[int](err)
	}
	return domain.OKWithMessage(len(next.Guides), "Database imported successfully")
}

// Clear drops the stored document and reports how many guides it held.
func (s *Store) Clear(ctx context.Context) domain.Result[int] {
	removed, err := s.clear(ctx)
	if err != nil {
		return domain.Fail[int](err)
	}
	s.publish(events.NewChange(events.EntityDatabase, events.OpClear, "", s.now()))
	return domain.OKWithMessage(removed, "Database cleared")
}

func (s *Store) clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.region.Delete(ctx, DocumentKey); err != nil {
		return 0, domain.Unavailable("clear local store", err)
	}
	s.doc = emptyDocument(s.now())
	return len(cur.Guides), nil
}

func (s *Store) read(ctx context.Context, fn func(doc *Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	fn(doc)
	return nil
}

type mutation func(doc *Document, now time.Time) ([]events.ChangeEvent, error)

// mutate applies fn to a copy of the document, writes it and only then swaps
// it in. Events go out after the lock is released.
func (s *Store) mutate(ctx context.Context, fn mutation) error {
	evs, err := s.commit(ctx, fn)
	if err != nil {
		return err
	}
	s.publish(evs...)
	return nil
}

func (s *Store) publish(evs ...events.ChangeEvent) {
	for _, ev := range evs {
		ev.Source = SourceName
		s.notifier.Publish(ev)
	}
}

func (s *Store) commit(ctx context.Context, fn mutation) ([]events.ChangeEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	next := cur.clone()
	evs, err := fn(next, now)
	if err != nil {
		return nil, err
	}
	next.LastUpdated = now

	raw, err := next.encode()
	if err != nil {
		return nil, fmt.Errorf("encode local store: %w", err)
	}
	if err := s.region.Put(ctx, DocumentKey, raw); err != nil {
		return nil, domain.Unavailable("write local store", err)
	}
	s.doc = next
	return evs, nil
}

// load returns the cached document, reading the region on first use. Callers
// hold mu.
func (s *Store) load(ctx context.Context) (*Document, error) {
	if s.doc != nil {
		return s.doc, nil
	}

	raw, err := s.region.Get(ctx, DocumentKey)
	switch {
	case errors.Is(err, region.ErrNotFound):
		s.doc = emptyDocument(s.now())
		return s.doc, nil
	case err != nil:
		return nil, domain.Unavailable("read local store", err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("key", DocumentKey).Msg("local store document is corrupt, starting empty")
		doc = emptyDocument(s.now())
	}
	s.doc = doc
	return s.doc, nil
}
