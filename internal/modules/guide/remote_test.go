package guide

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"guidemarket/internal/config"
	"guidemarket/internal/domain"
	"guidemarket/internal/events"
	"guidemarket/internal/fallback"
	"guidemarket/internal/search"
)

type MockGuideRepository struct {
	mock.Mock
}

func (m *MockGuideRepository) List(ctx context.Context) ([]domain.GuideProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuideProfile), args.Error(1)
}

func (m *MockGuideRepository) GetByID(ctx context.Context, id string) (*domain.GuideProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuideProfile), args.Error(1)
}

func (m *MockGuideRepository) Create(ctx context.Context, g *domain.GuideProfile) error {
	return m.Called(ctx, g).Error(0)
}

func (m *MockGuideRepository) Update(ctx context.Context, id string, fn func(g *domain.GuideProfile) error) (*domain.GuideProfile, error) {
	args := m.Called(ctx, id, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	g := args.Get(0).(*domain.GuideProfile)
	if err := fn(g); err != nil {
		return nil, err
	}
	return g, args.Error(1)
}

func (m *MockGuideRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGuideRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGuideRepository) Search(ctx context.Context, q search.Query) ([]domain.GuideProfile, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuideProfile), args.Error(1)
}

func (m *MockGuideRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateAndRecompute(ctx context.Context, rv *domain.Review) (*domain.GuideProfile, error) {
	args := m.Called(ctx, rv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuideProfile), args.Error(1)
}

func (m *MockReviewRepository) ListByGuide(ctx context.Context, guideID string) ([]domain.Review, error) {
	args := m.Called(ctx, guideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func fixedClock() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC) }

func newMockedStore() (*RemoteStore, *MockGuideRepository, *MockReviewRepository) {
	guides := new(MockGuideRepository)
	reviews := new(MockReviewRepository)
	return NewRemoteStore(guides, reviews, zerolog.Nop(), WithRemoteClock(fixedClock)), guides, reviews
}

func TestOpenRemoteStore_MissingKeyDegrades(t *testing.T) {
	ctx := context.Background()
	s := OpenRemoteStore(config.RemoteConfig{URL: "postgres://db.example.com/guides"}, zerolog.Nop())

	for i := 0; i < 2; i++ {
		res := s.GetAllGuides(ctx)
		require.True(t, res.Success)
		assert.NotEmpty(t, res.Warning)
		assert.Equal(t, fallback.Guides(), res.Data)
	}

	one := s.GetGuideByID(ctx, "fallback-1")
	require.False(t, one.Success)
	assert.ErrorIs(t, one.Err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, one.Err, config.ErrRemoteNotConfigured)
	assert.Error(t, s.Ping(ctx))
}

func TestOpenRemoteStore_PlaceholderKeyDegrades(t *testing.T) {
	s := OpenRemoteStore(config.RemoteConfig{URL: "https://your-project-url.example", Key: "your-anon-key-here"}, zerolog.Nop())

	res := s.GetAllGuides(context.Background())

	require.True(t, res.Success)
	assert.Contains(t, res.Warning, fallback.WarnNotConfigured)
	assert.Len(t, res.Data, 6)
}

func TestOpenRemoteStore_SQLiteSchemaIsUsable(t *testing.T) {
	ctx := context.Background()
	s := OpenRemoteStore(config.RemoteConfig{URL: ":memory:", Key: "real-key"}, zerolog.Nop())
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Ping(ctx))

	created := s.CreateGuide(ctx, domain.GuideInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com", City: "London", Country: "UK",
		Languages: []string{"English", "French"}, PricePerHour: 50,
	})
	require.True(t, created.Success, created.Error)

	all := s.GetAllGuides(ctx)
	require.True(t, all.Success)
	assert.Empty(t, all.Warning)
	require.Len(t, all.Data, 1)
	assert.Equal(t, []string{"English", "French"}, all.Data[0].Languages)

	found := s.SearchGuides(ctx, search.Query{Languages: []string{"french"}})
	require.True(t, found.Success, found.Error)
	assert.Len(t, found.Data, 1)
}

func TestRemoteStore_AllWritesFailWhenUnavailable(t *testing.T) {
	ctx := context.Background()
	s := NewUnavailableRemoteStore(fmt.Errorf("%w: REMOTE_STORE_KEY is empty", config.ErrRemoteNotConfigured), zerolog.Nop())

	in := domain.GuideInput{FirstName: "Ada", Email: "ada@x.com", City: "London", Country: "UK", PricePerHour: 50}
	assert.ErrorIs(t, s.CreateGuide(ctx, in).Err, domain.ErrStoreUnavailable)
	city := "Paris"
	assert.ErrorIs(t, s.UpdateGuide(ctx, "x", domain.GuidePatch{City: &city}).Err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, s.DeleteGuide(ctx, "x").Err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, s.SearchGuides(ctx, search.Query{}).Err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, s.CreateReview(ctx, domain.ReviewInput{GuideID: "x", Rating: 3}).Err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, s.GetReviewsByGuideID(ctx, "x").Err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, s.Clear(ctx).Err, domain.ErrStoreUnavailable)
}

func TestRemoteStore_GetAllGuides(t *testing.T) {
	ctx := context.Background()

	t.Run("rows", func(t *testing.T) {
		s, guides, _ := newMockedStore()
		rows := []domain.GuideProfile{{ID: "g1", Name: "A"}}
		guides.On("List", ctx).Return(rows, nil)

		res := s.GetAllGuides(ctx)

		require.True(t, res.Success)
		assert.Empty(t, res.Warning)
		assert.Equal(t, rows, res.Data)
	})

	t.Run("query error", func(t *testing.T) {
		s, guides, _ := newMockedStore()
		guides.On("List", ctx).Return(nil, domain.Unavailable("list guides", errors.New("relation \"guides\" does not exist")))

		res := s.GetAllGuides(ctx)

		require.True(t, res.Success)
		assert.Contains(t, res.Warning, fallback.WarnUnavailable)
		assert.Equal(t, fallback.IDs(), ids(res.Data))
	})

	t.Run("empty table", func(t *testing.T) {
		s, guides, _ := newMockedStore()
		guides.On("List", ctx).Return([]domain.GuideProfile{}, nil)

		res := s.GetAllGuides(ctx)

		require.True(t, res.Success)
		assert.Equal(t, fallback.WarnEmpty, res.Warning)
		assert.Len(t, res.Data, 6)
	})
}

func TestRemoteStore_GetGuideByIDNotFound(t *testing.T) {
	ctx := context.Background()
	s, guides, _ := newMockedStore()
	guides.On("GetByID", ctx, "nope").Return(nil, domain.NotFound("guide", "nope"))

	res := s.GetGuideByID(ctx, "nope")

	require.False(t, res.Success)
	assert.ErrorIs(t, res.Err, domain.ErrNotFound)
	assert.Contains(t, res.Error, "not found")
}

func TestRemoteStore_CreateGuide(t *testing.T) {
	ctx := context.Background()
	s, guides, _ := newMockedStore()
	var published []events.ChangeEvent
	s.Subscribe(func(ev events.ChangeEvent) { published = append(published, ev) })

	guides.On("Create", ctx, mock.MatchedBy(func(g *domain.GuideProfile) bool {
		return g.Name == "Ada Lovelace" && g.Location == "London, UK" && g.ID != ""
	})).Return(nil).Once()

	res := s.CreateGuide(ctx, domain.GuideInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com", City: "London", Country: "UK", PricePerHour: 50,
	})

	require.True(t, res.Success, res.Error)
	assert.Equal(t, 5.0, res.Data.Rating)
	assert.Equal(t, fixedClock(), res.Data.CreatedAt)
	assert.Equal(t, "2025-06-01", res.Data.JoinDate)
	require.Len(t, published, 1)
	assert.Equal(t, RemoteSourceName, published[0].Source)
	guides.AssertExpectations(t)
}

func TestRemoteStore_CreateGuideValidationSkipsRepository(t *testing.T) {
	s, guides, _ := newMockedStore()

	res := s.CreateGuide(context.Background(), domain.GuideInput{FirstName: "Ada", Email: "not-an-email"})

	require.False(t, res.Success)
	assert.ErrorIs(t, res.Err, domain.ErrValidation)
	guides.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRemoteStore_CreateGuideDuplicate(t *testing.T) {
	ctx := context.Background()
	s, guides, _ := newMockedStore()
	guides.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicateEmail)

	res := s.CreateGuide(ctx, domain.GuideInput{FirstName: "Ada", Email: "ada@x.com", City: "London", Country: "UK", PricePerHour: 50})

	require.False(t, res.Success)
	assert.ErrorIs(t, res.Err, domain.ErrDuplicateEmail)
}

func TestRemoteStore_UpdateGuideRederives(t *testing.T) {
	ctx := context.Background()
	s, guides, _ := newMockedStore()
	stored := &domain.GuideProfile{ID: "g1", FirstName: "Ada", LastName: "Lovelace", City: "London", Country: "UK"}
	stored.Derive()
	guides.On("Update", ctx, "g1", mock.Anything).Return(stored, nil)

	first := "Augusta"
	res := s.UpdateGuide(ctx, "g1", domain.GuidePatch{FirstName: &first})

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Augusta Lovelace", res.Data.Name)
	assert.Equal(t, fixedClock(), res.Data.UpdatedAt)
}

func TestRemoteStore_UpdateGuideKeepsRequiredFields(t *testing.T) {
	ctx := context.Background()
	s, guides, _ := newMockedStore()
	stored := &domain.GuideProfile{ID: "g1", FirstName: "Ada", City: "London", Country: "UK"}
	stored.Derive()
	guides.On("Update", ctx, "g1", mock.Anything).Return(stored, nil).Once()

	blank := ""
	res := s.UpdateGuide(ctx, "g1", domain.GuidePatch{FirstName: &blank})
	require.False(t, res.Success)
	assert.ErrorIs(t, res.Err, domain.ErrValidation)
	assert.Equal(t, "Ada", stored.Name)

	res = s.UpdateGuide(ctx, "g1", domain.GuidePatch{City: &blank})
	require.False(t, res.Success)
	assert.ErrorIs(t, res.Err, domain.ErrValidation)
	guides.AssertNumberOfCalls(t, "Update", 1)
}

func TestRemoteStore_SearchRechecksLabelsAndSorts(t *testing.T) {
	ctx := context.Background()
	s, guides, _ := newMockedStore()
	q := search.Query{Languages: []string{"English"}, Sort: search.SortPriceLow}
	guides.On("Search", ctx, q).Return([]domain.GuideProfile{
		{ID: "a", Languages: []string{"English"}, PricePerHour: 60, Rating: 5},
		{ID: "b", Languages: []string{"Englishman"}, PricePerHour: 10, Rating: 4.9},
		{ID: "c", Languages: []string{"english"}, PricePerHour: 30, Rating: 4.1},
	}, nil)

	res := s.SearchGuides(ctx, q)

	require.True(t, res.Success)
	assert.Equal(t, []string{"c", "a"}, ids(res.Data))
}

func TestRemoteStore_CreateReview(t *testing.T) {
	ctx := context.Background()
	s, _, reviews := newMockedStore()
	var published []events.ChangeEvent
	s.Subscribe(func(ev events.ChangeEvent) { published = append(published, ev) })
	reviews.On("CreateAndRecompute", ctx, mock.AnythingOfType("*domain.Review")).
		Return(&domain.GuideProfile{ID: "g1", Rating: 4.5, ReviewCount: 2}, nil)

	res := s.CreateReview(ctx, domain.ReviewInput{GuideID: "g1", Rating: 4})

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "2025-06-01", res.Data.Date)
	require.Len(t, published, 2)
	assert.Equal(t, events.EntityReview, published[0].Entity)
	assert.Equal(t, events.EntityGuide, published[1].Entity)
}

func TestRemoteStore_Stats(t *testing.T) {
	ctx := context.Background()
	s, guides, reviews := newMockedStore()
	guides.On("List", ctx).Return([]domain.GuideProfile{{City: "Rome", Rating: 4}, {City: "Rome", Rating: 5}}, nil)
	reviews.On("Count", ctx).Return(int64(9), nil)

	res := s.Stats(ctx)

	require.True(t, res.Success)
	assert.Equal(t, 2, res.Data.TotalGuides)
	assert.Equal(t, 9, res.Data.TotalReviews)
	assert.Equal(t, map[string]int{"Rome": 2}, res.Data.ByCity)
	assert.Equal(t, 4.5, res.Data.AverageRating)
}

func ids(gs []domain.GuideProfile) []string {
	out := make([]string, 0, len(gs))
	for _, g := range gs {
		out = append(out, g.ID)
	}
	return out
}
