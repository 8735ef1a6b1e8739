package guide

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidemarket/internal/domain"
	"guidemarket/internal/fallback"
	"guidemarket/internal/localstore"
	"guidemarket/internal/localstore/region"
	"guidemarket/internal/search"
)

// brokenRegion fails every call.
type brokenRegion struct{}

var errDiskGone = errors.New("disk gone")

func (brokenRegion) Get(context.Context, string) ([]byte, error) { return nil, errDiskGone }
func (brokenRegion) Put(context.Context, string, []byte) error { return errDiskGone }
func (brokenRegion) Delete(context.Context, string) error { return errDiskGone }
func (brokenRegion) Close() error { return nil }

func TestService_ListGuides_FiltersFallbackWhenLocalIsEmpty(t *testing.T) {
	svc := NewService(localstore.New(region.NewMemory(), zerolog.Nop()), zerolog.Nop())

	res := svc.ListGuides(context.Background(), search.Query{
		Languages: []string{"French"},
		Sort:      search.SortPriceLow,
	})

	require.True(t, res.Success)
	assert.Equal(t, fallback.WarnEmpty, res.Warning)
	assert.Equal(t, []string{"fallback-1", "fallback-4"}, ids(res.Data))
}

func TestService_ListGuides_UnreadableLocalStore(t *testing.T) {
	svc := NewService(localstore.New(brokenRegion{}, zerolog.Nop()), zerolog.Nop())

	res := svc.ListGuides(context.Background(), search.Query{})

	require.True(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Warning, fallback.WarnUnavailable), res.Warning)
	assert.Contains(t, res.Warning, errDiskGone.Error())
	assert.Equal(t, fallback.IDs(), ids(res.Data))

	// writes still report the failure
	created := svc.CreateGuide(context.Background(), domain.GuideInput{
		FirstName: "Ada", Email: "ada@x.com", City: "London", Country: "UK", PricePerHour: 10,
	})
	assert.False(t, created.Success)
	assert.ErrorIs(t, created.Err, domain.ErrStoreUnavailable)
}

func TestService_ListGuides_RealDataHasNoWarning(t *testing.T) {
	ctx := context.Background()
	store := localstore.New(region.NewMemory(), zerolog.Nop())
	svc := NewService(store, zerolog.Nop())
	require.True(t, svc.CreateGuide(ctx, domain.GuideInput{
		FirstName: "Ada", Email: "ada@x.com", City: "London", Country: "UK", PricePerHour: 10,
	}).Success)

	res := svc.ListGuides(ctx, search.Query{Location: "paris"})

	require.True(t, res.Success)
	assert.Empty(t, res.Warning)
	assert.Empty(t, res.Data)
}

func TestService_AddReviewUsesPathID(t *testing.T) {
	ctx := context.Background()
	svc := NewService(localstore.New(region.NewMemory(), zerolog.Nop()), zerolog.Nop())
	g := svc.CreateGuide(ctx, domain.GuideInput{
		FirstName: "Ada", Email: "ada@x.com", City: "London", Country: "UK", PricePerHour: 10,
	})
	require.True(t, g.Success)

	rv := svc.AddReview(ctx, g.Data.ID, domain.ReviewInput{GuideID: "someone-else", Rating: 3})

	require.True(t, rv.Success)
	assert.Equal(t, g.Data.ID, rv.Data.GuideID)
	assert.Equal(t, 3.0, svc.GetGuide(ctx, g.Data.ID).Data.Rating)
}
