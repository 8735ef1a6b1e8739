package guide

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidemarket/internal/config"
	"guidemarket/internal/domain"
	"guidemarket/internal/fallback"
	"guidemarket/internal/localstore"
	"guidemarket/internal/localstore/region"
)

type envelope[T any] struct {
	Success bool              `json:"success"`
	Data    T                 `json:"data"`
	Error   string            `json:"error"`
	Warning string            `json:"warning"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func allowAll(c *gin.Context) { c.Next() }

func setupRouter(t *testing.T, store Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewHandler(NewService(store, zerolog.Nop()))
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), allowAll)
	return router
}

func localRouter(t *testing.T) *gin.Engine {
	return setupRouter(t, localstore.New(region.NewMemory(), zerolog.Nop()))
}

// remoteRouter runs the remote store against an in-memory sqlite database.
func remoteRouter(t *testing.T) *gin.Engine {
	s := OpenRemoteStore(config.RemoteConfig{URL: ":memory:", Key: "test-key"}, zerolog.Nop())
	require.NoError(t, s.Ping(t.Context()))
	t.Cleanup(func() { _ = s.Close() })
	return setupRouter(t, s)
}

func do[T any](t *testing.T, router *gin.Engine, method, path string, body any) (int, envelope[T]) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

var ada = map[string]any{
	"firstName":    "Ada",
	"lastName":     "Lovelace",
	"email":        "ada@x.com",
	"city":         "London",
	"country":      "UK",
	"pricePerHour": 50,
	"languages":    []string{"English"},
}

func eachStore(t *testing.T, fn func(t *testing.T, router *gin.Engine)) {
	t.Run("local", func(t *testing.T) { fn(t, localRouter(t)) })
	t.Run("remote", func(t *testing.T) { fn(t, remoteRouter(t)) })
}

func TestHandler_CreateGuideAndReviews(t *testing.T) {
	eachStore(t, func(t *testing.T, router *gin.Engine) {
		code, created := do[domain.GuideProfile](t, router, http.MethodPost, "/api/v1/guides", ada)
		require.Equal(t, http.StatusCreated, code, created.Error)
		assert.True(t, created.Success)
		assert.Equal(t, "Ada Lovelace", created.Data.Name)
		assert.Equal(t, "London, UK", created.Data.Location)
		assert.Equal(t, 5.0, created.Data.Rating)
		assert.Zero(t, created.Data.ReviewCount)

		id := created.Data.ID
		code, _ = do[domain.Review](t, router, http.MethodPost, "/api/v1/guides/"+id+"/reviews", map[string]any{"rating": 4})
		require.Equal(t, http.StatusCreated, code)
		code, _ = do[domain.Review](t, router, http.MethodPost, "/api/v1/guides/"+id+"/reviews", map[string]any{"rating": 5})
		require.Equal(t, http.StatusCreated, code)

		_, got := do[domain.GuideProfile](t, router, http.MethodGet, "/api/v1/guides/"+id, nil)
		assert.Equal(t, 4.5, got.Data.Rating)
		assert.Equal(t, 2, got.Data.ReviewCount)

		_, reviews := do[[]domain.Review](t, router, http.MethodGet, "/api/v1/guides/"+id+"/reviews", nil)
		assert.Len(t, reviews.Data, 2)
	})
}

func TestHandler_DuplicateEmail(t *testing.T) {
	eachStore(t, func(t *testing.T, router *gin.Engine) {
		code, _ := do[domain.GuideProfile](t, router, http.MethodPost, "/api/v1/guides", ada)
		require.Equal(t, http.StatusCreated, code)

		code, dup := do[domain.GuideProfile](t, router, http.MethodPost, "/api/v1/guides", ada)
		assert.Equal(t, http.StatusConflict, code)
		assert.False(t, dup.Success)
		assert.NotEmpty(t, dup.Error)

		_, st := do[map[string]any](t, router, http.MethodGet, "/api/v1/stats", nil)
		assert.EqualValues(t, 1, st.Data["totalGuides"])
	})
}

func TestHandler_ValidationError(t *testing.T) {
	router := localRouter(t)
	body := map[string]any{"firstName": "Ada", "email": "ada@x.com", "city": "London", "country": "UK"}

	code, res := do[domain.GuideProfile](t, router, http.MethodPost, "/api/v1/guides", body)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, res.Success)
	assert.Contains(t, res.Details, "pricePerHour")
}

func TestHandler_NotFound(t *testing.T) {
	eachStore(t, func(t *testing.T, router *gin.Engine) {
		code, res := do[domain.GuideProfile](t, router, http.MethodGet, "/api/v1/guides/missing", nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.False(t, res.Success)

		code, _ = do[bool](t, router, http.MethodDelete, "/api/v1/guides/missing", nil)
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestHandler_ListFiltersAndSorts(t *testing.T) {
	eachStore(t, func(t *testing.T, router *gin.Engine) {
		seed := []map[string]any{
			{"firstName": "A", "email": "a@x.com", "city": "Rome", "country": "Italy", "pricePerHour": 40, "languages": []string{"English"}},
			{"firstName": "B", "email": "b@x.com", "city": "Rome", "country": "Italy", "pricePerHour": 90, "languages": []string{"Italian"}},
			{"firstName": "C", "email": "c@x.com", "city": "Milan", "country": "Italy", "pricePerHour": 70, "languages": []string{"English", "Italian"}},
		}
		for _, g := range seed {
			code, res := do[domain.GuideProfile](t, router, http.MethodPost, "/api/v1/guides", g)
			require.Equal(t, http.StatusCreated, code, res.Error)
		}

		_, res := do[[]domain.GuideProfile](t, router, http.MethodGet, "/api/v1/guides?languages=English&sort=price-high", nil)
		require.True(t, res.Success)
		assert.Empty(t, res.Warning)
		assert.Equal(t, []string{"C", "A"}, names(res.Data))

		_, res = do[[]domain.GuideProfile](t, router, http.MethodGet, "/api/v1/guides/search?location=rome&maxPrice=50", nil)
		require.True(t, res.Success)
		assert.Equal(t, []string{"A"}, names(res.Data))
	})
}

func TestHandler_BadQuery(t *testing.T) {
	router := localRouter(t)

	code, res := do[[]domain.GuideProfile](t, router, http.MethodGet, "/api/v1/guides?sort=cheapest&minRating=abc", nil)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, res.Details, "sort")
	assert.Contains(t, res.Details, "minRating")
}

func TestHandler_EmptyLocalStoreServesFallback(t *testing.T) {
	router := localRouter(t)

	code, res := do[[]domain.GuideProfile](t, router, http.MethodGet, "/api/v1/guides", nil)

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, res.Success)
	assert.Equal(t, fallback.WarnEmpty, res.Warning)
	assert.Len(t, res.Data, 6)
}

func TestHandler_UnconfiguredRemoteDegrades(t *testing.T) {
	s := OpenRemoteStore(config.RemoteConfig{URL: "postgres://db.example.com/guides"}, zerolog.Nop())
	router := setupRouter(t, s)

	for i := 0; i < 2; i++ {
		code, res := do[[]domain.GuideProfile](t, router, http.MethodGet, "/api/v1/guides", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.True(t, res.Success)
		assert.NotEmpty(t, res.Warning)
		assert.Equal(t, fallback.IDs(), ids(res.Data))
	}

	code, res := do[domain.GuideProfile](t, router, http.MethodGet, "/api/v1/guides/fallback-1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, res.Success)
}

func TestHandler_PatchRederivesAndDeleteCascades(t *testing.T) {
	eachStore(t, func(t *testing.T, router *gin.Engine) {
		_, created := do[domain.GuideProfile](t, router, http.MethodPost, "/api/v1/guides", ada)
		id := created.Data.ID

		code, patched := do[domain.GuideProfile](t, router, http.MethodPatch, "/api/v1/guides/"+id,
			map[string]any{"city": "Bath", "rating": 1})
		require.Equal(t, http.StatusOK, code, patched.Error)
		assert.Equal(t, "Bath, UK", patched.Data.Location)
		assert.Equal(t, 5.0, patched.Data.Rating)

		do[domain.Review](t, router, http.MethodPost, "/api/v1/guides/"+id+"/reviews", map[string]any{"rating": 3})

		code, _ = do[bool](t, router, http.MethodDelete, "/api/v1/guides/"+id, nil)
		require.Equal(t, http.StatusOK, code)

		_, reviews := do[[]domain.Review](t, router, http.MethodGet, "/api/v1/guides/"+id+"/reviews", nil)
		assert.True(t, reviews.Success)
		assert.Empty(t, reviews.Data)
	})
}

func names(gs []domain.GuideProfile) []string {
	out := make([]string, 0, len(gs))
	for _, g := range gs {
		out = append(out, g.Name)
	}
	return out
}
