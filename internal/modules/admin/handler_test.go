package admin

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

	"guidemarket/internal/localstore"
	"guidemarket/internal/localstore/region"
	"guidemarket/internal/middleware"
)

const testToken = "test-admin-token"

func setupRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewService(store, zerolog.Nop())).
		RegisterRoutes(router.Group("/api/v1"), middleware.AdminToken(testToken, zerolog.Nop()))
	return router
}

func call(router *gin.Engine, method, path string, body []byte, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_RequiresToken(t *testing.T) {
	router := setupRouter(localstore.New(region.NewMemory(), zerolog.Nop()))

	assert.Equal(t, http.StatusUnauthorized, call(router, http.MethodPost, "/api/v1/admin/clear", nil, "").Code)
	assert.Equal(t, http.StatusForbidden, call(router, http.MethodPost, "/api/v1/admin/clear", nil, "wrong").Code)
}

func TestHandler_SeedExportClear(t *testing.T) {
	store := localstore.New(region.NewMemory(), zerolog.Nop())
	router := setupRouter(store)

	w := call(router, http.MethodPost, "/api/v1/admin/seed", nil, testToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(router, http.MethodGet, "/api/v1/admin/export", nil, testToken)
	require.Equal(t, http.StatusOK, w.Code)
	var exported struct {
		Success bool                `json:"success"`
		Data    localstore.Document `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exported))
	assert.NotEmpty(t, exported.Data.Guides)
	assert.NotEmpty(t, exported.Data.Reviews)

	w = call(router, http.MethodPost, "/api/v1/admin/clear", nil, testToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":7`)

	raw, err := json.Marshal(exported.Data)
	require.NoError(t, err)
	w = call(router, http.MethodPost, "/api/v1/admin/import", raw, testToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, store.GetAllGuides(t.Context()).Data, len(exported.Data.Guides))
}

func TestHandler_ExportOnRemoteIsNotImplemented(t *testing.T) {
	router := setupRouter(new(MockStore))

	w := call(router, http.MethodGet, "/api/v1/admin/export", nil, testToken)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestHandler_ImportRejectsBadBody(t *testing.T) {
	router := setupRouter(localstore.New(region.NewMemory(), zerolog.Nop()))

	w := call(router, http.MethodPost, "/api/v1/admin/import", []byte("{not json"), testToken)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
