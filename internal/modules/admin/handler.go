package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"guidemarket/internal/localstore"
	"guidemarket/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the database utilities under /admin. Every route
// goes through guard.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	admin := rg.Group("/admin", guard)
	{
		admin.POST("/clear", h.Clear)
		admin.GET("/export", h.Export)
		admin.POST("/import", h.Import)
		admin.POST("/seed", h.Seed)
	}
}

func (h *Handler) Clear(c *gin.Context) {
	response.Result(c, http.StatusOK, h.svc.Clear(c.Request.Context()))
}

func (h *Handler) Export(c *gin.Context) {
	res, err := h.svc.Export(c.Request.Context())
	if err != nil {
		writeUnsupported(c, err)
		return
	}
	response.Result(c, http.StatusOK, res)
}

func (h *Handler) Import(c *gin.Context) {
	var doc localstore.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.svc.Import(c.Request.Context(), doc)
	if err != nil {
		writeUnsupported(c, err)
		return
	}
	response.Result(c, http.StatusOK, res)
}

func (h *Handler) Seed(c *gin.Context) {
	response.Result(c, http.StatusOK, h.svc.Seed(c.Request.Context()))
}

func writeUnsupported(c *gin.Context, err error) {
	if errors.Is(err, ErrBackupUnsupported) {
		response.Error(c, http.StatusNotImplemented, err.Error())
		return
	}
	response.Error(c, http.StatusInternalServerError, err.Error())
}
