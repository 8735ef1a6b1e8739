package guide

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guidemarket/internal/domain"
	"guidemarket/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the catalog endpoints. Deleting a guide goes through
// adminOnly.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	guides := rg.Group("/guides")
	{
		guides.GET("", h.List)
		guides.GET("/search", h.Search)
		guides.POST("", h.Create)
		guides.GET("/:id", h.Get)
		guides.PATCH("/:id", h.Update)
		guides.DELETE("/:id", adminOnly, h.Delete)
		guides.GET("/:id/reviews", h.ListReviews)
		guides.POST("/:id/reviews", h.CreateReview)
	}
	rg.GET("/stats", h.Stats)
}

// List returns the filtered catalog. It always answers 200; a degraded read
// carries a warning instead of an error.
func (h *Handler) List(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		response.Result(c, http.StatusOK, domain.Fail[[]domain.GuideProfile](err))
		return
	}
	response.Result(c, http.StatusOK, h.svc.ListGuides(c.Request.Context(), q))
}

// Search runs the filters against the store itself rather than in memory.
func (h *Handler) Search(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		response.Result(c, http.StatusOK, domain.Fail[[]domain.GuideProfile](err))
		return
	}
	response.Result(c, http.StatusOK, h.svc.SearchGuides(c.Request.Context(), q))
}

func (h *Handler) Get(c *gin.Context) {
	response.Result(c, http.StatusOK, h.svc.GetGuide(c.Request.Context(), c.Param("id")))
}

func (h *Handler) Create(c *gin.Context) {
	var in domain.GuideInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	response.Result(c, http.StatusCreated, h.svc.CreateGuide(c.Request.Context(), in))
}

func (h *Handler) Update(c *gin.Context) {
	var patch domain.GuidePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	response.Result(c, http.StatusOK, h.svc.UpdateGuide(c.Request.Context(), c.Param("id"), patch))
}

func (h *Handler) Delete(c *gin.Context) {
	response.Result(c, http.StatusOK, h.svc.DeleteGuide(c.Request.Context(), c.Param("id")))
}

func (h *Handler) ListReviews(c *gin.Context) {
	response.Result(c, http.StatusOK, h.svc.ListReviews(c.Request.Context(), c.Param("id")))
}

func (h *Handler) CreateReview(c *gin.Context) {
	var in domain.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	response.Result(c, http.StatusCreated, h.svc.AddReview(c.Request.Context(), c.Param("id"), in))
}

func (h *Handler) Stats(c *gin.Context) {
	response.Result(c, http.StatusOK, h.svc.Stats(c.Request.Context()))
}
