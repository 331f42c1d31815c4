package taxonomy

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/lensframe/studio-core/internal/models"
	"github.com/lensframe/studio-core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/categories", h.ListCategories)
	rg.GET("/project-types", h.ListProjectTypes)
	rg.GET("/social-links", h.ListSocialLinks)

	rg.PUT("/categories/sync", authMW, h.SyncCategories)
	rg.PUT("/project-types/sync", authMW, h.SyncProjectTypes)
	rg.PUT("/social-links/sync", authMW, h.SyncSocialLinks)
}

// GET /categories?kind=gallery
func (h *Handler) ListCategories(c *gin.Context) {
	kind := models.CategoryKind(c.Query("kind"))
	if kind != "" && kind != models.KindGallery && kind != models.KindPortfolio {
		response.BadRequest(c, ErrInvalidKind.Error())
		return
	}
	items, err := h.service.ListCategories(kind)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

// GET /project-types
func (h *Handler) ListProjectTypes(c *gin.Context) {
	items, err := h.service.ListProjectTypes()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

// GET /social-links
func (h *Handler) ListSocialLinks(c *gin.Context) {
	items, err := h.service.ListSocialLinks()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

// PUT /categories/sync
func (h *Handler) SyncCategories(c *gin.Context) {
	var dto SyncCategoriesDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	result, err := h.service.SyncCategories(models.CategoryKind(dto.Kind), dto.Names)
	if err != nil {
		if errors.Is(err, ErrInvalidKind) {
			response.BadRequest(c, ErrInvalidKind.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}

// PUT /project-types/sync
func (h *Handler) SyncProjectTypes(c *gin.Context) {
	var dto SyncProjectTypesDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	result, err := h.service.SyncProjectTypes(dto.Names)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}

// PUT /social-links/sync
func (h *Handler) SyncSocialLinks(c *gin.Context) {
	var dto SyncSocialLinksDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	result, err := h.service.SyncSocialLinks(dto.Links)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}
