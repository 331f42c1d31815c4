package project

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lensframe/studio-core/internal/pkg/pagination"
	"github.com/lensframe/studio-core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := rg.Group("/projects")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)

		group.POST("", authMW, h.Create)
		group.PUT("/:id", authMW, h.Update)
		group.PATCH("/:id/featured", authMW, h.SetFeatured)
		group.DELETE("/:id", authMW, h.Delete)
	}
}

// GET /projects?kind=gallery&category=<id>&featured=true&year=2025
func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{CategoryID: c.Query("category")}

	if raw := c.Query("kind"); raw != "" {
		kind, err := parseKind(raw)
		if err != nil {
			response.BadRequest(c, ErrInvalidKind.Error())
			return
		}
		filter.Kind = kind
	}
	if raw := c.Query("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		filter.Featured = &featured
	}
	if raw := c.Query("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			filter.Year = year
		}
	}

	items, meta, err := h.service.List(pagination.FromContext(c), filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, meta)
}

// GET /projects/:id
func (h *Handler) Get(c *gin.Context) {
	row, err := h.service.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, row)
}

// POST /projects
func (h *Handler) Create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	row, err := h.service.Create(&dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, row)
}

// PUT /projects/:id
func (h *Handler) Update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	row, err := h.service.Update(c.Param("id"), &dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, row)
}

// PATCH /projects/:id/featured
func (h *Handler) SetFeatured(c *gin.Context) {
	var dto FeaturedDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	row, err := h.service.SetFeatured(c.Param("id"), dto.Featured)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, row)
}

// DELETE /projects/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFoundMsg(c, ErrNotFound.Error())
	case errors.Is(err, ErrInvalidKind), errors.Is(err, ErrTooManyTags):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, ErrUnknownCategory):
		response.UnprocessableEntity(c, ErrUnknownCategory.Error())
	default:
		response.InternalError(c, err)
	}
}
