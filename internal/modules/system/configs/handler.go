package configs

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/lensframe/studio-core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := rg.Group("/configs", authMW)
	{
		group.GET("", h.Get)
		group.PATCH("", h.Patch)
	}
}

// GET /configs
func (h *Handler) Get(c *gin.Context) {
	cfg, err := h.service.Get()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cfg)
}

// PATCH /configs
func (h *Handler) Patch(c *gin.Context) {
	var partial map[string]json.RawMessage
	if err := c.ShouldBindJSON(&partial); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	cfg, err := h.service.Patch(partial)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cfg)
}
