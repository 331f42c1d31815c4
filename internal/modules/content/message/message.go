// Package message handles the public contact form and the admin inbox.
package message

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/lensframe/studio-core/internal/models"
	"github.com/lensframe/studio-core/internal/pkg/pagination"
	"github.com/lensframe/studio-core/internal/pkg/response"
	"github.com/lensframe/studio-core/internal/pkg/sanitize"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("message not found")

type CreateDTO struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(dto *CreateDTO, ip string) (*models.MessageModel, error) {
	row := models.MessageModel{
		Name:    sanitize.Strip(dto.Name),
		Email:   sanitize.Strip(dto.Email),
		Phone:   sanitize.Strip(dto.Phone),
		Subject: sanitize.Strip(dto.Subject),
		Body:    sanitize.Strip(dto.Body),
		IP:      ip,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) List(q pagination.Query, read *bool) ([]models.MessageModel, response.Pagination, error) {
	query := s.db.Model(&models.MessageModel{}).Order("created_at DESC")
	if read != nil {
		query = query.Where("`read` = ?", *read)
	}
	var out []models.MessageModel
	meta, err := pagination.Paginate(query, q, &out)
	return out, meta, err
}

func (s *Service) MarkRead(id string) error {
	res := s.db.Model(&models.MessageModel{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(id string) error {
	res := s.db.Unscoped().Where("id = ?", id).Delete(&models.MessageModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type Handler struct {
	service *Service
	rateMW  gin.HandlerFunc
}

// NewHandler wires the message routes. rateMW throttles the public contact
// form and may be nil.
func NewHandler(service *Service, rateMW gin.HandlerFunc) *Handler {
	if rateMW == nil {
		rateMW = func(c *gin.Context) { c.Next() }
	}
	return &Handler{service: service, rateMW: rateMW}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := rg.Group("/messages")
	{
		group.POST("", h.rateMW, h.Create)

		group.GET("", authMW, h.List)
		group.PATCH("/:id/read", authMW, h.MarkRead)
		group.DELETE("/:id", authMW, h.Delete)
	}
}

// POST /messages
func (h *Handler) Create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if _, err := h.service.Create(&dto, c.ClientIP()); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"message": "message received"})
}

// GET /messages?read=false
func (h *Handler) List(c *gin.Context) {
	var read *bool
	if raw := c.Query("read"); raw != "" {
		v := raw == "true" || raw == "1"
		read = &v
	}
	items, meta, err := h.service.List(pagination.FromContext(c), read)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, meta)
}

// PATCH /messages/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, ErrNotFound.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "marked read"})
}

// DELETE /messages/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, ErrNotFound.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
