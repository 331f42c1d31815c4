package rating

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/lensframe/studio-core/internal/models"
	"github.com/lensframe/studio-core/internal/pkg/mailer"
	"github.com/lensframe/studio-core/internal/pkg/pagination"
	"github.com/lensframe/studio-core/internal/pkg/response"
)

type Handler struct {
	service   *Service
	mail      *mailer.Mailer
	siteTitle func() string
	rateMW    gin.HandlerFunc
}

// NewHandler wires the rating routes. rateMW throttles the public submit
// endpoint and may be nil.
func NewHandler(service *Service, mail *mailer.Mailer, siteTitle func() string, rateMW gin.HandlerFunc) *Handler {
	if rateMW == nil {
		rateMW = func(c *gin.Context) { c.Next() }
	}
	return &Handler{service: service, mail: mail, siteTitle: siteTitle, rateMW: rateMW}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := rg.Group("/ratings")
	{
		group.GET("/token/:token", h.Lookup)
		group.POST("/submit", h.rateMW, h.Submit)

		group.POST("/issue/:projectId", authMW, h.Issue)
		group.GET("", authMW, h.List)
		group.PATCH("/status", authMW, h.BulkStatus)
		group.DELETE("", authMW, h.BulkDelete)
		group.POST("/:id/send", authMW, h.SendLink)
	}
}

// GET /ratings/token/:token
func (h *Handler) Lookup(c *gin.Context) {
	lookup, err := h.service.LookupByToken(c.Param("token"))
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			response.NotFoundMsg(c, ErrTokenNotFound.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, lookup)
}

// POST /ratings/submit
func (h *Handler) Submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	err := h.service.Submit(&dto)
	switch {
	case err == nil:
		response.OK(c, gin.H{"message": "thank you for your feedback"})
	case errors.Is(err, ErrInvalidScore), errors.Is(err, ErrMissingClient), errors.Is(err, ErrMissingTestimonial):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, ErrTokenNotFound):
		response.NotFoundMsg(c, ErrTokenNotFound.Error())
	case errors.Is(err, ErrTokenUsed):
		response.Conflict(c, ErrTokenUsed.Error())
	default:
		response.InternalError(c, err)
	}
}

// POST /ratings/issue/:projectId
func (h *Handler) Issue(c *gin.Context) {
	result, err := h.service.IssueLink(c.Param("projectId"))
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			response.NotFoundMsg(c, ErrProjectNotFound.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if result.Reused {
		response.OK(c, result)
		return
	}
	response.Created(c, result)
}

// GET /ratings?status=submitted&page=1&size=10
func (h *Handler) List(c *gin.Context) {
	status := models.RatingStatus(c.Query("status"))
	switch status {
	case "", models.RatingPending, models.RatingSubmitted, models.RatingApproved:
	default:
		response.BadRequest(c, "unknown status filter")
		return
	}
	items, meta, err := h.service.List(pagination.FromContext(c), status)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, meta)
}

// PATCH /ratings/status
func (h *Handler) BulkStatus(c *gin.Context) {
	var dto BulkStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if models.RatingStatus(dto.Status) != models.RatingApproved {
		response.BadRequest(c, ErrInvalidStatus.Error())
		return
	}
	result, err := h.service.Approve(dto.IDs)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}

// DELETE /ratings
func (h *Handler) BulkDelete(c *gin.Context) {
	var dto BulkDeleteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	result, err := h.service.Reject(dto.IDs)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}

// POST /ratings/:id/send
func (h *Handler) SendLink(c *gin.Context) {
	var dto SendLinkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	row, err := h.service.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrRatingNotFound) {
			response.NotFoundMsg(c, ErrRatingNotFound.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	title := ""
	if row.Project != nil {
		title = row.Project.Title
	}
	body, err := mailer.RenderRatingLink(mailer.RatingLinkData{
		StudioName:   h.siteTitle(),
		ProjectTitle: title,
		Link:         h.service.LinkURL(row.Token),
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if err := h.mail.Send(dto.To, "We'd love your feedback", body); err != nil {
		if errors.Is(err, mailer.ErrMailDisabled) {
			response.UnprocessableEntity(c, ErrMailUnconfigured.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "rating link sent"})
}
