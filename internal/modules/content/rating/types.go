package rating

import (
	"errors"

	"github.com/lensframe/studio-core/internal/models"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrTokenNotFound      = errors.New("rating link not found")
	ErrTokenUsed          = errors.New("rating link already used")
	ErrRatingNotFound     = errors.New("rating not found")
	ErrInvalidScore       = errors.New("overall rating must be between 1 and 5")
	ErrMissingClient      = errors.New("client name is required")
	ErrMissingTestimonial = errors.New("testimonial is required")
	ErrInvalidStatus      = errors.New("status must be approved")
	ErrMailUnconfigured   = errors.New("mail delivery is not configured")
)

// SubmitDTO is the public one-time submission payload.
type SubmitDTO struct {
	Token           string `json:"token" binding:"required"`
	OverallRating   int    `json:"overall_rating" binding:"required"`
	Communication   int    `json:"communication"`
	Quality         int    `json:"quality"`
	Timeliness      int    `json:"timeliness"`
	Professionalism int    `json:"professionalism"`
	Testimonial     string `json:"testimonial"`
	ClientName      string `json:"client_name" binding:"required"`
	ClientCompany   string `json:"client_company"`
}

// BulkStatusDTO moves a set of submitted ratings to approved.
type BulkStatusDTO struct {
	IDs    []string `json:"ids" binding:"required,min=1"`
	Status string   `json:"status" binding:"required"`
}

type BulkDeleteDTO struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

type SendLinkDTO struct {
	To string `json:"to" binding:"required,email"`
}

// IssueResult is returned when a rating link is created or re-fetched.
type IssueResult struct {
	Rating *models.RatingModel `json:"rating"`
	URL    string              `json:"url"`
	Reused bool                `json:"reused"`
}

// TokenLookup is the public view behind a rating link. Nothing beyond the
// project title and workflow state leaks out.
type TokenLookup struct {
	ProjectTitle string              `json:"project_title"`
	Status       models.RatingStatus `json:"status"`
}

// BulkResult reports how many rows a bulk operation touched.
type BulkResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}
