package project

import (
	"errors"

	"github.com/lensframe/studio-core/internal/models"
)

var (
	ErrNotFound        = errors.New("project not found")
	ErrInvalidKind     = errors.New("kind must be gallery or portfolio")
	ErrTooManyTags     = errors.New("at most 3 tags per project")
	ErrUnknownCategory = errors.New("category not found")
)

type CreateDTO struct {
	Title       string       `json:"title" binding:"required"`
	Kind        string       `json:"kind" binding:"required"`
	CategoryID  *string      `json:"category_id"`
	Media       models.Media `json:"media"`
	Description string       `json:"description"`
	Year        int          `json:"year"`
	Tags        []string     `json:"tags"`
	Featured    bool         `json:"featured"`
}

// UpdateDTO uses pointers so absent fields stay untouched.
type UpdateDTO struct {
	Title       *string       `json:"title"`
	Kind        *string       `json:"kind"`
	CategoryID  *string       `json:"category_id"`
	Media       *models.Media `json:"media"`
	Description *string       `json:"description"`
	Year        *int          `json:"year"`
	Tags        *[]string     `json:"tags"`
	Featured    *bool         `json:"featured"`
}

type FeaturedDTO struct {
	Featured bool `json:"featured"`
}

// ListFilter narrows the public and admin project listings.
type ListFilter struct {
	Kind       models.CategoryKind
	CategoryID string
	Featured   *bool
	Year       int
}
