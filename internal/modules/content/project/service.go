package project

import (
	"errors"
	"strings"

	"github.com/lensframe/studio-core/internal/models"
	"github.com/lensframe/studio-core/internal/pkg/pagination"
	"github.com/lensframe/studio-core/internal/pkg/reconcile"
	"github.com/lensframe/studio-core/internal/pkg/response"
	"github.com/lensframe/studio-core/internal/pkg/sanitize"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func parseKind(raw string) (models.CategoryKind, error) {
	kind := models.CategoryKind(raw)
	if kind != models.KindGallery && kind != models.KindPortfolio {
		return "", ErrInvalidKind
	}
	return kind, nil
}

func normalizeTags(tags []string) ([]string, error) {
	cleaned := reconcile.NormalizeNames(tags, sanitize.Strip)
	if len(cleaned) > models.MaxProjectTags {
		return nil, ErrTooManyTags
	}
	return cleaned, nil
}

// resolveCategory verifies a category id exists and belongs to the kind.
func (s *Service) resolveCategory(id *string, kind models.CategoryKind) (*string, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, nil
	}
	var count int64
	err := s.db.Model(&models.CategoryModel{}).
		Where("id = ? AND kind = ?", *id, kind).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrUnknownCategory
	}
	return id, nil
}

func (s *Service) Create(dto *CreateDTO) (*models.ProjectModel, error) {
	kind, err := parseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	tags, err := normalizeTags(dto.Tags)
	if err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategory(dto.CategoryID, kind)
	if err != nil {
		return nil, err
	}

	row := models.ProjectModel{
		Title:       sanitize.Strip(dto.Title),
		Kind:        kind,
		CategoryID:  categoryID,
		Media:       dto.Media,
		Description: sanitize.Strip(dto.Description),
		Year:        dto.Year,
		Tags:        tags,
		Featured:    dto.Featured,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) Get(id string) (*models.ProjectModel, error) {
	var row models.ProjectModel
	err := s.db.Preload("Category").Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) List(q pagination.Query, filter ListFilter) ([]models.ProjectModel, response.Pagination, error) {
	query := s.db.Model(&models.ProjectModel{}).Preload("Category").Order("year DESC, created_at DESC")
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Year > 0 {
		query = query.Where("year = ?", filter.Year)
	}
	var out []models.ProjectModel
	meta, err := pagination.Paginate(query, q, &out)
	return out, meta, err
}

// Featured returns the featured projects for the public landing payload.
func (s *Service) Featured(limit int) ([]models.ProjectModel, error) {
	var out []models.ProjectModel
	q := s.db.Preload("Category").Where("featured = ?", true).Order("year DESC, created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return out, q.Find(&out).Error
}

func (s *Service) Update(id string, dto *UpdateDTO) (*models.ProjectModel, error) {
	row, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	kind := row.Kind
	if dto.Kind != nil {
		if kind, err = parseKind(*dto.Kind); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if dto.Kind != nil {
		updates["kind"] = kind
	}
	if dto.Title != nil {
		updates["title"] = sanitize.Strip(*dto.Title)
	}
	if dto.CategoryID != nil {
		categoryID, err := s.resolveCategory(dto.CategoryID, kind)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = categoryID
	}
	if dto.Media != nil {
		updates["media"] = *dto.Media
	}
	if dto.Description != nil {
		updates["description"] = sanitize.Strip(*dto.Description)
	}
	if dto.Year != nil {
		updates["year"] = *dto.Year
	}
	if dto.Tags != nil {
		tags, err := normalizeTags(*dto.Tags)
		if err != nil {
			return nil, err
		}
		updates["tags"] = models.StringArray(tags)
	}
	if dto.Featured != nil {
		updates["featured"] = *dto.Featured
	}

	if len(updates) > 0 {
		if err := s.db.Model(row).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s *Service) SetFeatured(id string, featured bool) (*models.ProjectModel, error) {
	res := s.db.Model(&models.ProjectModel{}).Where("id = ?", id).Update("featured", featured)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(id)
}

// Delete removes a project and its rating link, if one was issued.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Where("id = ?", id).Delete(&models.ProjectModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Unscoped().Where("project_id = ?", id).Delete(&models.RatingModel{}).Error
	})
}
