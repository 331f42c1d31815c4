package rating

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lensframe/studio-core/internal/models"
	"github.com/lensframe/studio-core/internal/pkg/pagination"
	"github.com/lensframe/studio-core/internal/pkg/response"
	"github.com/lensframe/studio-core/internal/pkg/sanitize"
	"gorm.io/gorm"
)

type Service struct {
	db        *gorm.DB
	publicURL string
}

// NewService builds the rating workflow service. publicURL is the site origin
// the client-facing rating links point at.
func NewService(db *gorm.DB, publicURL string) *Service {
	return &Service{db: db, publicURL: strings.TrimRight(publicURL, "/")}
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// LinkURL renders the public rating-form URL for a token.
func (s *Service) LinkURL(token string) string {
	return fmt.Sprintf("%s/rate/%s", s.publicURL, token)
}

// IssueLink creates the single rating link for a project, or returns the
// existing one. The unique index on project_id makes concurrent issuance
// safe: a losing insert re-reads the winner's row.
func (s *Service) IssueLink(projectID string) (*IssueResult, error) {
	var project models.ProjectModel
	err := s.db.Where("id = ?", projectID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	var existing models.RatingModel
	err = s.db.Where("project_id = ?", projectID).First(&existing).Error
	if err == nil {
		existing.Project = &project
		return &IssueResult{Rating: &existing, URL: s.LinkURL(existing.Token), Reused: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	row := models.RatingModel{
		ProjectID: projectID,
		Token:     token,
		Status:    models.RatingPending,
	}
	if err := s.db.Create(&row).Error; err != nil {
		// Another request inserted first; its row is the link.
		var winner models.RatingModel
		if rerr := s.db.Where("project_id = ?", projectID).First(&winner).Error; rerr == nil {
			winner.Project = &project
			return &IssueResult{Rating: &winner, URL: s.LinkURL(winner.Token), Reused: true}, nil
		}
		return nil, err
	}
	row.Project = &project
	return &IssueResult{Rating: &row, URL: s.LinkURL(row.Token), Reused: false}, nil
}

// LookupByToken resolves a rating link for the public form. Only the project
// title and workflow state are exposed.
func (s *Service) LookupByToken(token string) (*TokenLookup, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenNotFound
	}

	var row models.RatingModel
	err := s.db.Preload("Project").Where("token = ?", token).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	lookup := &TokenLookup{Status: row.Status}
	if row.Project != nil {
		lookup.ProjectTitle = row.Project.Title
	}
	return lookup, nil
}

const maxTestimonialLen = 200

func validateSubmit(dto *SubmitDTO) error {
	if dto.OverallRating < 1 || dto.OverallRating > 5 {
		return ErrInvalidScore
	}
	for _, v := range []int{dto.Communication, dto.Quality, dto.Timeliness, dto.Professionalism} {
		if v < 0 || v > 5 {
			return ErrInvalidScore
		}
	}
	if strings.TrimSpace(dto.ClientName) == "" {
		return ErrMissingClient
	}
	if strings.TrimSpace(dto.Testimonial) == "" {
		return ErrMissingTestimonial
	}
	return nil
}

// Submit consumes a pending rating link. The status flip is a single
// conditional UPDATE so a token can never be redeemed twice; validation
// failures leave the link pending and reusable.
func (s *Service) Submit(dto *SubmitDTO) error {
	if err := validateSubmit(dto); err != nil {
		return err
	}

	// The cap counts runes, not bytes, so multibyte testimonials are
	// never cut mid-character.
	testimonial := sanitize.Strip(dto.Testimonial)
	if runes := []rune(testimonial); len(runes) > maxTestimonialLen {
		testimonial = string(runes[:maxTestimonialLen])
	}
	company := sanitize.Strip(dto.ClientCompany)
	if company == "" {
		company = "Individual"
	}
	now := time.Now()
	updates := map[string]interface{}{
		"status":         models.RatingSubmitted,
		"overall_rating": dto.OverallRating,
		"parameter_ratings": models.ParameterRatings{
			Communication:   dto.Communication,
			Quality:         dto.Quality,
			Timeliness:      dto.Timeliness,
			Professionalism: dto.Professionalism,
		},
		"testimonial":    testimonial,
		"client_name":    sanitize.Strip(dto.ClientName),
		"client_company": company,
		"submitted_at":   &now,
	}

	token := strings.TrimSpace(dto.Token)
	res := s.db.Model(&models.RatingModel{}).
		Where("token = ? AND status = ?", token, models.RatingPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Nothing flipped: the token is either unknown or already consumed.
	var count int64
	if err := s.db.Model(&models.RatingModel{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrTokenNotFound
	}
	return ErrTokenUsed
}

// List returns ratings for moderation, newest first, optionally filtered by
// status, with the project preloaded.
func (s *Service) List(q pagination.Query, status models.RatingStatus) ([]models.RatingModel, response.Pagination, error) {
	query := s.db.Model(&models.RatingModel{}).Preload("Project").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var out []models.RatingModel
	meta, err := pagination.Paginate(query, q, &out)
	return out, meta, err
}

// Approve publishes submitted testimonials. Rows already approved are
// matched but not modified; unknown ids are simply not matched.
func (s *Service) Approve(ids []string) (*BulkResult, error) {
	if len(ids) == 0 {
		return &BulkResult{}, nil
	}

	var matched int64
	if err := s.db.Model(&models.RatingModel{}).Where("id IN ?", ids).Count(&matched).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	res := s.db.Model(&models.RatingModel{}).
		Where("id IN ? AND status <> ?", ids, models.RatingApproved).
		Updates(map[string]interface{}{
			"status":      models.RatingApproved,
			"approved_at": &now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	return &BulkResult{Matched: matched, Modified: res.RowsAffected}, nil
}

// Reject discards ratings outright. A rejected project can be issued a fresh
// link afterwards because the row (and its unique project_id) is gone.
func (s *Service) Reject(ids []string) (*BulkResult, error) {
	if len(ids) == 0 {
		return &BulkResult{}, nil
	}
	res := s.db.Unscoped().Where("id IN ?", ids).Delete(&models.RatingModel{})
	if res.Error != nil {
		return nil, res.Error
	}
	return &BulkResult{Matched: res.RowsAffected, Modified: res.RowsAffected}, nil
}

// Approved returns published testimonials for the public site.
func (s *Service) Approved(limit int) ([]models.RatingModel, error) {
	var out []models.RatingModel
	q := s.db.Preload("Project").
		Where("status = ?", models.RatingApproved).
		Order("approved_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return out, q.Find(&out).Error
}

// Get loads one rating with its project.
func (s *Service) Get(id string) (*models.RatingModel, error) {
	var row models.RatingModel
	err := s.db.Preload("Project").Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRatingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
