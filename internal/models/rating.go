package models

import "time"

// RatingStatus is the moderation state of a testimonial. Transitions only
// move forward: pending -> submitted -> approved. Reject deletes the row.
type RatingStatus string

const (
	RatingPending   RatingStatus = "pending"
	RatingSubmitted RatingStatus = "submitted"
	RatingApproved  RatingStatus = "approved"
)

// ParameterRatings are the four client-facing sub-scores (0-5 each).
type ParameterRatings struct {
	Communication   int `json:"communication"`
	Quality         int `json:"quality"`
	Timeliness      int `json:"timeliness"`
	Professionalism int `json:"professionalism"`
}

// RatingModel is the one-per-project testimonial gated by a single-use token.
// The unique index on ProjectID turns concurrent duplicate issuance into an
// insert failure the caller resolves by re-reading.
type RatingModel struct {
	Base
	ProjectID        string           `json:"project_id" gorm:"uniqueIndex;not null"`
	Token            string           `json:"token"      gorm:"uniqueIndex;not null"`
	Status           RatingStatus     `json:"status"     gorm:"default:pending;index;not null"`
	OverallRating    int              `json:"overall_rating"`
	ParameterRatings ParameterRatings `json:"parameter_ratings" gorm:"type:longtext;serializer:json"`
	Testimonial      string           `json:"testimonial"   gorm:"type:varchar(255)"`
	ClientName       string           `json:"client_name"`
	ClientCompany    string           `json:"client_company"`
	SubmittedAt      *time.Time       `json:"submitted_at"`
	ApprovedAt       *time.Time       `json:"approved_at"`

	Project *ProjectModel `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

func (RatingModel) TableName() string { return "ratings" }
