package models

// CategoryKind separates gallery categories from portfolio categories.
// Both live in one table and are reconciled independently per kind.
type CategoryKind string

const (
	KindGallery   CategoryKind = "gallery"
	KindPortfolio CategoryKind = "portfolio"
)

// CategoryModel is a named label a project belongs to.
// Names are unique within a kind; rows are created and removed only by sync.
type CategoryModel struct {
	Base
	Name string       `json:"name" gorm:"uniqueIndex:idx_categories_kind_name;not null"`
	Kind CategoryKind `json:"kind" gorm:"uniqueIndex:idx_categories_kind_name;not null"`

	Projects []ProjectModel `json:"projects,omitempty" gorm:"foreignKey:CategoryID"`
}

func (CategoryModel) TableName() string { return "categories" }

// ProjectTypeModel is a service/project-type label shown on the services page.
type ProjectTypeModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (ProjectTypeModel) TableName() string { return "project_types" }

// SocialLinkModel is a social-media handle. Platform is the sync key;
// URL is the only field that may change while the key stays fixed.
type SocialLinkModel struct {
	Base
	Platform string `json:"platform" gorm:"uniqueIndex;not null"`
	URL      string `json:"url"      gorm:"not null"`
}

func (SocialLinkModel) TableName() string { return "social_links" }
