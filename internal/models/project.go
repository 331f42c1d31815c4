package models

// Media is the descriptor of the hosted asset backing a project.
// The backend treats it as opaque apart from carrying it to the client.
type Media struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
	Type     string `json:"type,omitempty"` // image | video
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// MaxProjectTags caps the optional sub-tags per project.
const MaxProjectTags = 3

// ProjectModel is a gallery or portfolio item.
type ProjectModel struct {
	Base
	Title       string       `json:"title"       gorm:"not null"`
	Kind        CategoryKind `json:"kind"        gorm:"not null;index"`
	CategoryID  *string      `json:"category_id" gorm:"index"`
	Media       Media        `json:"media"       gorm:"type:longtext;serializer:json"`
	Description string       `json:"description" gorm:"type:text"`
	Year        int          `json:"year"`
	Tags        StringArray  `json:"tags"        gorm:"type:longtext"`
	Featured    bool         `json:"featured"    gorm:"default:false;index"`

	Category *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (ProjectModel) TableName() string { return "projects" }
