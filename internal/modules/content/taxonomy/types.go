package taxonomy

import "errors"

var (
	ErrInvalidKind = errors.New("kind must be gallery or portfolio")
)

type SyncCategoriesDTO struct {
	Kind  string   `json:"kind" binding:"required"`
	Names []string `json:"names"`
}

type SyncProjectTypesDTO struct {
	Names []string `json:"names"`
}

type SocialLinkDTO struct {
	Platform string `json:"platform" binding:"required"`
	URL      string `json:"url" binding:"required"`
}

type SyncSocialLinksDTO struct {
	Links []SocialLinkDTO `json:"links"`
}

// SyncResult reports what a reconcile pass changed.
type SyncResult struct {
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Updated int    `json:"updated"`
	Message string `json:"message"`
}
