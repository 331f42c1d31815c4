// Package aggregate serves the combined public payload the site shell
// renders from: site info, taxonomies, featured work and testimonials.
package aggregate

import (
	"github.com/gin-gonic/gin"
	"github.com/lensframe/studio-core/internal/config"
	"github.com/lensframe/studio-core/internal/models"
	"github.com/lensframe/studio-core/internal/modules/content/project"
	"github.com/lensframe/studio-core/internal/modules/content/rating"
	"github.com/lensframe/studio-core/internal/modules/content/taxonomy"
	"github.com/lensframe/studio-core/internal/modules/system/configs"
	"github.com/lensframe/studio-core/internal/pkg/response"
)

const (
	featuredLimit    = 12
	testimonialLimit = 24
)

type Payload struct {
	Site                config.SiteOptions        `json:"site"`
	Contact             config.ContactOptions     `json:"contact"`
	GalleryCategories   []models.CategoryModel    `json:"gallery_categories"`
	PortfolioCategories []models.CategoryModel    `json:"portfolio_categories"`
	ProjectTypes        []models.ProjectTypeModel `json:"project_types"`
	SocialLinks         []models.SocialLinkModel  `json:"social_links"`
	FeaturedProjects    []models.ProjectModel     `json:"featured_projects"`
	Testimonials        []models.RatingModel      `json:"testimonials"`
}

type Handler struct {
	configs  *configs.Service
	taxonomy *taxonomy.Service
	projects *project.Service
	ratings  *rating.Service
}

func NewHandler(cfg *configs.Service, tax *taxonomy.Service, proj *project.Service, rat *rating.Service) *Handler {
	return &Handler{configs: cfg, taxonomy: tax, projects: proj, ratings: rat}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, _ gin.HandlerFunc) {
	rg.GET("/aggregate", h.Get)
}

// GET /aggregate
func (h *Handler) Get(c *gin.Context) {
	cfg, err := h.configs.Get()
	if err != nil {
		response.InternalError(c, err)
		return
	}

	payload := Payload{Site: cfg.Site, Contact: cfg.Contact}

	if payload.GalleryCategories, err = h.taxonomy.ListCategories(models.KindGallery); err != nil {
		response.InternalError(c, err)
		return
	}
	if payload.PortfolioCategories, err = h.taxonomy.ListCategories(models.KindPortfolio); err != nil {
		response.InternalError(c, err)
		return
	}
	if payload.ProjectTypes, err = h.taxonomy.ListProjectTypes(); err != nil {
		response.InternalError(c, err)
		return
	}
	if payload.SocialLinks, err = h.taxonomy.ListSocialLinks(); err != nil {
		response.InternalError(c, err)
		return
	}
	if payload.FeaturedProjects, err = h.projects.Featured(featuredLimit); err != nil {
		response.InternalError(c, err)
		return
	}
	if payload.Testimonials, err = h.ratings.Approved(testimonialLimit); err != nil {
		response.InternalError(c, err)
		return
	}

	response.OK(c, payload)
}
