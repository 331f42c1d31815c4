package taxonomy

import (
	"github.com/lensframe/studio-core/internal/models"
	"github.com/lensframe/studio-core/internal/pkg/reconcile"
	"github.com/lensframe/studio-core/internal/pkg/sanitize"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) ListCategories(kind models.CategoryKind) ([]models.CategoryModel, error) {
	var out []models.CategoryModel
	q := s.db.Order("name ASC")
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	return out, q.Find(&out).Error
}

func (s *Service) ListProjectTypes() ([]models.ProjectTypeModel, error) {
	var out []models.ProjectTypeModel
	return out, s.db.Order("name ASC").Find(&out).Error
}

func (s *Service) ListSocialLinks() ([]models.SocialLinkModel, error) {
	var out []models.SocialLinkModel
	return out, s.db.Order("platform ASC").Find(&out).Error
}

// SyncCategories converges the stored categories of one kind onto the
// submitted name list. An empty list removes every category of that kind.
func (s *Service) SyncCategories(kind models.CategoryKind, names []string) (*SyncResult, error) {
	if kind != models.KindGallery && kind != models.KindPortfolio {
		return nil, ErrInvalidKind
	}

	cleaned := reconcile.NormalizeNames(names, sanitize.Strip)
	submitted := make([]reconcile.Entry, 0, len(cleaned))
	for _, n := range cleaned {
		submitted = append(submitted, reconcile.Entry{Key: n})
	}

	var result *SyncResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var persisted []models.CategoryModel
		if err := tx.Where("kind = ?", kind).Find(&persisted).Error; err != nil {
			return err
		}

		diff := reconcile.Compute(persisted, submitted,
			func(c models.CategoryModel) string { return c.Name }, nil)

		if len(diff.ToAdd) > 0 {
			rows := make([]models.CategoryModel, 0, len(diff.ToAdd))
			for _, e := range diff.ToAdd {
				rows = append(rows, models.CategoryModel{Name: e.Key, Kind: kind})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(diff.ToRemove) > 0 {
			ids := make([]string, 0, len(diff.ToRemove))
			for _, c := range diff.ToRemove {
				ids = append(ids, c.ID)
			}
			if err := tx.Unscoped().Where("id IN ?", ids).Delete(&models.CategoryModel{}).Error; err != nil {
				return err
			}
			// Projects keep running with a dangling category cleared.
			if err := tx.Model(&models.ProjectModel{}).
				Where("category_id IN ?", ids).
				Update("category_id", nil).Error; err != nil {
				return err
			}
		}

		result = resultFromDiff(diff.Summary(), len(diff.ToAdd), len(diff.ToRemove), len(diff.ToUpdate))
		return nil
	})
	return result, err
}

// SyncProjectTypes converges the project-type labels onto the submitted list.
func (s *Service) SyncProjectTypes(names []string) (*SyncResult, error) {
	cleaned := reconcile.NormalizeNames(names, sanitize.Strip)
	submitted := make([]reconcile.Entry, 0, len(cleaned))
	for _, n := range cleaned {
		submitted = append(submitted, reconcile.Entry{Key: n})
	}

	var result *SyncResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var persisted []models.ProjectTypeModel
		if err := tx.Find(&persisted).Error; err != nil {
			return err
		}

		diff := reconcile.Compute(persisted, submitted,
			func(t models.ProjectTypeModel) string { return t.Name }, nil)

		if len(diff.ToAdd) > 0 {
			rows := make([]models.ProjectTypeModel, 0, len(diff.ToAdd))
			for _, e := range diff.ToAdd {
				rows = append(rows, models.ProjectTypeModel{Name: e.Key})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(diff.ToRemove) > 0 {
			ids := make([]string, 0, len(diff.ToRemove))
			for _, t := range diff.ToRemove {
				ids = append(ids, t.ID)
			}
			if err := tx.Unscoped().Where("id IN ?", ids).Delete(&models.ProjectTypeModel{}).Error; err != nil {
				return err
			}
		}

		result = resultFromDiff(diff.Summary(), len(diff.ToAdd), len(diff.ToRemove), len(diff.ToUpdate))
		return nil
	})
	return result, err
}

// SyncSocialLinks converges the stored links onto the submitted set. Platform
// is the identity; a platform that stays but points at a new URL is updated
// in place rather than removed and re-created.
func (s *Service) SyncSocialLinks(links []SocialLinkDTO) (*SyncResult, error) {
	raw := make([]reconcile.Entry, 0, len(links))
	for _, l := range links {
		raw = append(raw, reconcile.Entry{Key: l.Platform, Value: l.URL})
	}
	submitted := reconcile.NormalizeEntries(raw, sanitize.Strip)

	var result *SyncResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var persisted []models.SocialLinkModel
		if err := tx.Find(&persisted).Error; err != nil {
			return err
		}

		diff := reconcile.Compute(persisted, submitted,
			func(l models.SocialLinkModel) string { return l.Platform },
			func(l models.SocialLinkModel) string { return l.URL })

		if len(diff.ToAdd) > 0 {
			rows := make([]models.SocialLinkModel, 0, len(diff.ToAdd))
			for _, e := range diff.ToAdd {
				rows = append(rows, models.SocialLinkModel{Platform: e.Key, URL: e.Value})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(diff.ToRemove) > 0 {
			ids := make([]string, 0, len(diff.ToRemove))
			for _, l := range diff.ToRemove {
				ids = append(ids, l.ID)
			}
			if err := tx.Unscoped().Where("id IN ?", ids).Delete(&models.SocialLinkModel{}).Error; err != nil {
				return err
			}
		}
		for _, u := range diff.ToUpdate {
			if err := tx.Model(&models.SocialLinkModel{}).
				Where("id = ?", u.Existing.ID).
				Update("url", u.Value).Error; err != nil {
				return err
			}
		}

		result = resultFromDiff(diff.Summary(), len(diff.ToAdd), len(diff.ToRemove), len(diff.ToUpdate))
		return nil
	})
	return result, err
}

func resultFromDiff(summary string, added, removed, updated int) *SyncResult {
	return &SyncResult{
		Added:   added,
		Removed: removed,
		Updated: updated,
		Message: summary,
	}
}
