package project

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lensframe/studio-core/internal/database"
	"github.com/lensframe/studio-core/internal/models"
	"github.com/lensframe/studio-core/internal/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db), db
}

func seedCategory(t *testing.T, db *gorm.DB, kind models.CategoryKind, name string) models.CategoryModel {
	t.Helper()
	c := models.CategoryModel{Name: name, Kind: kind}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func TestCreateValidatesKindAndTags(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(&CreateDTO{Title: "x", Kind: "blog"})
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = svc.Create(&CreateDTO{
		Title: "x", Kind: "gallery",
		Tags: []string{"a", "b", "c", "d"},
	})
	assert.ErrorIs(t, err, ErrTooManyTags)
}

func TestCreateStripsMarkupAndDedupesTags(t *testing.T) {
	svc, _ := newTestService(t)

	row, err := svc.Create(&CreateDTO{
		Title: "<b>Night</b> shoot",
		Kind:  "gallery",
		Tags:  []string{" drone ", "drone", "night"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Night shoot", row.Title)
	assert.Equal(t, models.StringArray{"drone", "night"}, row.Tags)
}

func TestCreateRejectsCategoryOfOtherKind(t *testing.T) {
	svc, db := newTestService(t)
	cat := seedCategory(t, db, models.KindPortfolio, "Films")

	_, err := svc.Create(&CreateDTO{Title: "x", Kind: "gallery", CategoryID: &cat.ID})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	row, err := svc.Create(&CreateDTO{Title: "x", Kind: "portfolio", CategoryID: &cat.ID})
	require.NoError(t, err)
	require.NotNil(t, row.CategoryID)
	assert.Equal(t, cat.ID, *row.CategoryID)
}

func TestUpdatePartialFields(t *testing.T) {
	svc, _ := newTestService(t)
	row, err := svc.Create(&CreateDTO{Title: "Old", Kind: "gallery", Year: 2023})
	require.NoError(t, err)

	title := "New"
	updated, err := svc.Update(row.ID, &UpdateDTO{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, 2023, updated.Year, "untouched fields survive partial updates")
}

func TestSetFeaturedAndFilter(t *testing.T) {
	svc, _ := newTestService(t)
	a, err := svc.Create(&CreateDTO{Title: "A", Kind: "gallery"})
	require.NoError(t, err)
	_, err = svc.Create(&CreateDTO{Title: "B", Kind: "portfolio"})
	require.NoError(t, err)

	_, err = svc.SetFeatured(a.ID, true)
	require.NoError(t, err)

	featured := true
	rows, meta, err := svc.List(pagination.Query{Page: 1, Size: 10}, ListFilter{Featured: &featured})
	require.NoError(t, err)
	assert.EqualValues(t, 1, meta.Total)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Title)

	got, err := svc.Featured(0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSetFeaturedUnknownProject(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.SetFeatured("missing", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesRatingLink(t *testing.T) {
	svc, db := newTestService(t)
	row, err := svc.Create(&CreateDTO{Title: "A", Kind: "gallery"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.RatingModel{ProjectID: row.ID, Token: "tok"}).Error)

	require.NoError(t, svc.Delete(row.ID))

	var count int64
	require.NoError(t, db.Model(&models.RatingModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	assert.ErrorIs(t, svc.Delete(row.ID), ErrNotFound)
}

func TestListFiltersByKindAndYear(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(&CreateDTO{Title: "A", Kind: "gallery", Year: 2024})
	require.NoError(t, err)
	_, err = svc.Create(&CreateDTO{Title: "B", Kind: "gallery", Year: 2025})
	require.NoError(t, err)
	_, err = svc.Create(&CreateDTO{Title: "C", Kind: "portfolio", Year: 2025})
	require.NoError(t, err)

	rows, _, err := svc.List(pagination.Query{Page: 1, Size: 10}, ListFilter{Kind: models.KindGallery, Year: 2025})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].Title)
}
