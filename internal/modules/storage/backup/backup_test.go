package backup

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lensframe/studio-core/internal/database"
	"github.com/lensframe/studio-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewHandler(db, nil, t.TempDir()), db
}

func TestNewHandlerAnchorsRelativeDir(t *testing.T) {
	h := NewHandler(nil, nil, "archives")
	assert.True(t, filepath.IsAbs(h.baseDir))
	assert.Equal(t, "archives", filepath.Base(h.baseDir))

	h = NewHandler(nil, nil, "")
	assert.True(t, filepath.IsAbs(h.baseDir))
	assert.Equal(t, "backups", filepath.Base(h.baseDir))
}

func TestRenderObjectKey(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	key := renderObjectKey("backups/{Y}/{m}/{filename}", "backup-x.zip", now)
	assert.Equal(t, "backups/2026/03/backup-x.zip", key)

	key = renderObjectKey("", "backup-x.zip", now)
	assert.Equal(t, "backups/2026/03/backup-x.zip", key)

	key = renderObjectKey("//weird\\{d}//{filename}", "f.zip", now)
	assert.Equal(t, "weird/09/f.zip", key)
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	h, db := newTestHandler(t)

	require.NoError(t, db.Create(&models.CategoryModel{Name: "Weddings", Kind: models.KindGallery}).Error)
	require.NoError(t, db.Create(&models.SocialLinkModel{Platform: "instagram", URL: "https://x"}).Error)

	buf, err := h.createZip(time.Now())
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	// Mutate live data, then restore the snapshot over it.
	require.NoError(t, db.Unscoped().Where("1 = 1").Delete(&models.CategoryModel{}).Error)
	require.NoError(t, db.Create(&models.CategoryModel{Name: "Garbage", Kind: models.KindGallery}).Error)

	require.NoError(t, h.restore(buf.Bytes()))

	var cats []models.CategoryModel
	require.NoError(t, db.Find(&cats).Error)
	require.Len(t, cats, 1)
	assert.Equal(t, "Weddings", cats[0].Name)

	var links []models.SocialLinkModel
	require.NoError(t, db.Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, "https://x", links[0].URL)
}

func TestRestoreRejectsGarbage(t *testing.T) {
	h, _ := newTestHandler(t)
	assert.Error(t, h.restore([]byte("not a zip")))
}

func TestCreateLocalArtifactListsBackups(t *testing.T) {
	h, _ := newTestHandler(t)

	artifact, err := h.createLocalArtifact(time.Now())
	require.NoError(t, err)
	assert.Contains(t, artifact.Filename, "backup-")

	items := h.listBackups()
	require.Len(t, items, 1)
	assert.Equal(t, artifact.Filename, items[0].Filename)
}
