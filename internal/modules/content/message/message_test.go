package message

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lensframe/studio-core/internal/database"
	"github.com/lensframe/studio-core/internal/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db)
}

func TestCreateStripsMarkup(t *testing.T) {
	svc := newTestService(t)

	row, err := svc.Create(&CreateDTO{
		Name:  "<b>Dana</b>",
		Email: "dana@example.com",
		Body:  "<script>x</script>Booking inquiry",
	}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "Dana", row.Name)
	assert.Equal(t, "Booking inquiry", row.Body)
	assert.Equal(t, "10.0.0.1", row.IP)
	assert.False(t, row.Read)
}

func TestListFilterAndMarkRead(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Create(&CreateDTO{Name: "A", Email: "a@example.com", Body: "hi"}, "")
	require.NoError(t, err)
	_, err = svc.Create(&CreateDTO{Name: "B", Email: "b@example.com", Body: "hello"}, "")
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(first.ID))

	unread := false
	rows, meta, err := svc.List(pagination.Query{Page: 1, Size: 10}, &unread)
	require.NoError(t, err)
	assert.EqualValues(t, 1, meta.Total)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].Name)
}

func TestMarkReadAndDeleteUnknown(t *testing.T) {
	svc := newTestService(t)
	assert.ErrorIs(t, svc.MarkRead("ghost"), ErrNotFound)
	assert.ErrorIs(t, svc.Delete("ghost"), ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	row, err := svc.Create(&CreateDTO{Name: "A", Email: "a@example.com", Body: "hi"}, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(row.ID))

	rows, meta, err := svc.List(pagination.Query{Page: 1, Size: 10}, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.EqualValues(t, 0, meta.Total)
}
