package rating

import (
	"strings"
	"testing"
	"unicode/utf8"

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
	return NewService(db, "https://studio.example.com"), db
}

func seedProject(t *testing.T, db *gorm.DB, title string) models.ProjectModel {
	t.Helper()
	p := models.ProjectModel{Title: title, Kind: models.KindGallery, Year: 2025}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func validSubmit(token string) *SubmitDTO {
	return &SubmitDTO{
		Token:           token,
		OverallRating:   5,
		Communication:   5,
		Quality:         4,
		Timeliness:      5,
		Professionalism: 5,
		Testimonial:     "Wonderful to work with.",
		ClientName:      "Dana",
		ClientCompany:   "Acme",
	}
}

func TestIssueLinkCreatesPendingRating(t *testing.T) {
	svc, db := newTestService(t)
	p := seedProject(t, db, "Rooftop shoot")

	result, err := svc.IssueLink(p.ID)
	require.NoError(t, err)
	assert.False(t, result.Reused)
	assert.Equal(t, models.RatingPending, result.Rating.Status)
	assert.Len(t, result.Rating.Token, 64)
	assert.Equal(t, "https://studio.example.com/rate/"+result.Rating.Token, result.URL)
}

func TestIssueLinkIsIdempotentPerProject(t *testing.T) {
	svc, db := newTestService(t)
	p := seedProject(t, db, "Rooftop shoot")

	first, err := svc.IssueLink(p.ID)
	require.NoError(t, err)
	second, err := svc.IssueLink(p.ID)
	require.NoError(t, err)

	assert.True(t, second.Reused)
	assert.Equal(t, first.Rating.Token, second.Rating.Token)

	var count int64
	require.NoError(t, db.Model(&models.RatingModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestIssueLinkUnknownProject(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.IssueLink("missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestLookupByTokenExposesOnlyTitleAndStatus(t *testing.T) {
	svc, db := newTestService(t)
	p := seedProject(t, db, "Brand film")
	issued, err := svc.IssueLink(p.ID)
	require.NoError(t, err)

	lookup, err := svc.LookupByToken(issued.Rating.Token)
	require.NoError(t, err)
	assert.Equal(t, "Brand film", lookup.ProjectTitle)
	assert.Equal(t, models.RatingPending, lookup.Status)
}

func TestLookupByTokenUnknown(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.LookupByToken("nope")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestSubmitConsumesTokenOnce(t *testing.T) {
	svc, db := newTestService(t)
	p := seedProject(t, db, "Brand film")
	issued, err := svc.IssueLink(p.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Submit(validSubmit(issued.Rating.Token)))

	var row models.RatingModel
	require.NoError(t, db.First(&row, "project_id = ?", p.ID).Error)
	assert.Equal(t, models.RatingSubmitted, row.Status)
	assert.Equal(t, 5, row.OverallRating)
	assert.Equal(t, "Dana", row.ClientName)
	assert.NotNil(t, row.SubmittedAt)

	err = svc.Submit(validSubmit(issued.Rating.Token))
	assert.ErrorIs(t, err, ErrTokenUsed)
}

func TestSubmitUnknownTokenIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.Submit(validSubmit("0000"))
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestSubmitValidationLeavesTokenPending(t *testing.T) {
	svc, db := newTestService(t)
	p := seedProject(t, db, "Brand film")
	issued, err := svc.IssueLink(p.ID)
	require.NoError(t, err)

	bad := validSubmit(issued.Rating.Token)
	bad.OverallRating = 9
	assert.ErrorIs(t, svc.Submit(bad), ErrInvalidScore)

	noName := validSubmit(issued.Rating.Token)
	noName.ClientName = "   "
	assert.ErrorIs(t, svc.Submit(noName), ErrMissingClient)

	noStory := validSubmit(issued.Rating.Token)
	noStory.Testimonial = ""
	assert.ErrorIs(t, svc.Submit(noStory), ErrMissingTestimonial)

	// A failed submission must not burn the link. Sub-scores may be
	// zero when the client skips them.
	ok := validSubmit(issued.Rating.Token)
	ok.Quality = 0
	ok.ClientCompany = ""
	require.NoError(t, svc.Submit(ok))

	var row models.RatingModel
	require.NoError(t, db.First(&row, "project_id = ?", p.ID).Error)
	assert.Equal(t, 0, row.ParameterRatings.Quality)
	assert.Equal(t, "Individual", row.ClientCompany)
}

func TestSubmitTrimsTokenWhitespace(t *testing.T) {
	svc, db := newTestService(t)
	p := seedProject(t, db, "Brand film")
	issued, err := svc.IssueLink(p.ID)
	require.NoError(t, err)

	// A token pasted with surrounding whitespace must still redeem.
	require.NoError(t, svc.Submit(validSubmit("  "+issued.Rating.Token+"\n")))

	var row models.RatingModel
	require.NoError(t, db.First(&row, "project_id = ?", p.ID).Error)
	assert.Equal(t, models.RatingSubmitted, row.Status)
}

func TestSubmitCapsTestimonialByRuneCount(t *testing.T) {
	svc, db := newTestService(t)

	// 67 three-byte runes are 201 bytes but only 67 characters, well
	// under the cap, and must survive intact.
	p := seedProject(t, db, "Brand film")
	issued, err := svc.IssueLink(p.ID)
	require.NoError(t, err)

	short := validSubmit(issued.Rating.Token)
	short.Testimonial = strings.Repeat("世", 67)
	require.NoError(t, svc.Submit(short))

	var row models.RatingModel
	require.NoError(t, db.First(&row, "project_id = ?", p.ID).Error)
	assert.Equal(t, short.Testimonial, row.Testimonial)

	p2 := seedProject(t, db, "Campaign stills")
	issued2, err := svc.IssueLink(p2.ID)
	require.NoError(t, err)

	long := validSubmit(issued2.Rating.Token)
	long.Testimonial = strings.Repeat("界", 250)
	require.NoError(t, svc.Submit(long))

	require.NoError(t, db.First(&row, "project_id = ?", p2.ID).Error)
	assert.Equal(t, 200, utf8.RuneCountInString(row.Testimonial))
	assert.True(t, utf8.ValidString(row.Testimonial))
	assert.Equal(t, strings.Repeat("界", 200), row.Testimonial)
}

func TestSubmitStripsMarkupFromTestimonial(t *testing.T) {
	svc, db := newTestService(t)
	p := seedProject(t, db, "Brand film")
	issued, err := svc.IssueLink(p.ID)
	require.NoError(t, err)

	dto := validSubmit(issued.Rating.Token)
	dto.Testimonial = "<script>alert(1)</script>Great team"
	require.NoError(t, svc.Submit(dto))

	var row models.RatingModel
	require.NoError(t, db.First(&row, "project_id = ?", p.ID).Error)
	assert.Equal(t, "Great team", row.Testimonial)
}

func TestApproveReportsMatchedAndModified(t *testing.T) {
	svc, db := newTestService(t)

	p1 := seedProject(t, db, "One")
	p2 := seedProject(t, db, "Two")
	i1, err := svc.IssueLink(p1.ID)
	require.NoError(t, err)
	i2, err := svc.IssueLink(p2.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Submit(validSubmit(i1.Rating.Token)))
	require.NoError(t, svc.Submit(validSubmit(i2.Rating.Token)))

	result, err := svc.Approve([]string{i1.Rating.ID, i2.Rating.ID, "ghost"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Matched)
	assert.EqualValues(t, 2, result.Modified)

	// A second approval matches but changes nothing.
	result, err = svc.Approve([]string{i1.Rating.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Matched)
	assert.EqualValues(t, 0, result.Modified)

	approved, err := svc.Approved(0)
	require.NoError(t, err)
	assert.Len(t, approved, 2)
	for _, r := range approved {
		assert.NotNil(t, r.ApprovedAt)
	}
}

func TestRejectFreesProjectForReissue(t *testing.T) {
	svc, db := newTestService(t)
	p := seedProject(t, db, "One")
	first, err := svc.IssueLink(p.ID)
	require.NoError(t, err)

	result, err := svc.Reject([]string{first.Rating.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Matched)

	second, err := svc.IssueLink(p.ID)
	require.NoError(t, err)
	assert.False(t, second.Reused)
	assert.NotEqual(t, first.Rating.Token, second.Rating.Token)
}

func TestListFiltersByStatus(t *testing.T) {
	svc, db := newTestService(t)
	p1 := seedProject(t, db, "One")
	p2 := seedProject(t, db, "Two")
	i1, err := svc.IssueLink(p1.ID)
	require.NoError(t, err)
	_, err = svc.IssueLink(p2.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Submit(validSubmit(i1.Rating.Token)))

	q := pagination.Query{Page: 1, Size: 10}

	all, meta, err := svc.List(q, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.EqualValues(t, 2, meta.Total)

	submitted, _, err := svc.List(q, models.RatingSubmitted)
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	assert.Equal(t, models.RatingSubmitted, submitted[0].Status)
	require.NotNil(t, submitted[0].Project)
	assert.Equal(t, "One", submitted[0].Project.Title)
}
