package services

import (
	"testing"

	apperrors "litreview_go_backend/internal/errors"
	"litreview_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireConflict(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	customErr, ok := err.(*apperrors.CustomError)
	require.True(t, ok, "expected CustomError, got %T: %v", err, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, customErr.Type)
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	customErr, ok := err.(*apperrors.CustomError)
	require.True(t, ok, "expected CustomError, got %T: %v", err, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, customErr.Type)
}

func TestAddPaperDeduplicatesByDOI(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	projectA := createTestProject(t, db, user.ID, "review A")
	projectB := createTestProject(t, db, user.ID, "review B")
	paperService := NewPaperService(db)

	first, err := paperService.AddPaperToProject(projectA.ID, PaperInput{
		DOI:     strPtr("10.1/x"),
		Title:   "Original Title",
		Authors: []string{"Ada Lovelace"},
		Year:    intPtr(2021),
	}, LinkMetadata{})
	require.NoError(t, err)

	// Same DOI into a different project with a conflicting payload: the
	// stored record wins, nothing is merged.
	second, err := paperService.AddPaperToProject(projectB.ID, PaperInput{
		DOI:     strPtr("10.1/x"),
		Title:   "A Different Title",
		Authors: []string{"Someone Else"},
	}, LinkMetadata{})
	require.NoError(t, err)

	assert.Equal(t, first.PaperID, second.PaperID)
	assert.Equal(t, "Original Title", second.Paper.Title)

	var count int64
	require.NoError(t, db.Model(&models.Paper{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddPaperConflictOnDuplicateLink(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	project := createTestProject(t, db, user.ID, "review")
	paperService := NewPaperService(db)

	_, err := paperService.AddPaperToProject(project.ID, PaperInput{
		DOI:   strPtr("10.1/x"),
		Title: "T",
	}, LinkMetadata{})
	require.NoError(t, err)

	_, err = paperService.AddPaperToProject(project.ID, PaperInput{
		DOI:   strPtr("10.1/x"),
		Title: "T",
	}, LinkMetadata{})
	requireConflict(t, err)
}

func TestResolvePrefersDOIOverArxivID(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	project := createTestProject(t, db, user.ID, "review")
	paperService := NewPaperService(db)

	byDOI, err := paperService.AddPaperToProject(project.ID, PaperInput{
		DOI:   strPtr("10.1/doi-paper"),
		Title: "DOI Paper",
	}, LinkMetadata{})
	require.NoError(t, err)

	other := createTestProject(t, db, user.ID, "other")
	byArxiv, err := paperService.AddPaperToProject(other.ID, PaperInput{
		ArxivID: strPtr("2101.00001"),
		Title:   "Arxiv Paper",
	}, LinkMetadata{})
	require.NoError(t, err)
	require.NotEqual(t, byDOI.PaperID, byArxiv.PaperID)

	// Both identifiers supplied: the DOI match wins even though the arXiv id
	// points at a different paper.
	third := createTestProject(t, db, user.ID, "third")
	link, err := paperService.AddPaperToProject(third.ID, PaperInput{
		DOI:     strPtr("10.1/doi-paper"),
		ArxivID: strPtr("2101.00001"),
		Title:   "Whatever",
	}, LinkMetadata{})
	require.NoError(t, err)
	assert.Equal(t, byDOI.PaperID, link.PaperID)
}

func TestResolveFallsBackToArxivID(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	project := createTestProject(t, db, user.ID, "review")
	paperService := NewPaperService(db)

	first, err := paperService.AddPaperToProject(project.ID, PaperInput{
		ArxivID: strPtr("2101.00001"),
		Title:   "Preprint",
	}, LinkMetadata{})
	require.NoError(t, err)

	other := createTestProject(t, db, user.ID, "other")
	second, err := paperService.AddPaperToProject(other.ID, PaperInput{
		DOI:     strPtr("10.1/not-stored-yet"),
		ArxivID: strPtr("2101.00001"),
		Title:   "Preprint",
	}, LinkMetadata{})
	require.NoError(t, err)
	assert.Equal(t, first.PaperID, second.PaperID)
}

func TestLinkPaperByID(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	projectA := createTestProject(t, db, user.ID, "review A")
	projectB := createTestProject(t, db, user.ID, "review B")
	paperService := NewPaperService(db)

	created, err := paperService.AddPaperToProject(projectA.ID, PaperInput{
		DOI:   strPtr("10.1/x"),
		Title: "T",
	}, LinkMetadata{})
	require.NoError(t, err)

	link, err := paperService.LinkPaperByID(projectB.ID, created.PaperID, LinkMetadata{
		InclusionReason: strPtr("matches screening criteria"),
		Score:           floatPtr(0.9),
	})
	require.NoError(t, err)
	assert.Equal(t, created.PaperID, link.PaperID)
	assert.Equal(t, "T", link.Paper.Title)
	require.NotNil(t, link.InclusionReason)
	assert.Equal(t, "matches screening criteria", *link.InclusionReason)

	// Linking twice into the same project conflicts.
	_, err = paperService.LinkPaperByID(projectB.ID, created.PaperID, LinkMetadata{})
	requireConflict(t, err)

	// Linking an unknown paper is NotFound: this path never creates.
	_, err = paperService.LinkPaperByID(projectB.ID, uuid.New(), LinkMetadata{})
	requireNotFound(t, err)
}

func TestLinksAreIndependentAcrossProjects(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	projectA := createTestProject(t, db, user.ID, "review A")
	projectB := createTestProject(t, db, user.ID, "review B")
	paperService := NewPaperService(db)
	projectService := NewProjectService(db)

	linkA, err := paperService.AddPaperToProject(projectA.ID, PaperInput{
		DOI:   strPtr("10.1/x"),
		Title: "T",
	}, LinkMetadata{InclusionReason: strPtr("reason A")})
	require.NoError(t, err)

	linkB, err := paperService.LinkPaperByID(projectB.ID, linkA.PaperID, LinkMetadata{
		InclusionReason: strPtr("reason B"),
	})
	require.NoError(t, err)

	require.NoError(t, projectService.DeleteProject(projectA.ID, user.ID))

	// The other project's link and the canonical paper both survive.
	kept, err := paperService.GetProjectPaper(projectB.ID, linkB.PaperID)
	require.NoError(t, err)
	assert.Equal(t, "reason B", *kept.InclusionReason)

	var papers int64
	require.NoError(t, db.Model(&models.Paper{}).Count(&papers).Error)
	assert.EqualValues(t, 1, papers)
}

func TestGetProjectPaperNotInProject(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	project := createTestProject(t, db, user.ID, "review")
	paperService := NewPaperService(db)

	_, err := paperService.GetProjectPaper(project.ID, uuid.New())
	requireNotFound(t, err)
}

func TestListProjectPapersPagination(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	project := createTestProject(t, db, user.ID, "review")
	paperService := NewPaperService(db)

	for i := 0; i < 5; i++ {
		_, err := paperService.AddPaperToProject(project.ID, PaperInput{
			DOI:   strPtr("10.1/paper-" + string(rune('a'+i))),
			Title: "T",
		}, LinkMetadata{})
		require.NoError(t, err)
	}

	window, err := paperService.ListProjectPapers(project.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, window, 2)

	tail, err := paperService.ListProjectPapers(project.ID, 4, 50)
	require.NoError(t, err)
	assert.Len(t, tail, 1)

	beyond, err := paperService.ListProjectPapers(project.ID, 10, 50)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestImportBibtex(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	project := createTestProject(t, db, user.ID, "review")
	paperService := NewPaperService(db)

	// Pre-link one of the two entries so the import has to skip it.
	_, err := paperService.AddPaperToProject(project.ID, PaperInput{
		DOI:   strPtr("10.1000/alpha"),
		Title: "Alpha",
	}, LinkMetadata{})
	require.NoError(t, err)

	content := `@article{alpha,
  title   = {Alpha},
  author  = {Jane Doe and John Roe},
  year    = {2020},
  doi     = {10.1000/alpha},
}
@article{beta,
  title   = {Beta},
  author  = {Mary Major},
  year    = {2021},
  journal = {arXiv:2101.00001},
}`

	result, err := paperService.ImportBibtex(project.ID, content)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Added, 1)
	assert.Equal(t, "Beta", result.Added[0].Paper.Title)
	require.NotNil(t, result.Added[0].Paper.ArxivID)
	assert.Equal(t, "2101.00001", *result.Added[0].Paper.ArxivID)

	_, err = paperService.ImportBibtex(project.ID, "@article{broken")
	require.Error(t, err)
}
