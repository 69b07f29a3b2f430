package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"ucode/ucode_go_report_builder_service/models"
)

func createSavedQuery(t *testing.T) *models.SavedQuery {
	req := &models.SavedQuery{
		ProjectId:   CreateRandomId(t),
		Name:        fakeData.CompanyName(),
		Description: fakeData.Sentence(5, false),
		WidgetType:  "TABLE",
		Definition: models.ReportQuery{
			Table:   models.TableRef{Table: "orders"},
			Columns: []string{"id", "status"},
			Filters: []models.Filter{
				{Column: "status", Operator: "eq", Value: "paid"},
			},
			Limit: 10,
		},
	}

	saved, err := strg.SavedQuery().Create(context.Background(), req)
	assert.NoError(t, err)
	assert.NotEmpty(t, saved.Id)
	assert.Equal(t, req.Name, saved.Name)

	return saved
}

func TestCreateSavedQuery(t *testing.T) {
	saved := createSavedQuery(t)
	assert.NotNil(t, saved)
}

func TestGetSavedQueryByID(t *testing.T) {
	saved := createSavedQuery(t)

	got, err := strg.SavedQuery().GetByID(context.Background(), &models.SavedQueryPrimaryKey{
		Id:        saved.Id,
		ProjectId: saved.ProjectId,
	})
	assert.NoError(t, err)
	assert.Equal(t, saved.Id, got.Id)
	assert.Equal(t, saved.Definition.Table.Table, got.Definition.Table.Table)
	assert.Equal(t, saved.Definition.Columns, got.Definition.Columns)
}

func TestGetAllSavedQueries(t *testing.T) {
	saved := createSavedQuery(t)

	resp, err := strg.SavedQuery().GetAll(context.Background(), &models.GetAllSavedQueriesRequest{
		ProjectId: saved.ProjectId,
		Limit:     10,
	})
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, resp.Count, int64(1))
	assert.NotEmpty(t, resp.SavedQueries)

	bySearch, err := strg.SavedQuery().GetAll(context.Background(), &models.GetAllSavedQueriesRequest{
		ProjectId: saved.ProjectId,
		Search:    saved.Name,
		Limit:     10,
	})
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, bySearch.Count, int64(1))
}

func TestGetAllSavedQueriesCountMatchesFilters(t *testing.T) {
	saved := createSavedQuery(t)
	createSavedQuery(t)

	// the total must honor the same search filter as the page
	bySearch, err := strg.SavedQuery().GetAll(context.Background(), &models.GetAllSavedQueriesRequest{
		ProjectId: saved.ProjectId,
		Search:    saved.Name,
		Limit:     10,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(len(bySearch.SavedQueries)), bySearch.Count)

	noMatch, err := strg.SavedQuery().GetAll(context.Background(), &models.GetAllSavedQueriesRequest{
		ProjectId: saved.ProjectId,
		Search:    "no-saved-query-has-this-name",
		Limit:     10,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), noMatch.Count)
	assert.Empty(t, noMatch.SavedQueries)

	// no project filter at all must not error on the count
	all, err := strg.SavedQuery().GetAll(context.Background(), &models.GetAllSavedQueriesRequest{
		Limit: 10,
	})
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, all.Count, int64(2))
}

func TestSavedQueryScopedToProject(t *testing.T) {
	saved := createSavedQuery(t)
	otherProject := CreateRandomId(t)

	_, err := strg.SavedQuery().GetByID(context.Background(), &models.SavedQueryPrimaryKey{
		Id:        saved.Id,
		ProjectId: otherProject,
	})
	assert.Error(t, err)

	saved.Name = fakeData.CompanyName()
	foreign := *saved
	foreign.ProjectId = otherProject
	_, err = strg.SavedQuery().Update(context.Background(), &foreign)
	assert.Error(t, err)

	err = strg.SavedQuery().Delete(context.Background(), &models.SavedQueryPrimaryKey{
		Id:        saved.Id,
		ProjectId: otherProject,
	})
	assert.Error(t, err)

	// still reachable under its own project
	got, err := strg.SavedQuery().GetByID(context.Background(), &models.SavedQueryPrimaryKey{
		Id:        saved.Id,
		ProjectId: saved.ProjectId,
	})
	assert.NoError(t, err)
	assert.Equal(t, saved.Id, got.Id)
}

func TestUpdateSavedQuery(t *testing.T) {
	saved := createSavedQuery(t)

	saved.Name = fakeData.CompanyName()
	saved.Definition.Limit = 50

	updated, err := strg.SavedQuery().Update(context.Background(), saved)
	assert.NoError(t, err)
	assert.Equal(t, saved.Name, updated.Name)
	assert.Equal(t, uint64(50), updated.Definition.Limit)
}

func TestDeleteSavedQuery(t *testing.T) {
	saved := createSavedQuery(t)

	err := strg.SavedQuery().Delete(context.Background(), &models.SavedQueryPrimaryKey{
		Id:        saved.Id,
		ProjectId: saved.ProjectId,
	})
	assert.NoError(t, err)

	// soft deleted rows are invisible to reads
	_, err = strg.SavedQuery().GetByID(context.Background(), &models.SavedQueryPrimaryKey{
		Id:        saved.Id,
		ProjectId: saved.ProjectId,
	})
	assert.Error(t, err)
}
