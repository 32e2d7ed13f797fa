package tasks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProjects map[primitive.ObjectID]*models.Project

func (f fakeProjects) GetByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	p, ok := f[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func setup(t *testing.T) (*Service, primitive.ObjectID, primitive.ObjectID) {
	t.Helper()
	user := primitive.NewObjectID()
	project := &models.Project{ID: primitive.NewObjectID(), UserID: user, Name: "P"}
	s := NewService(NewMemoryRepository(), fakeProjects{project.ID: project})
	return s, user, project.ID
}

func isValidation(err error) bool {
	var ve *common.ValidationError
	return errors.As(err, &ve)
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	s, user, project := setup(t)
	ctx := context.Background()

	task, err := s.Create(ctx, user, CreateInput{Title: " Write docs ", ProjectID: project})
	require.NoError(t, err)
	assert.Equal(t, "Write docs", task.Title)
	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Nil(t, task.CompletedAt)
	assert.False(t, task.ID.IsZero())

	_, err = s.Create(ctx, user, CreateInput{ProjectID: project})
	assert.True(t, isValidation(err))

	_, err = s.Create(ctx, user, CreateInput{Title: "x", Status: "BLOCKED", ProjectID: project})
	assert.True(t, isValidation(err))

	_, err = s.Create(ctx, primitive.NewObjectID(), CreateInput{Title: "x", ProjectID: project})
	assert.True(t, isValidation(err), "foreign project")
}

func TestUpdate_CompletionTimestamp(t *testing.T) {
	s, user, project := setup(t)
	ctx := context.Background()
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	task, err := s.Create(ctx, user, CreateInput{Title: "t", ProjectID: project})
	require.NoError(t, err)

	done := models.StatusDone
	task, err = s.Update(ctx, user, task.ID, UpdateInput{Status: &done})
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, fixed, *task.CompletedAt)
	assert.Equal(t, 1, task.Version)

	review := models.StatusReview
	task, err = s.Update(ctx, user, task.ID, UpdateInput{Status: &review})
	require.NoError(t, err)
	assert.Nil(t, task.CompletedAt)

	bad := "LATER"
	_, err = s.Update(ctx, user, task.ID, UpdateInput{Status: &bad})
	assert.True(t, isValidation(err))
}

func TestGetAndDelete_ScopedToOwner(t *testing.T) {
	s, user, project := setup(t)
	ctx := context.Background()
	task, err := s.Create(ctx, user, CreateInput{Title: "t", ProjectID: project})
	require.NoError(t, err)

	stranger := primitive.NewObjectID()
	_, err = s.Get(ctx, stranger, task.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, s.Delete(ctx, stranger, task.ID), common.ErrorNotFound)

	require.NoError(t, s.Delete(ctx, user, task.ID))
	_, err = s.Get(ctx, user, task.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList_FilterAndPaginate(t *testing.T) {
	s, user, project := setup(t)
	ctx := context.Background()
	for i := 1; i <= 10; i++ {
		status := models.StatusTodo
		if i%2 == 0 {
			status = models.StatusDone
		}
		_, err := s.Create(ctx, user, CreateInput{Title: fmt.Sprintf("Task %d", i), Status: status, ProjectID: project})
		require.NoError(t, err)
	}

	all, total, err := s.List(ctx, Filter{UserID: user}, Page{})
	require.NoError(t, err)
	assert.Len(t, all, 10)
	assert.Equal(t, 10, total)

	page, total, err := s.List(ctx, Filter{UserID: user}, Page{Page: 1, Limit: 9})
	require.NoError(t, err)
	assert.Len(t, page, 9)
	assert.Equal(t, 10, total)

	page, _, err = s.List(ctx, Filter{UserID: user}, Page{Page: 2, Limit: 9})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Task 10", page[0].Title)

	page, _, err = s.List(ctx, Filter{UserID: user}, Page{Page: 5, Limit: 9})
	require.NoError(t, err)
	assert.Empty(t, page)

	done, total, err := s.List(ctx, Filter{UserID: user, Status: models.StatusDone}, Page{})
	require.NoError(t, err)
	assert.Len(t, done, 5)
	assert.Equal(t, 5, total)

	found, _, err := s.List(ctx, Filter{UserID: user, Search: "TASK 1"}, Page{})
	require.NoError(t, err)
	assert.Len(t, found, 2, "Task 1 and Task 10")

	none, _, err := s.List(ctx, Filter{UserID: primitive.NewObjectID()}, Page{})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, _, err = s.List(ctx, Filter{UserID: user, Status: "NOPE"}, Page{})
	assert.True(t, isValidation(err))
}

func TestList_HugePageIsEmpty(t *testing.T) {
	s, user, project := setup(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := s.Create(ctx, user, CreateInput{Title: fmt.Sprintf("t%d", i), ProjectID: project})
		require.NoError(t, err)
	}

	tests := []struct {
		name string
		page Page
		want int
	}{
		{name: "max page", page: Page{Page: math.MaxInt, Limit: 10}, want: 0},
		{name: "max page and limit", page: Page{Page: math.MaxInt, Limit: math.MaxInt}, want: 0},
		{name: "max limit first page", page: Page{Page: 1, Limit: math.MaxInt}, want: 3},
		{name: "max limit second page", page: Page{Page: 2, Limit: math.MaxInt}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				items []models.Task
				total int
				err   error
			)
			require.NotPanics(t, func() { items, total, err = s.List(ctx, Filter{UserID: user}, tt.page) })
			require.NoError(t, err)
			assert.Len(t, items, tt.want)
			assert.Equal(t, 3, total)
		})
	}
}
