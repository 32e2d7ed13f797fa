package hooks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/query"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProjects struct {
	listCalls int
	getCalls  int
	items     []models.Project
	err       error
}

func (f *fakeProjects) List(context.Context) ([]models.Project, error) {
	f.listCalls++
	return f.items, f.err
}

func (f *fakeProjects) Get(_ context.Context, id string) (*models.Project, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.Project{ID: id}, nil
}

func (f *fakeProjects) Create(_ context.Context, in models.ProjectCreate) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := models.Project{ID: "new", Name: in.Name}
	f.items = append(f.items, p)
	return &p, nil
}

func (f *fakeProjects) Update(_ context.Context, id string, _ models.ProjectUpdate) (*models.Project, error) {
	return &models.Project{ID: id}, f.err
}

func (f *fakeProjects) Delete(context.Context, string) error { return f.err }

type fakeTasks struct {
	queries []models.TaskQuery
	err     error
}

func (f *fakeTasks) List(_ context.Context, q models.TaskQuery) (*models.TaskList, error) {
	f.queries = append(f.queries, q)
	return &models.TaskList{Tasks: []models.Task{{ID: "t1"}}}, f.err
}

func (f *fakeTasks) Get(_ context.Context, id string) (*models.Task, error) {
	return &models.Task{ID: id}, f.err
}

func (f *fakeTasks) Create(context.Context, models.TaskCreate) (*models.Task, error) {
	return &models.Task{ID: "t2"}, f.err
}

func (f *fakeTasks) Update(_ context.Context, id string, _ models.TaskUpdate) (*models.Task, error) {
	return &models.Task{ID: id}, f.err
}

func (f *fakeTasks) Delete(context.Context, string) error { return f.err }

type notes struct {
	ok, bad []string
}

func (n *notes) Success(msg string)        { n.ok = append(n.ok, msg) }
func (n *notes) Error(msg string, _ error) { n.bad = append(n.bad, msg) }

func TestProjects_ListCachedUntilCreate(t *testing.T) {
	svc := &fakeProjects{}
	n := &notes{}
	h := NewProjects(query.NewClient(time.Hour, nil), svc, n)
	ctx := context.Background()

	_, err := h.List(ctx)
	require.NoError(t, err)
	_, err = h.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.listCalls)

	_, err = h.Create(ctx, models.ProjectCreate{Name: "Site"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Project created successfully"}, n.ok)

	list, err := h.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, svc.listCalls)
	require.Len(t, list, 1)
	assert.Equal(t, "Site", list[0].Name)
}

func TestProjects_FailureNotifications(t *testing.T) {
	svc := &fakeProjects{err: errors.New("down")}
	n := &notes{}
	h := NewProjects(query.NewClient(time.Hour, nil), svc, n)
	ctx := context.Background()

	_, _ = h.List(ctx)
	_, _ = h.Get(ctx, "p1")
	_, _ = h.Create(ctx, models.ProjectCreate{})
	_, _ = h.Update(ctx, "p1", models.ProjectUpdate{})
	_ = h.Delete(ctx, "p1")

	assert.Equal(t, []string{
		"Failed to fetch projects",
		"Failed to fetch project details",
		"Failed to create project",
		"Failed to update project",
		"Failed to delete project",
	}, n.bad)
	assert.Empty(t, n.ok)
	assert.Error(t, h.ListState().Err)
}

func TestProjects_GetDisabledForEmptyID(t *testing.T) {
	svc := &fakeProjects{}
	h := NewProjects(query.NewClient(time.Hour, nil), svc, nil)
	_, err := h.Get(context.Background(), "")
	require.ErrorIs(t, err, services.ErrMissingID)
	assert.Zero(t, svc.getCalls)
}

func TestTasks_KeysCaptureEveryParameter(t *testing.T) {
	svc := &fakeTasks{}
	h := NewTasks(query.NewClient(time.Hour, nil), svc, nil)
	ctx := context.Background()

	qs := []models.TaskQuery{
		{},
		{ProjectID: "p1"},
		{ProjectID: "p1", Status: models.StageDone},
		{ProjectID: "p1", Status: models.StageDone, Page: 2, Limit: 10},
		{ProjectID: "p1", Search: "bug"},
	}
	for _, q := range qs {
		_, err := h.List(ctx, q)
		require.NoError(t, err)
	}
	for _, q := range qs {
		_, err := h.List(ctx, q)
		require.NoError(t, err)
	}
	assert.Len(t, svc.queries, len(qs), "second round served from cache")
}

func TestTasks_WritesInvalidateTasksAndProjects(t *testing.T) {
	qc := query.NewClient(time.Hour, nil)
	tsvc, psvc := &fakeTasks{}, &fakeProjects{}
	n := &notes{}
	th := NewTasks(qc, tsvc, n)
	ph := NewProjects(qc, psvc, n)
	ctx := context.Background()

	_, _ = th.List(ctx, models.TaskQuery{ProjectID: "p1"})
	_, _ = ph.List(ctx)

	_, err := th.Update(ctx, "t1", models.TaskUpdate{})
	require.NoError(t, err)

	_, _ = th.List(ctx, models.TaskQuery{ProjectID: "p1"})
	_, _ = ph.List(ctx)
	assert.Len(t, tsvc.queries, 2)
	assert.Equal(t, 2, psvc.listCalls)

	_, err = th.Create(ctx, models.TaskCreate{})
	require.NoError(t, err)
	require.NoError(t, th.Delete(ctx, "t1"))
	assert.Equal(t, []string{"Task updated successfully", "Task created successfully", "Task deleted successfully"}, n.ok)
}

func TestTasks_InvalidStatusRejected(t *testing.T) {
	svc := &fakeTasks{}
	h := NewTasks(query.NewClient(time.Hour, nil), svc, nil)
	_, err := h.List(context.Background(), models.TaskQuery{Status: "nope"})
	require.ErrorIs(t, err, models.ErrInvalidStage)
	assert.Empty(t, svc.queries)

	_, err = h.Get(context.Background(), "")
	require.ErrorIs(t, err, services.ErrMissingID)
}

func TestTasks_FetchFailureNotified(t *testing.T) {
	svc := &fakeTasks{err: errors.New("down")}
	n := &notes{}
	h := NewTasks(query.NewClient(time.Hour, nil), svc, n)
	_, _ = h.List(context.Background(), models.TaskQuery{})
	_, _ = h.Get(context.Background(), "t1")
	assert.Equal(t, []string{"Failed to fetch tasks", "Failed to fetch task details"}, n.bad)
}
