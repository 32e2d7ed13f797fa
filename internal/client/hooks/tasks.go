package hooks

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/query"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
)

// taskWrites lists what a task write invalidates. Project task counts are
// derived from tasks, so projects go stale too.
var taskWrites = []string{FamilyTasks, FamilyTask, FamilyProjects, FamilyProject}

type Tasks struct {
	q   *query.Client
	svc services.TaskService
	n   query.Notifier
}

func NewTasks(q *query.Client, svc services.TaskService, n query.Notifier) *Tasks {
	return &Tasks{q: q, svc: svc, n: n}
}

func (h *Tasks) notifyFetchError(msg string, err error) {
	if h.n != nil {
		h.n.Error(msg, err)
	}
}

func (h *Tasks) List(ctx context.Context, q models.TaskQuery) (*models.TaskList, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, models.ErrInvalidStage
	}
	v, err := query.Fetch(ctx, h.q, TasksKey(q), func(ctx context.Context) (*models.TaskList, error) {
		return h.svc.List(ctx, q)
	})
	if err != nil && ctx.Err() == nil {
		h.notifyFetchError("Failed to fetch tasks", err)
	}
	return v, err
}

func (h *Tasks) ListState(q models.TaskQuery) query.State {
	return h.q.State(TasksKey(q))
}

// Get fetches one task. An empty id is a disabled query: nothing is sent.
func (h *Tasks) Get(ctx context.Context, id string) (*models.Task, error) {
	if id == "" {
		return nil, services.ErrMissingID
	}
	v, err := query.Fetch(ctx, h.q, TaskKey(id), func(ctx context.Context) (*models.Task, error) {
		return h.svc.Get(ctx, id)
	})
	if err != nil && ctx.Err() == nil {
		h.notifyFetchError("Failed to fetch task details", err)
	}
	return v, err
}

func (h *Tasks) Create(ctx context.Context, in models.TaskCreate) (*models.Task, error) {
	return query.Mutate(ctx, h.q, h.n, query.Mutation{
		Invalidates: taskWrites,
		Success:     "Task created successfully",
		Failure:     "Failed to create task",
	}, func(ctx context.Context) (*models.Task, error) {
		return h.svc.Create(ctx, in)
	})
}

func (h *Tasks) Update(ctx context.Context, id string, in models.TaskUpdate) (*models.Task, error) {
	return query.Mutate(ctx, h.q, h.n, query.Mutation{
		Invalidates: taskWrites,
		Success:     "Task updated successfully",
		Failure:     "Failed to update task",
	}, func(ctx context.Context) (*models.Task, error) {
		return h.svc.Update(ctx, id, in)
	})
}

func (h *Tasks) Delete(ctx context.Context, id string) error {
	_, err := query.Mutate(ctx, h.q, h.n, query.Mutation{
		Invalidates: taskWrites,
		Success:     "Task deleted successfully",
		Failure:     "Failed to delete task",
	}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, h.svc.Delete(ctx, id)
	})
	return err
}
