// Package hooks binds the resource services to the query cache: reads go
// through cache keys that capture every filter, writes invalidate the
// families they affect and report an outcome to a query.Notifier.
package hooks

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/client/query"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
)

// Cache key families.
const (
	FamilyProjects = "projects"
	FamilyProject  = "project"
	FamilyTasks    = "tasks"
	FamilyTask     = "task"
)

func ProjectsKey() query.Key {
	return query.Key{Family: FamilyProjects}
}

func ProjectKey(id string) query.Key {
	return query.Key{Family: FamilyProject, Scope: id}
}

// TasksKey scopes by project and keys the rest of the query by its
// encoded form, so any change of filter or page is a different entry.
func TasksKey(q models.TaskQuery) query.Key {
	path, err := services.TaskQueryPath(q)
	if err != nil {
		path = "invalid"
	}
	return query.Key{Family: FamilyTasks, Scope: q.ProjectID, Params: path}
}

func TaskKey(id string) query.Key {
	return query.Key{Family: FamilyTask, Scope: id}
}

type Projects struct {
	q   *query.Client
	svc services.ProjectService
	n   query.Notifier
}

func NewProjects(q *query.Client, svc services.ProjectService, n query.Notifier) *Projects {
	return &Projects{q: q, svc: svc, n: n}
}

func (h *Projects) notifyFetchError(msg string, err error) {
	if h.n != nil {
		h.n.Error(msg, err)
	}
}

func (h *Projects) List(ctx context.Context) ([]models.Project, error) {
	v, err := query.Fetch(ctx, h.q, ProjectsKey(), h.svc.List)
	if err != nil && ctx.Err() == nil {
		h.notifyFetchError("Failed to fetch projects", err)
	}
	return v, err
}

// ListState reports loading/error status of the project list.
func (h *Projects) ListState() query.State {
	return h.q.State(ProjectsKey())
}

// Get fetches one project. An empty id is a disabled query: nothing is sent.
func (h *Projects) Get(ctx context.Context, id string) (*models.Project, error) {
	if id == "" {
		return nil, services.ErrMissingID
	}
	v, err := query.Fetch(ctx, h.q, ProjectKey(id), func(ctx context.Context) (*models.Project, error) {
		return h.svc.Get(ctx, id)
	})
	if err != nil && ctx.Err() == nil {
		h.notifyFetchError("Failed to fetch project details", err)
	}
	return v, err
}

func (h *Projects) Create(ctx context.Context, in models.ProjectCreate) (*models.Project, error) {
	return query.Mutate(ctx, h.q, h.n, query.Mutation{
		Invalidates: []string{FamilyProjects},
		Success:     "Project created successfully",
		Failure:     "Failed to create project",
	}, func(ctx context.Context) (*models.Project, error) {
		return h.svc.Create(ctx, in)
	})
}

func (h *Projects) Update(ctx context.Context, id string, in models.ProjectUpdate) (*models.Project, error) {
	return query.Mutate(ctx, h.q, h.n, query.Mutation{
		Invalidates: []string{FamilyProjects, FamilyProject},
		Success:     "Project updated successfully",
		Failure:     "Failed to update project",
	}, func(ctx context.Context) (*models.Project, error) {
		return h.svc.Update(ctx, id, in)
	})
}

// Delete removes a project. The server drops its tasks too, so task
// entries are invalidated as well.
func (h *Projects) Delete(ctx context.Context, id string) error {
	_, err := query.Mutate(ctx, h.q, h.n, query.Mutation{
		Invalidates: []string{FamilyProjects, FamilyProject, FamilyTasks, FamilyTask},
		Success:     "Project deleted successfully",
		Failure:     "Failed to delete project",
	}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, h.svc.Delete(ctx, id)
	})
	return err
}
