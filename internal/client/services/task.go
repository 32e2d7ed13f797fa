package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

const tasksPath = "/tasks"

type TaskService interface {
	List(ctx context.Context, q models.TaskQuery) (*models.TaskList, error)
	Get(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, t models.TaskCreate) (*models.Task, error)
	Update(ctx context.Context, id string, t models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}

type taskService struct {
	api Requester
}

func NewTaskService(api Requester) TaskService {
	return &taskService{api: api}
}

// TaskQueryPath builds the GET /tasks path for q. Parameters appear in the
// order projectId, status, search, page, limit; unset ones are omitted.
func TaskQueryPath(q models.TaskQuery) (string, error) {
	if q.Status != "" && !q.Status.Valid() {
		return "", models.ErrInvalidStage
	}

	var params []string
	add := func(k, v string) {
		params = append(params, k+"="+v)
	}

	if q.ProjectID != "" {
		add("projectId", url.QueryEscape(q.ProjectID))
	}
	if q.Status != "" {
		add("status", string(q.Status))
	}
	if q.Search != "" {
		add("search", strings.ReplaceAll(url.QueryEscape(q.Search), "+", "%20"))
	}
	if q.Page > 0 {
		add("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		add("limit", strconv.Itoa(q.Limit))
	}

	if len(params) == 0 {
		return tasksPath, nil
	}
	return tasksPath + "?" + strings.Join(params, "&"), nil
}

func (s *taskService) List(ctx context.Context, q models.TaskQuery) (*models.TaskList, error) {
	path, err := TaskQueryPath(q)
	if err != nil {
		return nil, err
	}
	var list models.TaskList
	if err := s.api.Get(ctx, path, &list); err != nil {
		return nil, err
	}
	if list.Tasks == nil {
		list.Tasks = []models.Task{}
	}
	return &list, nil
}

func (s *taskService) Get(ctx context.Context, id string) (*models.Task, error) {
	path, err := resourcePath(tasksPath, id)
	if err != nil {
		return nil, err
	}
	var t models.Task
	if err := s.api.Get(ctx, path, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *taskService) Create(ctx context.Context, in models.TaskCreate) (*models.Task, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, models.ErrInvalidStage
	}
	var t models.Task
	if err := s.api.Post(ctx, tasksPath, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *taskService) Update(ctx context.Context, id string, in models.TaskUpdate) (*models.Task, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, models.ErrInvalidStage
	}
	path, err := resourcePath(tasksPath, id)
	if err != nil {
		return nil, err
	}
	var t models.Task
	if err := s.api.Put(ctx, path, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	path, err := resourcePath(tasksPath, id)
	if err != nil {
		return err
	}
	return s.api.Delete(ctx, path, nil)
}
