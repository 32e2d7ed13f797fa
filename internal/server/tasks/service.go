// Package tasks implements task CRUD, filtering and pagination for the stub
// backend.
package tasks

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectLookup is the part of the project repository tasks depend on.
type ProjectLookup interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
}

// Page selects a 1-based page. A zero Page means "no pagination".
type Page struct {
	Page  int
	Limit int
}

type CreateInput struct {
	Title       string
	Description string
	Status      string
	ProjectID   primitive.ObjectID
}

type UpdateInput struct {
	Title       *string
	Description *string
	Status      *string
}

type Service struct {
	repo     Repository
	projects ProjectLookup
	now      func() time.Time
}

func NewService(repo Repository, projects ProjectLookup) *Service {
	return &Service{repo: repo, projects: projects, now: func() time.Time { return time.Now().UTC() }}
}

// List returns the tasks matching f and the total before pagination.
func (s *Service) List(ctx context.Context, f Filter, p Page) ([]models.Task, int, error) {
	if f.Status != "" && !models.ValidStatus(f.Status) {
		return nil, 0, common.NewValidationError("Invalid status value")
	}
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total := len(items)
	if p.Page < 1 || p.Limit < 1 {
		return items, total, nil
	}

	// past the last page; checked before multiplying so huge pages cannot overflow
	if p.Page-1 > total/p.Limit {
		return []models.Task{}, total, nil
	}
	start := (p.Page - 1) * p.Limit
	if start >= total {
		return []models.Task{}, total, nil
	}
	end := min(start+p.Limit, total)
	return items[start:end], total, nil
}

func (s *Service) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (s *Service) Create(ctx context.Context, userID primitive.ObjectID, in CreateInput) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.NewValidationError("Task title is required")
	}
	status := in.Status
	if status == "" {
		status = models.StatusTodo
	}
	if !models.ValidStatus(status) {
		return nil, common.NewValidationError("Invalid status value")
	}

	project, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil || project.UserID != userID {
		return nil, common.NewValidationError("Project not found")
	}

	now := s.now()
	t := &models.Task{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		ProjectID:   project.ID,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	setCompletion(t, now)
	return s.repo.Create(ctx, t)
}

func (s *Service) Update(ctx context.Context, userID, id primitive.ObjectID, in UpdateInput) (*models.Task, error) {
	t, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, common.NewValidationError("Task title is required")
		}
		t.Title = title
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	now := s.now()
	if in.Status != nil && *in.Status != t.Status {
		if !models.ValidStatus(*in.Status) {
			return nil, common.NewValidationError("Invalid status value")
		}
		t.Status = *in.Status
		setCompletion(t, now)
	}
	t.UpdatedAt = now
	t.Version++
	return s.repo.Update(ctx, t)
}

// setCompletion stamps completedAt when a task is DONE and clears it otherwise.
func setCompletion(t *models.Task, now time.Time) {
	if t.Status == models.StatusDone {
		if t.CompletedAt == nil {
			ts := now
			t.CompletedAt = &ts
		}
		return
	}
	t.CompletedAt = nil
}

func (s *Service) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
