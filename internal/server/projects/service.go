// Package projects implements project ownership and CRUD for the stub
// backend. Task counts are derived from the task store on every read.
package projects

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStore is the part of the task repository projects depend on.
type TaskStore interface {
	CountByProject(ctx context.Context, projectID primitive.ObjectID) (int, error)
	DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int, error)
}

type Service struct {
	repo  Repository
	tasks TaskStore
}

func NewService(repo Repository, tasks TaskStore) *Service {
	return &Service{repo: repo, tasks: tasks}
}

func (s *Service) withCount(ctx context.Context, p *models.Project) (*models.Project, error) {
	n, err := s.tasks.CountByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.TaskCount = n
	return p, nil
}

func (s *Service) List(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if _, err := s.withCount(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Get returns the project if it belongs to userID. Projects of other users
// are reported as not found.
func (s *Service) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Project, error) {
	p, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.withCount(ctx, p)
}

func (s *Service) owned(ctx context.Context, userID, id primitive.ObjectID) (*models.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, userID primitive.ObjectID, name, description string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("Project name is required")
	}
	now := time.Now().UTC()
	return s.repo.Create(ctx, &models.Project{
		Name:        name,
		Description: strings.TrimSpace(description),
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *Service) Update(ctx context.Context, userID, id primitive.ObjectID, name, description *string) (*models.Project, error) {
	p, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return nil, common.NewValidationError("Project name is required")
		}
		p.Name = n
	}
	if description != nil {
		p.Description = strings.TrimSpace(*description)
	}
	p.UpdatedAt = time.Now().UTC()
	p.Version++

	if p, err = s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.withCount(ctx, p)
}

// Delete removes the project together with its tasks.
func (s *Service) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if _, err := s.tasks.DeleteByProject(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
