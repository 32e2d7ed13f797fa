package services

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

const projectsPath = "/projects"

type ProjectService interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, p models.ProjectCreate) (*models.Project, error)
	Update(ctx context.Context, id string, p models.ProjectUpdate) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectService struct {
	api Requester
}

func NewProjectService(api Requester) ProjectService {
	return &projectService{api: api}
}

func (s *projectService) List(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.api.Get(ctx, projectsPath, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*models.Project, error) {
	path, err := resourcePath(projectsPath, id)
	if err != nil {
		return nil, err
	}
	var p models.Project
	if err := s.api.Get(ctx, path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *projectService) Create(ctx context.Context, in models.ProjectCreate) (*models.Project, error) {
	var p models.Project
	if err := s.api.Post(ctx, projectsPath, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *projectService) Update(ctx context.Context, id string, in models.ProjectUpdate) (*models.Project, error) {
	path, err := resourcePath(projectsPath, id)
	if err != nil {
		return nil, err
	}
	var p models.Project
	if err := s.api.Put(ctx, path, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	path, err := resourcePath(projectsPath, id)
	if err != nil {
		return err
	}
	return s.api.Delete(ctx, path, nil)
}
