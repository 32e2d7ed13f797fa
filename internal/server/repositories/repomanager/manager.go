package repomanager

import (
	"github.com/dmitrijs2005/taskboard/internal/server/projects"
	"github.com/dmitrijs2005/taskboard/internal/server/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Projects() projects.Repository
	Tasks() tasks.Repository
}

type InMemoryRepositoryManager struct {
	users    *users.MemoryRepository
	projects *projects.MemoryRepository
	tasks    *tasks.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		projects: projects.NewMemoryRepository(),
		tasks:    tasks.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Projects() projects.Repository {
	return m.projects
}

func (m *InMemoryRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}
