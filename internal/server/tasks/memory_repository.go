package tasks

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/shared/db"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryRepository struct {
	docs *db.Collection[models.Task]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: db.NewCollection[models.Task]()}
}

func (r *MemoryRepository) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	r.docs.Insert(*t)
	return t, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	t, err := r.docs.Get(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *MemoryRepository) List(ctx context.Context, f Filter) ([]models.Task, error) {
	search := strings.ToLower(f.Search)
	return r.docs.Find(func(t models.Task) bool {
		if !f.UserID.IsZero() && t.UserID != f.UserID {
			return false
		}
		if !f.ProjectID.IsZero() && t.ProjectID != f.ProjectID {
			return false
		}
		if f.Status != "" && t.Status != f.Status {
			return false
		}
		return search == "" || strings.Contains(strings.ToLower(t.Title), search)
	}), nil
}

func (r *MemoryRepository) Update(ctx context.Context, t *models.Task) (*models.Task, error) {
	if err := r.docs.Replace(*t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.docs.Delete(id)
}

func (r *MemoryRepository) CountByProject(ctx context.Context, projectID primitive.ObjectID) (int, error) {
	return r.docs.Count(func(t models.Task) bool { return t.ProjectID == projectID }), nil
}

func (r *MemoryRepository) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int, error) {
	return r.docs.DeleteWhere(func(t models.Task) bool { return t.ProjectID == projectID }), nil
}
