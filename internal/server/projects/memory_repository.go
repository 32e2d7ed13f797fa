package projects

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/shared/db"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryRepository struct {
	docs *db.Collection[models.Project]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: db.NewCollection[models.Project]()}
}

func (r *MemoryRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.docs.Insert(*p)
	return p, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	p, err := r.docs.Get(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	return r.docs.Find(func(p models.Project) bool { return p.UserID == userID }), nil
}

func (r *MemoryRepository) Update(ctx context.Context, p *models.Project) (*models.Project, error) {
	if err := r.docs.Replace(*p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.docs.Delete(id)
}
