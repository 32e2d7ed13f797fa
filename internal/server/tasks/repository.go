package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter selects tasks of one user. Zero fields match everything.
type Filter struct {
	UserID    primitive.ObjectID
	ProjectID primitive.ObjectID
	Status    string
	// Search is matched case-insensitively as a substring of the title.
	Search string
}

type Repository interface {
	Create(ctx context.Context, t *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	List(ctx context.Context, f Filter) ([]models.Task, error)
	Update(ctx context.Context, t *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByProject(ctx context.Context, projectID primitive.ObjectID) (int, error)
	DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int, error)
}
