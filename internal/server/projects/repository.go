package projects

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error)
	Update(ctx context.Context, p *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
