package users

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmailKey(ctx context.Context, emailKey string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
}
