package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/shared/db"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryRepository struct {
	// serializes the uniqueness check with the insert
	mu   sync.Mutex
	docs *db.Collection[models.User]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: db.NewCollection[models.User]()}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.docs.FindOne(func(u models.User) bool { return u.EmailKey == user.EmailKey }); err == nil {
		return nil, common.ErrUserAlreadyExists
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.docs.Insert(*user)
	return user, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := r.docs.Get(id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *MemoryRepository) GetByEmailKey(ctx context.Context, emailKey string) (*models.User, error) {
	u, err := r.docs.FindOne(func(u models.User) bool { return u.EmailKey == emailKey })
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *MemoryRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.docs.Replace(*user); err != nil {
		return nil, err
	}
	return user, nil
}
