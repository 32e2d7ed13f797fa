package services

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/cryptox"
)

const profilePath = "/users/profile"

// UserService reads and edits the profile of the signed-in user.
type UserService interface {
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.UserUpdate) (*models.User, error)
}

type userService struct {
	api    Requester
	cipher *cryptox.FieldCipher
}

func NewUserService(api Requester, cipher *cryptox.FieldCipher) UserService {
	return &userService{api: api, cipher: cipher}
}

func (s *userService) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := s.api.Get(ctx, profilePath, &u); err != nil {
		return nil, err
	}
	return s.cipher.DecryptUserFields(&u), nil
}

func (s *userService) UpdateProfile(ctx context.Context, upd models.UserUpdate) (*models.User, error) {
	var u models.User
	if err := s.api.Put(ctx, profilePath, upd, &u); err != nil {
		return nil, err
	}
	return s.cipher.DecryptUserFields(&u), nil
}
