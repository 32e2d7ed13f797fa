package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/cryptox"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Country  string
}

type Service struct {
	repo                  Repository
	cipher                *cryptox.FieldCipher
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

// NewService builds the account service. Emails are stored encrypted when
// cipher holds a key.
func NewService(repo Repository, cipher *cryptox.FieldCipher, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		cipher:                cipher,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := emailKey(in.Email)

	if name == "" {
		return nil, "", common.NewValidationError("Name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", common.NewValidationError("Please provide a valid email")
	}
	if len(in.Password) < minPasswordLength {
		return nil, "", common.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	storedEmail := email
	if s.cipher.Enabled() {
		if storedEmail, err = s.cipher.EncryptField(email); err != nil {
			return nil, "", fmt.Errorf("encrypt email: %w", err)
		}
	}

	now := time.Now().UTC()
	user, err := s.repo.Create(ctx, &models.User{
		Name:         name,
		Email:        storedEmail,
		Country:      strings.TrimSpace(in.Country),
		EmailKey:     email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) generateAccessToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID.Hex(), s.jwtSecret, s.tokenValidityDuration)
}

// Login verifies credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.GetByEmailKey(ctx, emailKey(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a session token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	user, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile changes the name and/or country. Nil fields are kept.
func (s *Service) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, country *string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return nil, common.NewValidationError("Name cannot be empty")
		}
		user.Name = n
	}
	if country != nil {
		user.Country = strings.TrimSpace(*country)
	}
	user.UpdatedAt = time.Now().UTC()
	user.Version++

	return s.repo.Update(ctx, user)
}
