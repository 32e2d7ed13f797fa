// Package services contains the resource services of the taskboard client.
// Each service maps domain operations onto REST endpoints through a
// Requester and returns plain model values; user-typed responses have their
// encrypted email decrypted here, at the network boundary.
package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/taskboard/internal/client/gateway"
	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/cryptox"
)

const (
	msgEmptyResponse      = "Empty response from server"
	msgInvalidStructure   = "Invalid response structure from server"
	msgRegistrationFailed = "Registration failed"
	msgLoginFailed        = "Login failed"
)

// AuthService defines account operations.
//
// Contract:
//   - Register: create an account and return the session token with the user.
//   - Login: exchange credentials for a session token and the user.
//   - Logout: ask the server to drop the session cookie.
//
// A 2xx answer without both a token and a user is reported as a structural
// gateway error. Storing the token is up to the caller.
type AuthService interface {
	Register(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
}

type authService struct {
	api    Requester
	cipher *cryptox.FieldCipher
}

// NewAuthService constructs an AuthService. A nil cipher leaves emails as
// the server sent them.
func NewAuthService(api Requester, cipher *cryptox.FieldCipher) AuthService {
	return &authService{api: api, cipher: cipher}
}

func (s *authService) Register(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	return s.authenticate(ctx, "/auth/register", req, msgRegistrationFailed)
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	return s.authenticate(ctx, "/auth/login", req, msgLoginFailed)
}

func (s *authService) Logout(ctx context.Context) error {
	return s.api.Post(ctx, "/auth/logout", nil, nil)
}

func (s *authService) authenticate(ctx context.Context, path string, body any, fallback string) (*models.AuthResponse, error) {
	var raw json.RawMessage
	if err := s.api.Post(ctx, path, body, &raw); err != nil {
		return nil, withFallbackMessage(err, fallback)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, gateway.StructuralError(msgEmptyResponse)
	}

	var resp models.AuthResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &gateway.Error{Kind: gateway.KindStructural, Message: msgInvalidStructure, Err: err}
	}
	if resp.Token == "" || resp.User == nil {
		return nil, gateway.StructuralError(msgInvalidStructure)
	}

	resp.User = s.cipher.DecryptUserFields(resp.User)
	return &resp, nil
}

// withFallbackMessage keeps the server's message and substitutes fallback
// only when the failure carries no text at all.
func withFallbackMessage(err error, fallback string) error {
	if ge, ok := gateway.AsError(err); ok {
		if ge.Message != "" {
			return err
		}
		cp := *ge
		cp.Message = fallback
		return &cp
	}
	if err.Error() == "" {
		return errors.Join(errors.New(fallback), err)
	}
	return err
}
