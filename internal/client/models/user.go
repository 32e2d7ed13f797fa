package models

import "time"

// User is an account as seen by the client. Email is always plaintext here:
// it is decrypted once at the network boundary by the user-typed services.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// SignupRequest is the payload of POST /auth/register.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Country  string `json:"country"`
}

// LoginRequest is the payload of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate is the payload of PUT /users/profile. Nil fields are left unchanged.
type UserUpdate struct {
	Name    *string `json:"name,omitempty"`
	Country *string `json:"country,omitempty"`
}

// AuthResponse is returned by register and login. Both fields are required;
// the auth service rejects a response lacking either.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
