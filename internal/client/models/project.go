package models

import "time"

// Project groups tasks. TaskCount is derived by the server.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      string    `json:"userId"`
	TaskCount   int       `json:"taskCount"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

type ProjectCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
