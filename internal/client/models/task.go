package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidStage is returned for a status outside the four known stages.
var ErrInvalidStage = errors.New("invalid task status")

// Stage is one of the four ordered task states.
type Stage string

const (
	StageTodo       Stage = "TODO"
	StageInProgress Stage = "IN_PROGRESS"
	StageReview     Stage = "REVIEW"
	StageDone       Stage = "DONE"
)

var stageOrder = []Stage{StageTodo, StageInProgress, StageReview, StageDone}

// Stages returns all stages in workflow order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	return s.index() >= 0
}

func (s Stage) index() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the stage following s. DONE has no successor.
func (s Stage) Next() (Stage, bool) {
	i := s.index()
	if i < 0 || i == len(stageOrder)-1 {
		return "", false
	}
	return stageOrder[i+1], true
}

// Before reports whether s precedes other in the workflow.
func (s Stage) Before(other Stage) bool {
	a, b := s.index(), other.index()
	return a >= 0 && b >= 0 && a < b
}

// ParseStage validates a raw status string.
func ParseStage(raw string) (Stage, error) {
	s := Stage(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStage, raw)
	}
	return s, nil
}

// Task is a unit of work inside a project. CompletedAt is set by the server
// when the status becomes DONE.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Stage      `json:"status"`
	ProjectID   string     `json:"projectId"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt,omitzero"`
	UpdatedAt   time.Time  `json:"updatedAt,omitzero"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type TaskCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Stage  `json:"status,omitempty"`
	ProjectID   string `json:"projectId"`
}

type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Stage  `json:"status,omitempty"`
}

// TaskQuery holds the optional filters of GET /tasks. Zero values are unset.
type TaskQuery struct {
	ProjectID string
	Status    Stage
	Search    string
	Page      int
	Limit     int
}

// Paginated reports whether any pagination parameter is set.
func (q TaskQuery) Paginated() bool {
	return q.Page > 0 || q.Limit > 0
}
