package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`

	// TaskCount is computed on read.
	TaskCount int `json:"taskCount" bson:"-"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
	Version   int       `json:"__v" bson:"__v"`
}

func (p Project) DocID() primitive.ObjectID { return p.ID }
