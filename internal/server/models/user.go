// Package models holds the documents stored and served by the stub backend.
// Documents are serialized the way a Mongo-backed API emits them: the
// identifier under "_id" and a version counter under "__v".
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Name    string             `json:"name" bson:"name"`
	Email   string             `json:"email" bson:"email"`
	Country string             `json:"country" bson:"country"`

	// EmailKey is the normalized plaintext email used for lookups. Email
	// itself holds the encrypted form when an encryption key is configured.
	EmailKey     string `json:"-" bson:"emailKey"`
	PasswordHash string `json:"-" bson:"password"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
	Version   int       `json:"__v" bson:"__v"`
}

func (u User) DocID() primitive.ObjectID { return u.ID }
