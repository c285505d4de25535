package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

type Contact struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Name      *string            `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     *string            `json:"email" bson:"email" validate:"email,required"`
	Subject   *string            `json:"subject" bson:"subject" validate:"required,max=200"`
	Message   *string            `json:"message" bson:"message" validate:"required,max=5000"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
