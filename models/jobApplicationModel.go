package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusInterviewed = "interviewed"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusAccepted    = "accepted"
)

type JobApplication struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	FirstName   *string            `json:"first_name" bson:"first_name" validate:"required,min=2,max=100"`
	LastName    *string            `json:"last_name" bson:"last_name" validate:"required,min=2,max=100"`
	Email       *string            `json:"email" bson:"email" validate:"email,required"`
	Phone       *string            `json:"phone" bson:"phone" validate:"required,numeric,min=10,max=15"`
	Position    *string            `json:"position" bson:"position" validate:"required"`
	Department  *string            `json:"department" bson:"department" validate:"required"`
	Location    *string            `json:"location" bson:"location" validate:"required"`
	ResumeURL   string             `json:"resume_url,omitempty" bson:"resume_url,omitempty"`
	CoverLetter string             `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
