package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser    = "user"
	RoleAdvisor = "advisor"
	RoleAdmin   = "admin"
)

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	FirstName    *string            `json:"first_name" bson:"first_name" validate:"required,min=2,max=100"`
	LastName     *string            `json:"last_name" bson:"last_name" validate:"required,min=2,max=100"`
	Email        *string            `json:"email" bson:"email" validate:"email,required"`
	Password     *string            `json:"password,omitempty" bson:"password" validate:"required,min=6"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Role         string             `json:"role" bson:"role"`
	Token        *string            `json:"token,omitempty" bson:"token,omitempty"`
	RefreshToken *string            `json:"refresh_token,omitempty" bson:"refresh_token,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
	UserID       string             `json:"user_id" bson:"user_id"`
}

// FullName joins the name fields for display and notification templates.
func (u *User) FullName() string {
	first, last := "", ""
	if u.FirstName != nil {
		first = *u.FirstName
	}
	if u.LastName != nil {
		last = *u.LastName
	}
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}
