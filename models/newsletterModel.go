package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NewsletterSubscriber struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	Email          *string            `json:"email" bson:"email" validate:"email,required"`
	Name           string             `json:"name,omitempty" bson:"name,omitempty"`
	IsActive       bool               `json:"is_active" bson:"is_active"`
	SubscribedAt   time.Time          `json:"subscribed_at" bson:"subscribed_at"`
	UnsubscribedAt *time.Time         `json:"unsubscribed_at,omitempty" bson:"unsubscribed_at,omitempty"`
}
