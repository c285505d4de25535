package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	InvestmentStatusPending   = "pending"
	InvestmentStatusApproved  = "approved"
	InvestmentStatusRejected  = "rejected"
	InvestmentStatusCompleted = "completed"
)

type Investment struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id"`
	UserID    primitive.ObjectID     `json:"user_id" bson:"user_id"`
	Type      *string                `json:"type" bson:"type" validate:"required,oneof=stocks bonds real_estate private_equity mutual_funds"`
	Amount    *float64               `json:"amount" bson:"amount" validate:"required,gte=0"`
	Currency  string                 `json:"currency" bson:"currency" validate:"omitempty,oneof=USD EUR GBP JPY CHF"`
	Status    string                 `json:"status" bson:"status"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time              `json:"updated_at" bson:"updated_at"`
}
