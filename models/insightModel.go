package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	InsightCategoryMarketNews       = "market_news"
	InsightCategoryInvestmentTips   = "investment_tips"
	InsightCategoryEconomicAnalysis = "economic_analysis"
	InsightCategoryCompanyNews      = "company_news"
)

type Insight struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Title       *string            `json:"title" bson:"title" validate:"required,max=200"`
	Slug        string             `json:"slug" bson:"slug"`
	Content     *string            `json:"content" bson:"content" validate:"required"`
	Excerpt     *string            `json:"excerpt" bson:"excerpt" validate:"required,max=500"`
	Author      *string            `json:"author" bson:"author" validate:"required"`
	Category    string             `json:"category" bson:"category" validate:"required,oneof=market_news investment_tips economic_analysis company_news"`
	Tags        []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	PublishedAt time.Time          `json:"published_at" bson:"published_at"`
	IsPublished bool               `json:"is_published" bson:"is_published"`
	Views       int64              `json:"views" bson:"views"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
