package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugCollapse = regexp.MustCompile(`-+`)
)

type BlogPost struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Title       *string            `json:"title" bson:"title" validate:"required,max=200"`
	Slug        string             `json:"slug" bson:"slug"`
	Content     *string            `json:"content" bson:"content" validate:"required"`
	Excerpt     *string            `json:"excerpt" bson:"excerpt" validate:"required,max=300"`
	Author      string             `json:"author" bson:"author"`
	Category    string             `json:"category" bson:"category" validate:"required,oneof='Market Insights' 'Investment Tips' 'Company News' 'Economic Analysis' 'General'"`
	Tags        []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	CoverImage  string             `json:"cover_image,omitempty" bson:"cover_image,omitempty"`
	IsPublished bool               `json:"is_published" bson:"is_published"`
	PublishedAt *time.Time         `json:"published_at,omitempty" bson:"published_at,omitempty"`
	Views       int64              `json:"views" bson:"views"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Slugify derives a URL slug from a title: lowercase, alphanumerics and
// hyphens only, runs of whitespace or hyphens collapsed to one hyphen.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugCollapse.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
