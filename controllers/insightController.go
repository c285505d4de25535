package controllers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"golang-advisorybackend/models"
)

type InsightController struct {
	insightCollection *mongo.Collection
	log               *logrus.Logger
}

func NewInsightController(insightCollection *mongo.Collection, log *logrus.Logger) *InsightController {
	return &InsightController{insightCollection: insightCollection, log: log}
}

// GetInsights lists published insights only; drafts are reachable through
// the admin update flow.
func (ctrl *InsightController) GetInsights() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		page, _ := strconv.Atoi(c.Query("page"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.Query("limit"))
		if limit < 1 {
			limit = 10
		}

		query := bson.M{"is_published": true}
		if category := c.Query("category"); category != "" {
			query["category"] = category
		}

		total, err := ctrl.insightCollection.CountDocuments(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while counting insights"})
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "published_at", Value: -1}}).
			SetSkip(int64((page - 1) * limit)).
			SetLimit(int64(limit))

		cursor, err := ctrl.insightCollection.Find(ctx, query, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching insights"})
			return
		}

		var insights []models.Insight
		if err := cursor.All(ctx, &insights); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching insights"})
			return
		}

		respondData(c, http.StatusOK, gin.H{
			"insights":    insights,
			"count":       len(insights),
			"total":       total,
			"page":        page,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		})
	}
}

func (ctrl *InsightController) GetInsightBySlug() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		after := options.After
		opts := options.FindOneAndUpdate().SetReturnDocument(after)

		var insight models.Insight
		err := ctrl.insightCollection.FindOneAndUpdate(ctx,
			bson.M{"slug": c.Param("slug")},
			bson.M{"$inc": bson.M{"views": 1}},
			opts,
		).Decode(&insight)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "insight not found"})
			return
		}

		respondData(c, http.StatusOK, insight)
	}
}

func (ctrl *InsightController) CreateInsight() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var insight models.Insight
		if err := c.BindJSON(&insight); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(insight); err != nil {
			respondValidation(c, err)
			return
		}

		insight.ID = primitive.NewObjectID()
		insight.Slug = models.Slugify(*insight.Title)
		if insight.PublishedAt.IsZero() {
			insight.PublishedAt = time.Now()
		}
		insight.Views = 0
		insight.CreatedAt = time.Now()
		insight.UpdatedAt = time.Now()

		if _, err := ctrl.insightCollection.InsertOne(ctx, insight); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "an insight with this slug already exists"})
				return
			}
			ctrl.log.WithError(err).Error("failed to create insight")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create insight"})
			return
		}

		respondData(c, http.StatusCreated, insight)
	}
}

func (ctrl *InsightController) UpdateInsight() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid insight id"})
			return
		}

		var input struct {
			Title       *string   `json:"title"`
			Content     *string   `json:"content"`
			Excerpt     *string   `json:"excerpt"`
			Author      *string   `json:"author"`
			Category    *string   `json:"category" validate:"omitempty,oneof=market_news investment_tips economic_analysis company_news"`
			Tags        *[]string `json:"tags"`
			ImageURL    *string   `json:"image_url"`
			IsPublished *bool     `json:"is_published"`
		}
		if err := c.BindJSON(&input); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(input); err != nil {
			respondValidation(c, err)
			return
		}

		set := bson.M{"updated_at": time.Now()}
		if input.Title != nil {
			set["title"] = *input.Title
			set["slug"] = models.Slugify(*input.Title)
		}
		if input.Content != nil {
			set["content"] = *input.Content
		}
		if input.Excerpt != nil {
			set["excerpt"] = *input.Excerpt
		}
		if input.Author != nil {
			set["author"] = *input.Author
		}
		if input.Category != nil {
			set["category"] = *input.Category
		}
		if input.Tags != nil {
			set["tags"] = *input.Tags
		}
		if input.ImageURL != nil {
			set["image_url"] = *input.ImageURL
		}
		if input.IsPublished != nil {
			set["is_published"] = *input.IsPublished
		}

		after := options.After
		opts := options.FindOneAndUpdate().SetReturnDocument(after)

		var insight models.Insight
		err = ctrl.insightCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&insight)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "insight not found"})
			return
		}

		respondData(c, http.StatusOK, insight)
	}
}

func (ctrl *InsightController) DeleteInsight() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid insight id"})
			return
		}

		result, err := ctrl.insightCollection.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete insight"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "insight not found"})
			return
		}

		respondMessage(c, http.StatusOK, "insight deleted successfully", nil)
	}
}
