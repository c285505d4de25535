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

type BlogController struct {
	blogCollection *mongo.Collection
	log            *logrus.Logger
}

func NewBlogController(blogCollection *mongo.Collection, log *logrus.Logger) *BlogController {
	return &BlogController{blogCollection: blogCollection, log: log}
}

func (ctrl *BlogController) GetBlogPosts() gin.HandlerFunc {
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

		query := bson.M{}
		if category := c.Query("category"); category != "" {
			query["category"] = category
		}
		if c.Query("published") == "true" {
			query["is_published"] = true
		}

		total, err := ctrl.blogCollection.CountDocuments(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while counting posts"})
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64((page - 1) * limit)).
			SetLimit(int64(limit))

		cursor, err := ctrl.blogCollection.Find(ctx, query, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching posts"})
			return
		}

		var posts []models.BlogPost
		if err := cursor.All(ctx, &posts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching posts"})
			return
		}

		respondData(c, http.StatusOK, gin.H{
			"posts":       posts,
			"count":       len(posts),
			"total":       total,
			"page":        page,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		})
	}
}

func (ctrl *BlogController) GetBlogPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid post id"})
			return
		}

		after := options.After
		opts := options.FindOneAndUpdate().SetReturnDocument(after)

		var post models.BlogPost
		err = ctrl.blogCollection.FindOneAndUpdate(ctx,
			bson.M{"_id": id},
			bson.M{"$inc": bson.M{"views": 1}},
			opts,
		).Decode(&post)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "post not found"})
			return
		}

		respondData(c, http.StatusOK, post)
	}
}

func (ctrl *BlogController) CreateBlogPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var post models.BlogPost
		if err := c.BindJSON(&post); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(post); err != nil {
			respondValidation(c, err)
			return
		}

		post.ID = primitive.NewObjectID()
		if post.Slug == "" {
			post.Slug = models.Slugify(*post.Title)
		}
		if post.Author == "" {
			post.Author = "DPH Admin"
		}
		if post.IsPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Views = 0
		post.CreatedAt = time.Now()
		post.UpdatedAt = time.Now()

		if _, err := ctrl.blogCollection.InsertOne(ctx, post); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "a post with this slug already exists"})
				return
			}
			ctrl.log.WithError(err).Error("failed to create blog post")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create post"})
			return
		}

		respondData(c, http.StatusCreated, post)
	}
}

func (ctrl *BlogController) UpdateBlogPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid post id"})
			return
		}

		var input struct {
			Title       *string   `json:"title"`
			Content     *string   `json:"content"`
			Excerpt     *string   `json:"excerpt"`
			Author      *string   `json:"author"`
			Category    *string   `json:"category"`
			Tags        *[]string `json:"tags"`
			CoverImage  *string   `json:"cover_image"`
			IsPublished *bool     `json:"is_published"`
		}
		if err := c.BindJSON(&input); err != nil {
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
		if input.CoverImage != nil {
			set["cover_image"] = *input.CoverImage
		}
		if input.IsPublished != nil {
			set["is_published"] = *input.IsPublished
			if *input.IsPublished {
				set["published_at"] = time.Now()
			}
		}

		after := options.After
		opts := options.FindOneAndUpdate().SetReturnDocument(after)

		var post models.BlogPost
		err = ctrl.blogCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&post)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "post not found"})
			return
		}

		respondData(c, http.StatusOK, post)
	}
}

func (ctrl *BlogController) DeleteBlogPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid post id"})
			return
		}

		result, err := ctrl.blogCollection.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete post"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "post not found"})
			return
		}

		respondMessage(c, http.StatusOK, "post deleted successfully", nil)
	}
}
