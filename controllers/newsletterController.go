package controllers

import (
	"context"
	"errors"
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

type NewsletterController struct {
	subscriberCollection *mongo.Collection
	log                  *logrus.Logger
}

func NewNewsletterController(subscriberCollection *mongo.Collection, log *logrus.Logger) *NewsletterController {
	return &NewsletterController{subscriberCollection: subscriberCollection, log: log}
}

func (ctrl *NewsletterController) Subscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var input struct {
			Email string `json:"email" validate:"email,required"`
			Name  string `json:"name"`
		}
		if err := c.BindJSON(&input); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(input); err != nil {
			respondValidation(c, err)
			return
		}

		var existing models.NewsletterSubscriber
		err := ctrl.subscriberCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing)
		if err == nil {
			if existing.IsActive {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email already subscribed"})
				return
			}
			_, err := ctrl.subscriberCollection.UpdateOne(ctx,
				bson.M{"_id": existing.ID},
				bson.M{
					"$set":   bson.M{"is_active": true},
					"$unset": bson.M{"unsubscribed_at": ""},
				},
			)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to re-subscribe"})
				return
			}
			respondMessage(c, http.StatusOK, "successfully re-subscribed", nil)
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to subscribe"})
			return
		}

		subscriber := models.NewsletterSubscriber{
			ID:           primitive.NewObjectID(),
			Email:        &input.Email,
			Name:         input.Name,
			IsActive:     true,
			SubscribedAt: time.Now(),
		}
		if _, err := ctrl.subscriberCollection.InsertOne(ctx, subscriber); err != nil {
			ctrl.log.WithError(err).Error("failed to store subscriber")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to subscribe"})
			return
		}

		respondMessage(c, http.StatusCreated, "successfully subscribed", subscriber)
	}
}

func (ctrl *NewsletterController) Unsubscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var input struct {
			Email string `json:"email" validate:"email,required"`
		}
		if err := c.BindJSON(&input); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(input); err != nil {
			respondValidation(c, err)
			return
		}

		now := time.Now()
		result, err := ctrl.subscriberCollection.UpdateOne(ctx,
			bson.M{"email": input.Email},
			bson.M{"$set": bson.M{"is_active": false, "unsubscribed_at": now}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to unsubscribe"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "email not found"})
			return
		}

		respondMessage(c, http.StatusOK, "successfully unsubscribed", nil)
	}
}

func (ctrl *NewsletterController) GetSubscribers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		page, _ := strconv.Atoi(c.Query("page"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.Query("limit"))
		if limit < 1 {
			limit = 20
		}

		query := bson.M{}
		if active := c.Query("active"); active != "" {
			query["is_active"] = active == "true"
		}

		total, err := ctrl.subscriberCollection.CountDocuments(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while counting subscribers"})
			return
		}

		activeCount, err := ctrl.subscriberCollection.CountDocuments(ctx, bson.M{"is_active": true})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while counting subscribers"})
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "subscribed_at", Value: -1}}).
			SetSkip(int64((page - 1) * limit)).
			SetLimit(int64(limit))

		cursor, err := ctrl.subscriberCollection.Find(ctx, query, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching subscribers"})
			return
		}

		var subscribers []models.NewsletterSubscriber
		if err := cursor.All(ctx, &subscribers); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching subscribers"})
			return
		}

		respondData(c, http.StatusOK, gin.H{
			"subscribers":  subscribers,
			"count":        len(subscribers),
			"total":        total,
			"active_count": activeCount,
			"page":         page,
			"total_pages":  int(math.Ceil(float64(total) / float64(limit))),
		})
	}
}
