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
	"golang-advisorybackend/services"
)

type ContactController struct {
	contactCollection *mongo.Collection
	notifier          services.Notifier
	log               *logrus.Logger
}

func NewContactController(contactCollection *mongo.Collection, notifier services.Notifier, log *logrus.Logger) *ContactController {
	return &ContactController{contactCollection: contactCollection, notifier: notifier, log: log}
}

func (ctrl *ContactController) SubmitContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var contact models.Contact
		if err := c.BindJSON(&contact); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(contact); err != nil {
			respondValidation(c, err)
			return
		}

		contact.ID = primitive.NewObjectID()
		contact.Status = models.ContactStatusNew
		contact.CreatedAt = time.Now()
		contact.UpdatedAt = time.Now()

		if _, err := ctrl.contactCollection.InsertOne(ctx, contact); err != nil {
			ctrl.log.WithError(err).Error("failed to store contact submission")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to submit contact form"})
			return
		}

		if err := ctrl.notifier.SendContactConfirmation(*contact.Email, *contact.Name); err != nil {
			ctrl.log.WithError(err).Warn("failed to send contact confirmation")
		}

		respondMessage(c, http.StatusCreated, "contact form submitted successfully", contact)
	}
}

func (ctrl *ContactController) GetContacts() gin.HandlerFunc {
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
		if status := c.Query("status"); status != "" {
			query["status"] = status
		}

		total, err := ctrl.contactCollection.CountDocuments(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while counting contacts"})
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64((page - 1) * limit)).
			SetLimit(int64(limit))

		cursor, err := ctrl.contactCollection.Find(ctx, query, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching contacts"})
			return
		}

		var contacts []models.Contact
		if err := cursor.All(ctx, &contacts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching contacts"})
			return
		}

		respondData(c, http.StatusOK, gin.H{
			"contacts":    contacts,
			"count":       len(contacts),
			"total":       total,
			"page":        page,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		})
	}
}

func (ctrl *ContactController) UpdateContactStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid contact id"})
			return
		}

		var input struct {
			Status string `json:"status" validate:"required,oneof=new read replied"`
		}
		if err := c.BindJSON(&input); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(input); err != nil {
			respondValidation(c, err)
			return
		}

		after := options.After
		opts := options.FindOneAndUpdate().SetReturnDocument(after)

		var contact models.Contact
		err = ctrl.contactCollection.FindOneAndUpdate(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
			opts,
		).Decode(&contact)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "contact not found"})
			return
		}

		respondData(c, http.StatusOK, contact)
	}
}
