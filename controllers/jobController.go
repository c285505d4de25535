package controllers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"golang-advisorybackend/helpers"
	"golang-advisorybackend/models"
)

type JobController struct {
	applicationCollection *mongo.Collection
	uploader              *helpers.Uploader
	log                   *logrus.Logger
}

func NewJobController(applicationCollection *mongo.Collection, uploader *helpers.Uploader, log *logrus.Logger) *JobController {
	return &JobController{applicationCollection: applicationCollection, uploader: uploader, log: log}
}

// SubmitApplication accepts a multipart form with the applicant fields and
// an optional resume file.
func (ctrl *JobController) SubmitApplication() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		firstName := c.PostForm("first_name")
		lastName := c.PostForm("last_name")
		email := c.PostForm("email")
		phone := c.PostForm("phone")
		position := c.PostForm("position")
		department := c.PostForm("department")
		location := c.PostForm("location")

		application := models.JobApplication{
			FirstName:   &firstName,
			LastName:    &lastName,
			Email:       &email,
			Phone:       &phone,
			Position:    &position,
			Department:  &department,
			Location:    &location,
			CoverLetter: c.PostForm("cover_letter"),
		}
		if err := validate.Struct(application); err != nil {
			respondValidation(c, err)
			return
		}

		if fileHeader, err := c.FormFile("resume"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "could not read resume file"})
				return
			}
			defer file.Close()

			key := fmt.Sprintf("resumes/%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
			url, err := ctrl.uploader.UploadFile(ctx, key, file, fileHeader.Header.Get("Content-Type"))
			if err != nil {
				ctrl.log.WithError(err).Error("resume upload failed")
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to upload resume"})
				return
			}
			application.ResumeURL = url
		}

		application.ID = primitive.NewObjectID()
		application.Status = models.ApplicationStatusPending
		application.CreatedAt = time.Now()
		application.UpdatedAt = time.Now()

		if _, err := ctrl.applicationCollection.InsertOne(ctx, application); err != nil {
			ctrl.log.WithError(err).Error("failed to save job application")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to submit application"})
			return
		}

		respondMessage(c, http.StatusCreated, "application submitted successfully", application)
	}
}

func (ctrl *JobController) GetApplications() gin.HandlerFunc {
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
		if department := c.Query("department"); department != "" {
			query["department"] = department
		}
		if position := c.Query("position"); position != "" {
			query["position"] = position
		}

		total, err := ctrl.applicationCollection.CountDocuments(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while counting applications"})
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64((page - 1) * limit)).
			SetLimit(int64(limit))

		cursor, err := ctrl.applicationCollection.Find(ctx, query, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching applications"})
			return
		}

		var applications []models.JobApplication
		if err := cursor.All(ctx, &applications); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching applications"})
			return
		}

		respondData(c, http.StatusOK, gin.H{
			"applications": applications,
			"count":        len(applications),
			"total":        total,
			"page":         page,
			"total_pages":  int(math.Ceil(float64(total) / float64(limit))),
		})
	}
}

func (ctrl *JobController) UpdateApplicationStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid application id"})
			return
		}

		var input struct {
			Status string `json:"status" validate:"required,oneof=pending reviewed interviewed rejected accepted"`
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

		var application models.JobApplication
		err = ctrl.applicationCollection.FindOneAndUpdate(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
			opts,
		).Decode(&application)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "application not found"})
			return
		}

		respondData(c, http.StatusOK, application)
	}
}
