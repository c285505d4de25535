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

// AdminController serves the back-office dashboard and user management
// endpoints.
type AdminController struct {
	userCollection        *mongo.Collection
	contactCollection     *mongo.Collection
	newsletterCollection  *mongo.Collection
	investmentCollection  *mongo.Collection
	applicationCollection *mongo.Collection
	appointmentCollection *mongo.Collection
	log                   *logrus.Logger
}

func NewAdminController(
	userCollection,
	contactCollection,
	newsletterCollection,
	investmentCollection,
	applicationCollection,
	appointmentCollection *mongo.Collection,
	log *logrus.Logger,
) *AdminController {
	return &AdminController{
		userCollection:        userCollection,
		contactCollection:     contactCollection,
		newsletterCollection:  newsletterCollection,
		investmentCollection:  investmentCollection,
		applicationCollection: applicationCollection,
		appointmentCollection: appointmentCollection,
		log:                   log,
	}
}

// GetDashboard aggregates headline counts plus the most recent contacts
// and investments.
func (ctrl *AdminController) GetDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		counts := gin.H{}
		for name, coll := range map[string]*mongo.Collection{
			"users":        ctrl.userCollection,
			"contacts":     ctrl.contactCollection,
			"investments":  ctrl.investmentCollection,
			"applications": ctrl.applicationCollection,
			"appointments": ctrl.appointmentCollection,
		} {
			total, err := coll.CountDocuments(ctx, bson.M{})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while building dashboard"})
				return
			}
			counts[name] = total
		}

		subscribers, err := ctrl.newsletterCollection.CountDocuments(ctx, bson.M{"is_active": true})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while building dashboard"})
			return
		}
		counts["newsletter_subscribers"] = subscribers

		pendingContacts, err := ctrl.contactCollection.CountDocuments(ctx, bson.M{"status": models.ContactStatusNew})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while building dashboard"})
			return
		}
		counts["pending_contacts"] = pendingContacts

		recentOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(5)

		var recentContacts []models.Contact
		cursor, err := ctrl.contactCollection.Find(ctx, bson.M{}, recentOpts)
		if err == nil {
			_ = cursor.All(ctx, &recentContacts)
		}

		var recentInvestments []models.Investment
		cursor, err = ctrl.investmentCollection.Find(ctx, bson.M{}, recentOpts)
		if err == nil {
			_ = cursor.All(ctx, &recentInvestments)
		}

		respondData(c, http.StatusOK, gin.H{
			"counts":             counts,
			"recent_contacts":    recentContacts,
			"recent_investments": recentInvestments,
		})
	}
}

// GetUsers lists accounts with optional role and name/email search filters.
func (ctrl *AdminController) GetUsers() gin.HandlerFunc {
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
		if role := c.Query("role"); role != "" {
			query["role"] = role
		}
		if search := c.Query("search"); search != "" {
			pattern := primitive.Regex{Pattern: search, Options: "i"}
			query["$or"] = []bson.M{
				{"first_name": pattern},
				{"last_name": pattern},
				{"email": pattern},
			}
		}

		total, err := ctrl.userCollection.CountDocuments(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while counting users"})
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64((page - 1) * limit)).
			SetLimit(int64(limit)).
			SetProjection(bson.M{"password": 0, "token": 0, "refresh_token": 0})

		cursor, err := ctrl.userCollection.Find(ctx, query, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching users"})
			return
		}

		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching users"})
			return
		}

		respondData(c, http.StatusOK, gin.H{
			"users":       users,
			"count":       len(users),
			"total":       total,
			"page":        page,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		})
	}
}

// UpdateUserRole promotes or demotes an account.
func (ctrl *AdminController) UpdateUserRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid user id"})
			return
		}

		var input struct {
			Role string `json:"role" validate:"required,oneof=user advisor admin"`
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
		opts := options.FindOneAndUpdate().
			SetReturnDocument(after).
			SetProjection(bson.M{"password": 0, "token": 0, "refresh_token": 0})

		var user models.User
		err = ctrl.userCollection.FindOneAndUpdate(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"role": input.Role, "updated_at": time.Now()}},
			opts,
		).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "user not found"})
			return
		}

		respondData(c, http.StatusOK, user)
	}
}
