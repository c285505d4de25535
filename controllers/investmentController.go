package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"golang-advisorybackend/middleware"
	"golang-advisorybackend/models"
)

type InvestmentController struct {
	investmentCollection *mongo.Collection
	log                  *logrus.Logger
}

func NewInvestmentController(investmentCollection *mongo.Collection, log *logrus.Logger) *InvestmentController {
	return &InvestmentController{investmentCollection: investmentCollection, log: log}
}

// callerIdentity pulls the authenticated user out of the gin context.
func callerIdentity(c *gin.Context) (primitive.ObjectID, string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	role := c.GetString(middleware.ContextRole)

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, role, false
	}
	return oid, role, true
}

func (ctrl *InvestmentController) CreateInvestment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		oid, _, ok := callerIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid user identity"})
			return
		}

		var investment models.Investment
		if err := c.BindJSON(&investment); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(investment); err != nil {
			respondValidation(c, err)
			return
		}

		investment.ID = primitive.NewObjectID()
		investment.UserID = oid
		if investment.Currency == "" {
			investment.Currency = "USD"
		}
		investment.Status = models.InvestmentStatusPending
		investment.CreatedAt = time.Now()
		investment.UpdatedAt = time.Now()

		if _, err := ctrl.investmentCollection.InsertOne(ctx, investment); err != nil {
			ctrl.log.WithError(err).Error("failed to create investment")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create investment"})
			return
		}

		respondData(c, http.StatusCreated, investment)
	}
}

// GetInvestments returns the caller's own investments; admins see everyone's.
func (ctrl *InvestmentController) GetInvestments() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		oid, role, ok := callerIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid user identity"})
			return
		}

		query := bson.M{}
		if role != models.RoleAdmin {
			query["user_id"] = oid
		}
		if status := c.Query("status"); status != "" {
			query["status"] = status
		}

		findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cursor, err := ctrl.investmentCollection.Find(ctx, query, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching investments"})
			return
		}

		var investments []models.Investment
		if err := cursor.All(ctx, &investments); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error while fetching investments"})
			return
		}

		respondData(c, http.StatusOK, gin.H{"investments": investments, "count": len(investments)})
	}
}

func (ctrl *InvestmentController) GetInvestment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		oid, role, ok := callerIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid user identity"})
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid investment id"})
			return
		}

		var investment models.Investment
		if err := ctrl.investmentCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&investment); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "investment not found"})
			return
		}

		if role != models.RoleAdmin && investment.UserID != oid {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "you do not have access to this investment"})
			return
		}

		respondData(c, http.StatusOK, investment)
	}
}

// UpdateInvestmentStatus moves an investment through its review states.
// Admin only; owners cannot approve their own requests.
func (ctrl *InvestmentController) UpdateInvestmentStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid investment id"})
			return
		}

		var input struct {
			Status string `json:"status" validate:"required,oneof=pending approved rejected completed"`
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

		var investment models.Investment
		err = ctrl.investmentCollection.FindOneAndUpdate(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
			opts,
		).Decode(&investment)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "investment not found"})
			return
		}

		respondData(c, http.StatusOK, investment)
	}
}

func (ctrl *InvestmentController) DeleteInvestment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		oid, role, ok := callerIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid user identity"})
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid investment id"})
			return
		}

		query := bson.M{"_id": id}
		if role != models.RoleAdmin {
			query["user_id"] = oid
			query["status"] = models.InvestmentStatusPending
		}

		result, err := ctrl.investmentCollection.DeleteOne(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete investment"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "investment not found or cannot be deleted"})
			return
		}

		respondMessage(c, http.StatusOK, "investment deleted successfully", nil)
	}
}
