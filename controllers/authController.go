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
	"golang.org/x/crypto/bcrypt"

	"golang-advisorybackend/helpers"
	"golang-advisorybackend/middleware"
	"golang-advisorybackend/models"
)

type AuthController struct {
	userCollection *mongo.Collection
	tokens         *helpers.TokenHelper
	log            *logrus.Logger
}

func NewAuthController(userCollection *mongo.Collection, tokens *helpers.TokenHelper, log *logrus.Logger) *AuthController {
	return &AuthController{userCollection: userCollection, tokens: tokens, log: log}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func VerifyPassword(hashed, provided string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(provided)) == nil
}

func (ctrl *AuthController) SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(user); err != nil {
			respondValidation(c, err)
			return
		}

		count, err := ctrl.userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error occurred while checking for the email"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email already registered"})
			return
		}

		hashed, err := HashPassword(*user.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to hash password"})
			return
		}
		user.Password = &hashed

		if user.Role == "" {
			user.Role = models.RoleUser
		}
		user.ID = primitive.NewObjectID()
		user.UserID = user.ID.Hex()
		user.CreatedAt = time.Now()
		user.UpdatedAt = time.Now()

		token, refreshToken, err := ctrl.tokens.GenerateAllTokens(*user.Email, *user.FirstName, *user.LastName, user.Role, user.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to generate tokens"})
			return
		}
		user.Token = &token
		user.RefreshToken = &refreshToken

		if _, err := ctrl.userCollection.InsertOne(ctx, user); err != nil {
			ctrl.log.WithError(err).Error("failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "user was not created"})
			return
		}

		user.Password = nil
		respondData(c, http.StatusCreated, user)
	}
}

func (ctrl *AuthController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var input struct {
			Email    string `json:"email" validate:"email,required"`
			Password string `json:"password" validate:"required"`
		}
		if err := c.BindJSON(&input); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(input); err != nil {
			respondValidation(c, err)
			return
		}

		var user models.User
		err := ctrl.userCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
			return
		}

		if user.Password == nil || !VerifyPassword(*user.Password, input.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
			return
		}

		token, refreshToken, err := ctrl.tokens.GenerateAllTokens(*user.Email, *user.FirstName, *user.LastName, user.Role, user.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to generate tokens"})
			return
		}

		if err := ctrl.tokens.UpdateAllTokens(ctx, token, refreshToken, user.UserID); err != nil {
			ctrl.log.WithError(err).Error("failed to persist tokens")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to persist tokens"})
			return
		}

		user.Password = nil
		user.Token = &token
		user.RefreshToken = &refreshToken
		respondData(c, http.StatusOK, user)
	}
}

func (ctrl *AuthController) RefreshToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var input struct {
			RefreshToken string `json:"refresh_token" validate:"required"`
		}
		if err := c.BindJSON(&input); err != nil {
			respondValidation(c, err)
			return
		}
		if err := validate.Struct(input); err != nil {
			respondValidation(c, err)
			return
		}

		claims, err := ctrl.tokens.ValidateToken(input.RefreshToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid or expired token"})
			return
		}

		var user models.User
		if err := ctrl.userCollection.FindOne(ctx, bson.M{"user_id": claims.UserID}).Decode(&user); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not found"})
			return
		}

		token, refreshToken, err := ctrl.tokens.GenerateAllTokens(*user.Email, *user.FirstName, *user.LastName, user.Role, user.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to generate tokens"})
			return
		}

		if err := ctrl.tokens.UpdateAllTokens(ctx, token, refreshToken, user.UserID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to persist tokens"})
			return
		}

		respondData(c, http.StatusOK, gin.H{"token": token, "refresh_token": refreshToken})
	}
}

func (ctrl *AuthController) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		userID := c.GetString(middleware.ContextUserID)

		var user models.User
		if err := ctrl.userCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "user not found"})
			return
		}

		user.Password = nil
		user.Token = nil
		user.RefreshToken = nil
		respondData(c, http.StatusOK, user)
	}
}

func (ctrl *AuthController) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondMessage(c, http.StatusOK, "logged out successfully", nil)
	}
}
