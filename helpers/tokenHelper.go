package helpers

import (
	"context"
	"fmt"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SignedDetails is the claim set carried by both access and refresh
// tokens.
type SignedDetails struct {
	Email     string
	FirstName string
	LastName  string
	Role      string
	UserID    string
	jwt.StandardClaims
}

// TokenHelper signs and validates the JWT pair and persists the current
// pair on the user document.
type TokenHelper struct {
	userCollection *mongo.Collection
	secret         []byte
	accessExpiry   time.Duration
	refreshExpiry  time.Duration
}

func NewTokenHelper(userCollection *mongo.Collection, secret string, accessHours, refreshHours int) *TokenHelper {
	return &TokenHelper{
		userCollection: userCollection,
		secret:         []byte(secret),
		accessExpiry:   time.Duration(accessHours) * time.Hour,
		refreshExpiry:  time.Duration(refreshHours) * time.Hour,
	}
}

func (t *TokenHelper) GenerateAllTokens(email, firstName, lastName, role, userID string) (string, string, error) {
	claims := &SignedDetails{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		UserID:    userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Local().Add(t.accessExpiry).Unix(),
		},
	}

	refreshClaims := &SignedDetails{
		Email:  email,
		Role:   role,
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Local().Add(t.refreshExpiry).Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", "", fmt.Errorf("signing access token: %w", err)
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(t.secret)
	if err != nil {
		return "", "", fmt.Errorf("signing refresh token: %w", err)
	}

	return token, refreshToken, nil
}

func (t *TokenHelper) ValidateToken(signedToken string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	if claims.ExpiresAt < time.Now().Local().Unix() {
		return nil, fmt.Errorf("token has expired")
	}

	return claims, nil
}

func (t *TokenHelper) UpdateAllTokens(ctx context.Context, signedToken, signedRefreshToken, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "token", Value: signedToken},
			{Key: "refresh_token", Value: signedRefreshToken},
			{Key: "updated_at", Value: time.Now()},
		}},
	}

	result, err := t.userCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("updating tokens for user %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no user matched id %s", userID)
	}

	return nil
}
