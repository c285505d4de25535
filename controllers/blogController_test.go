package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"golang-advisorybackend/logger"
	"golang-advisorybackend/models"
)

// Registered with the same path as the public router so the parameter
// name and the handler's lookup stay in sync.
func blogRouter(ctrl *BlogController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/blog/:id", ctrl.GetBlogPost())
	return router
}

func TestGetBlogPost(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("fetch by id returns the post with incremented views", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "Market Outlook 2025"},
			{Key: "slug", Value: "market-outlook-2025"},
			{Key: "content", Value: "body"},
			{Key: "excerpt", Value: "summary"},
			{Key: "views", Value: int64(4)},
		}}))

		router := blogRouter(NewBlogController(mt.Coll, logger.New("error")))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/blog/"+id.Hex(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(mt, http.StatusOK, w.Code)

		var body struct {
			Success bool            `json:"success"`
			Data    models.BlogPost `json:"data"`
		}
		assert.NoError(mt, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(mt, body.Success)
		assert.Equal(mt, id, body.Data.ID)
		assert.Equal(mt, "market-outlook-2025", body.Data.Slug)
		assert.Equal(mt, int64(4), body.Data.Views)
	})

	mt.Run("unknown id returns not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		router := blogRouter(NewBlogController(mt.Coll, logger.New("error")))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/blog/"+primitive.NewObjectID().Hex(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(mt, http.StatusNotFound, w.Code)
	})

	mt.Run("malformed id is rejected before the lookup", func(mt *mtest.T) {
		router := blogRouter(NewBlogController(mt.Coll, logger.New("error")))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/blog/not-an-objectid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
	})
}
