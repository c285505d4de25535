package controllers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"golang-advisorybackend/logger"
)

func marketRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewMarketController(logger.New("error"))

	router := gin.New()
	router.GET("/market/quotes", ctrl.GetQuotes())
	router.GET("/market/quotes/:symbol", ctrl.GetQuote())
	return router
}

func TestGetQuotes(t *testing.T) {
	router := marketRouter()

	t.Run("all tracked symbols", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/market/quotes", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Quotes []StockQuote `json:"quotes"`
				Count  int          `json:"count"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, len(basePrices), body.Data.Count)
	})

	t.Run("symbol subset", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/market/quotes?symbols=aapl,MSFT,unknown", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data struct {
				Quotes []StockQuote `json:"quotes"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Data.Quotes, 2)
	})

	t.Run("only unknown symbols", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/market/quotes?symbols=NOPE", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetQuote(t *testing.T) {
	router := marketRouter()

	t.Run("tracked symbol drifts around its base", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/market/quotes/AAPL", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data StockQuote `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "AAPL", body.Data.Symbol)
		assert.InDelta(t, basePrices["AAPL"], body.Data.Price, basePrices["AAPL"]*0.021)
		assert.LessOrEqual(t, math.Abs(body.Data.ChangePercent), 2.1)
	})

	t.Run("untracked symbol", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/market/quotes/ENRON", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
