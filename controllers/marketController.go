package controllers

import (
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// basePrices seeds the simulated quote feed. Quotes drift a few percent
// around these values on every request.
var basePrices = map[string]float64{
	"AAPL":  175.50,
	"GOOGL": 140.25,
	"MSFT":  380.75,
	"TSLA":  240.30,
	"AMZN":  145.80,
	"META":  320.45,
}

type StockQuote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type MarketController struct {
	log *logrus.Logger
}

func NewMarketController(log *logrus.Logger) *MarketController {
	return &MarketController{log: log}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func quoteFor(symbol string) StockQuote {
	base := basePrices[symbol]
	change := round2(base * (rand.Float64()*0.04 - 0.02))
	price := round2(base + change)

	return StockQuote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: round2(change / base * 100),
		UpdatedAt:     time.Now(),
	}
}

// GetQuotes returns simulated quotes for the tracked symbols. An optional
// symbols query parameter narrows the set, e.g. symbols=AAPL,MSFT.
func (ctrl *MarketController) GetQuotes() gin.HandlerFunc {
	return func(c *gin.Context) {
		symbols := make([]string, 0, len(basePrices))
		if raw := c.Query("symbols"); raw != "" {
			for _, s := range strings.Split(raw, ",") {
				s = strings.ToUpper(strings.TrimSpace(s))
				if _, ok := basePrices[s]; ok {
					symbols = append(symbols, s)
				}
			}
			if len(symbols) == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no recognised symbols requested"})
				return
			}
		} else {
			for s := range basePrices {
				symbols = append(symbols, s)
			}
		}

		quotes := make([]StockQuote, 0, len(symbols))
		for _, s := range symbols {
			quotes = append(quotes, quoteFor(s))
		}

		respondData(c, http.StatusOK, gin.H{"quotes": quotes, "count": len(quotes)})
	}
}

// GetQuote returns a single symbol's simulated quote.
func (ctrl *MarketController) GetQuote() gin.HandlerFunc {
	return func(c *gin.Context) {
		symbol := strings.ToUpper(c.Param("symbol"))
		if _, ok := basePrices[symbol]; !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "symbol not tracked"})
			return
		}

		respondData(c, http.StatusOK, quoteFor(symbol))
	}
}
