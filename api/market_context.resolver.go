package api

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Default benchmark set for the market-context panel.
var defaultBenchmarks = []string{"SPY", "AGG", "GLD"}

func (m ApiHandler) marketContext(c *gin.Context) {
	symbols := defaultBenchmarks
	if raw := c.Query("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	}

	quotes, err := m.MarketDataRepository.GetBenchmarks(symbols)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{"benchmarks": quotes})
}
