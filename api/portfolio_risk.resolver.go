package api

import (
	"errors"
	"fmt"

	"rminsights/internal/calculator"

	"github.com/gin-gonic/gin"
)

type PortfolioRiskRequest struct {
	ClientID string `json:"clientID"`
}

func (m ApiHandler) portfolioRisk(c *gin.Context) {
	var requestBody PortfolioRiskRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.ClientID == "" {
		returnErrorJsonCode(fmt.Errorf("clientID is required"), c, 400)
		return
	}

	report, err := m.ClientInsightsHandler.PortfolioRisk(c.Request.Context(), requestBody.ClientID)
	if err != nil {
		if errors.Is(err, calculator.ErrNoHoldings) {
			// An empty book is a data gap, not a server fault.
			c.JSON(200, gin.H{
				"client_id":    requestBody.ClientID,
				"error":        err.Error(),
				"risk_metrics": gin.H{},
			})
			return
		}
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, report)
}
