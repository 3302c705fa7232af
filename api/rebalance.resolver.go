package api

import (
	"errors"
	"fmt"

	"rminsights/internal/app"

	"github.com/gin-gonic/gin"
)

type RebalanceRequest struct {
	ClientID string `json:"clientID"`
}

func (m ApiHandler) rebalance(c *gin.Context) {
	var requestBody RebalanceRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.ClientID == "" {
		returnErrorJsonCode(fmt.Errorf("clientID is required"), c, 400)
		return
	}

	plan, err := m.ClientInsightsHandler.RebalancePlan(c.Request.Context(), requestBody.ClientID)
	if err != nil {
		if errors.Is(err, app.ErrClientNotFound) {
			returnErrorJsonCode(err, c, 404)
			return
		}
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, plan)
}
