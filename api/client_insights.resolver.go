package api

import (
	"errors"
	"fmt"

	"rminsights/internal/app"

	"github.com/gin-gonic/gin"
)

type ClientInsightsRequest struct {
	ClientID      string `json:"clientID"`
	WithNarrative bool   `json:"withNarrative"`
}

func (m ApiHandler) clientInsights(c *gin.Context) {
	var requestBody ClientInsightsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.ClientID == "" {
		returnErrorJsonCode(fmt.Errorf("clientID is required"), c, 400)
		return
	}

	insights, err := m.ClientInsightsHandler.GetInsights(c.Request.Context(), requestBody.ClientID, requestBody.WithNarrative)
	if err != nil {
		if errors.Is(err, app.ErrClientNotFound) {
			returnErrorJsonCode(err, c, 404)
			return
		}
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, insights)
}
