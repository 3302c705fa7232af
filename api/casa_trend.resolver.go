package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type CasaTrendRequest struct {
	ClientID string `json:"clientID"`
}

func (m ApiHandler) casaTrend(c *gin.Context) {
	var requestBody CasaTrendRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.ClientID == "" {
		returnErrorJsonCode(fmt.Errorf("clientID is required"), c, 400)
		return
	}

	payload, err := m.ClientInsightsHandler.CasaTrend(c.Request.Context(), requestBody.ClientID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, payload)
}
