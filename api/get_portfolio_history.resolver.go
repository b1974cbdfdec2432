package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type ValuePointResponse struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type GetPortfolioHistoryResponse struct {
	Points []ValuePointResponse `json:"points"`
}

func (h ApiHandler) getPortfolioHistory(c *gin.Context) {
	lookbackDays := 365
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			returnErrorJsonCode(fmt.Errorf("invalid days parameter %q", raw), c, 400)
			return
		}
		lookbackDays = parsed
	}

	points, err := h.PortfolioService.GetValueHistory(
		c.Request.Context(),
		time.Duration(lookbackDays)*24*time.Hour,
	)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to build value history: %w", err), c)
		return
	}

	responseJson := GetPortfolioHistoryResponse{
		Points: make([]ValuePointResponse, 0, len(points)),
	}
	for _, point := range points {
		responseJson.Points = append(responseJson.Points, ValuePointResponse{
			Date:  point.Date,
			Value: point.Value.InexactFloat64(),
		})
	}

	c.JSON(200, responseJson)
}
