package api

import (
	"errors"
	"fmt"

	"bvcfolio/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h ApiHandler) deleteHolding(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid holding id: %w", err), c, 400)
		return
	}

	err = h.PortfolioService.DeleteHolding(c.Request.Context(), id)
	if errors.Is(err, repository.ErrHoldingNotFound) {
		returnErrorJsonCode(err, c, 404)
		return
	} else if err != nil {
		returnErrorJson(fmt.Errorf("failed to delete holding: %w", err), c)
		return
	}

	c.JSON(200, gin.H{"status": "ok"})
}
