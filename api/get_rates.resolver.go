package api

import (
	"github.com/gin-gonic/gin"
)

type GetRatesResponse struct {
	OfficialUsdVes float64  `json:"officialUsdVes"`
	ParallelUsdVes *float64 `json:"parallelUsdVes,omitempty"`
}

func (h ApiHandler) getRates(c *gin.Context) {
	ctx := c.Request.Context()

	responseJson := GetRatesResponse{
		OfficialUsdVes: h.FxRepository.OfficialUsdRate(ctx).InexactFloat64(),
	}
	if parallel, ok := h.FxRepository.ParallelUsdRate(ctx); ok {
		rate := parallel.InexactFloat64()
		responseJson.ParallelUsdVes = &rate
	}

	c.JSON(200, responseJson)
}
