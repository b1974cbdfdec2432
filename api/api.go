package api

import (
	"database/sql"
	"fmt"
	"time"

	"bvcfolio/internal/logger"
	"bvcfolio/internal/repository"
	"bvcfolio/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ApiHandler struct {
	Db               *sql.DB
	PortfolioService service.PortfolioService
	MarketService    service.MarketService
	PurchaseService  service.PurchaseService
	FxRepository     repository.FxRateRepository
}

func (m ApiHandler) StartApi(port int) error {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to bvcfolio"})
	})

	router.GET("/market", m.getMarket)
	router.GET("/rates", m.getRates)

	router.GET("/portfolio", m.getPortfolio)
	router.GET("/portfolio/history", m.getPortfolioHistory)
	router.POST("/portfolio/preview", m.previewPurchase)

	router.POST("/portfolio/holdings", m.addHolding)
	router.GET("/portfolio/holdings/:id", m.getHoldingDetails)
	router.PATCH("/portfolio/holdings/:id", m.updateHolding)
	router.DELETE("/portfolio/holdings/:id", m.deleteHolding)

	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	logger.Error(err)
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.Error(err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func logRequestMiddleware(ctx *gin.Context) {
	start := time.Now()
	ctx.Next()
	logger.Info(
		"%s %s -> %d (%dms)",
		ctx.Request.Method,
		ctx.Request.URL.Path,
		ctx.Writer.Status(),
		time.Since(start).Milliseconds(),
	)
}
