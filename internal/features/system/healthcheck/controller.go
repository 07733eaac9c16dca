package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/healthcheck", c.CheckHealth)
}

// CheckHealth
// @Summary Check system health
// @Description Checks the database, the cache and the disk usage of the working directory
// @Tags system
// @Produce json
// @Success 200 {object} HealthcheckResponse
// @Failure 503 {object} HealthcheckResponse
// @Router /system/healthcheck [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	response := c.healthcheckService.Check()

	if response.Status != CheckStatusOk {
		ctx.JSON(http.StatusServiceUnavailable, response)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
