package techstacks

import (
	"net/http"

	"opensourcetogether/internal/util/errs"

	"github.com/gin-gonic/gin"
)

type TechStackController struct {
	techStackService *TechStackService
}

func (c *TechStackController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/techstacks", c.GetTechStacks)
}

// GetTechStacks
// @Summary List tech stacks
// @Description Languages first, then technologies, each sorted by name
// @Tags techstacks
// @Produce json
// @Success 200 {array} TechStack
// @Router /techstacks [get]
func (c *TechStackController) GetTechStacks(ctx *gin.Context) {
	techStacks, err := c.techStackService.GetAll()
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, techStacks)
}
