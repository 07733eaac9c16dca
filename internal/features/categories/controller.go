package categories

import (
	"net/http"

	"opensourcetogether/internal/util/errs"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService *CategoryService
}

func (c *CategoryController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/categories", c.GetCategories)
}

// GetCategories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} Category
// @Router /categories [get]
func (c *CategoryController) GetCategories(ctx *gin.Context) {
	categories, err := c.categoryService.GetAll()
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, categories)
}
