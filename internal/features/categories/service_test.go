package categories

import (
	"net/http"
	"testing"

	"opensourcetogether/internal/util/errs"
	test_utils "opensourcetogether/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_LoadSeed_HasEighteenNamedCategories(t *testing.T) {
	categories, err := loadSeed()

	assert.NoError(t, err)
	assert.Len(t, categories, 18)
	for _, category := range categories {
		assert.NotEmpty(t, category.Name)
	}
}

func Test_SeedIfEmpty_IsIdempotent(t *testing.T) {
	assert.NoError(t, GetCategoryService().SeedIfEmpty())
	first, err := categoryRepository.Count()
	assert.NoError(t, err)

	assert.NoError(t, GetCategoryService().SeedIfEmpty())
	second, err := categoryRepository.Count()
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func Test_FindByIDs_WithUnknownID_ReturnsCategoryNotFound(t *testing.T) {
	unknown := uuid.New()

	_, err := GetCategoryService().FindByIDs(append(GetSeededCategoryIDs(2), unknown))

	assert.True(t, errs.HasCode(err, errs.CodeCategoryNotFound))
	appErr, _ := errs.As(err)
	assert.Equal(t, []string{unknown.String()}, appErr.Extra["missingIds"])
}

func Test_GetCategories_ReturnsSeededCatalog(t *testing.T) {
	GetSeededCategoryIDs(1)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	GetCategoryController().RegisterRoutes(router.Group("/api/v1"))

	var response []Category
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/categories", "", http.StatusOK, &response)

	names := make([]string, 0, len(response))
	for _, category := range response {
		names = append(names, category.Name)
	}
	assert.Contains(t, names, "Web Development")
	assert.Contains(t, names, "Developer Tools")
}
