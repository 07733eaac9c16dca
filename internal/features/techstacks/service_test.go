package techstacks

import (
	"net/http"
	"testing"

	"opensourcetogether/internal/util/errs"
	test_utils "opensourcetogether/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_SeedIfEmpty_CalledTwice_DoesNotDuplicateRows(t *testing.T) {
	assert.NoError(t, GetTechStackService().SeedIfEmpty())
	countAfterFirst, err := techStackRepository.Count()
	assert.NoError(t, err)

	assert.NoError(t, GetTechStackService().SeedIfEmpty())
	countAfterSecond, err := techStackRepository.Count()
	assert.NoError(t, err)

	assert.Greater(t, countAfterFirst, int64(0))
	assert.Equal(t, countAfterFirst, countAfterSecond)
}

func Test_FindByIDs_WithKnownAndDuplicateIDs_ReturnsEachOnce(t *testing.T) {
	ids := GetSeededTechStackIDs(2)

	techStacks, err := GetTechStackService().FindByIDs([]uuid.UUID{ids[0], ids[1], ids[0]})

	assert.NoError(t, err)
	assert.Len(t, techStacks, 2)
}

func Test_FindByIDs_WithUnknownID_ReturnsTechStackNotFound(t *testing.T) {
	ids := GetSeededTechStackIDs(1)
	unknown := uuid.New()

	_, err := GetTechStackService().FindByIDs([]uuid.UUID{ids[0], unknown})

	appErr, ok := errs.As(err)
	assert.True(t, ok)
	assert.Equal(t, errs.CodeTechStackNotFound, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, []string{unknown.String()}, appErr.Extra["missingIds"])
}

func Test_GetTechStacks_ReturnsLanguagesBeforeTechnologies(t *testing.T) {
	GetSeededTechStackIDs(1)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	GetTechStackController().RegisterRoutes(router.Group("/api/v1"))

	var response []TechStack
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/techstacks", "", http.StatusOK, &response)

	assert.NotEmpty(t, response)
	assert.Equal(t, TechStackTypeLanguage, response[0].Type)
	assert.Equal(t, TechStackTypeTech, response[len(response)-1].Type)
}
