package projects_services

import (
	"testing"
	"time"

	projects_dto "opensourcetogether/internal/features/projects/dto"
	projects_models "opensourcetogether/internal/features/projects/models"
	"opensourcetogether/internal/util/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_CanUserModifyProject(t *testing.T) {
	ownerID := uuid.New()
	project := &projects_models.Project{ID: uuid.New(), OwnerID: &ownerID}

	assert.True(t, GetProjectService().CanUserModifyProject(project, ownerID))
	assert.False(t, GetProjectService().CanUserModifyProject(project, uuid.New()))
	assert.False(t, GetProjectService().CanUserModifyProject(project, uuid.Nil))
	assert.False(t, GetProjectService().CanUserModifyProject(&projects_models.Project{}, ownerID))
	assert.False(t, GetProjectService().CanUserModifyProject(nil, ownerID))
}

func Test_SyncRetryDelay_DoublesUpToCap(t *testing.T) {
	assert.Equal(t, time.Minute, syncRetryDelay(1))
	assert.Equal(t, 2*time.Minute, syncRetryDelay(2))
	assert.Equal(t, 8*time.Minute, syncRetryDelay(4))
	assert.Equal(t, githubSyncMaxRetryDelay, syncRetryDelay(20))
	assert.Equal(t, githubSyncMaxRetryDelay, syncRetryDelay(500))
}

func Test_ToFilter_AppliesPagingBounds(t *testing.T) {
	filter, err := toFilter(&projects_dto.GetProjectsRequestDTO{Limit: 1000, Offset: -5, Query: "  cli  "})

	assert.NoError(t, err)
	assert.Equal(t, maxProjectsLimit, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
	assert.Equal(t, "cli", filter.Query)

	filter, err = toFilter(&projects_dto.GetProjectsRequestDTO{})
	assert.NoError(t, err)
	assert.Equal(t, defaultProjectsLimit, filter.Limit)
	assert.Nil(t, filter.CategoryID)
}

func Test_ToFilter_WithMalformedIDs_ReturnsInvalidRequest(t *testing.T) {
	_, err := toFilter(&projects_dto.GetProjectsRequestDTO{CategoryID: "web"})
	assert.True(t, errs.HasCode(err, errs.CodeInvalidRequest))

	_, err = toFilter(&projects_dto.GetProjectsRequestDTO{TechStackID: "go"})
	assert.True(t, errs.HasCode(err, errs.CodeInvalidRequest))
}

func Test_TechStackRefs_DropsDuplicates(t *testing.T) {
	id := uuid.New()
	other := uuid.New()

	refs := techStackRefs([]uuid.UUID{id, other, id})

	assert.Len(t, refs, 2)
	assert.Equal(t, id, refs[0].ID)
	assert.Equal(t, other, refs[1].ID)
}
