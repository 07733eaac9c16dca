package projects_controllers

import (
	"net/http"
	"testing"

	github_testing "opensourcetogether/internal/features/github/testing"
	projects_dto "opensourcetogether/internal/features/projects/dto"
	projects_models "opensourcetogether/internal/features/projects/models"
	projects_testing "opensourcetogether/internal/features/projects/testing"
	"opensourcetogether/internal/features/techstacks"
	users_testing "opensourcetogether/internal/features/users/testing"
	"opensourcetogether/internal/util/errs"
	test_utils "opensourcetogether/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_GetProjectRoles_ReturnsRolesWithoutToken(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)

	var roles []projects_models.ProjectRole
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/project-role/"+project.ID.String(), "", http.StatusOK, &roles)

	assert.Len(t, roles, 1)
	assert.Equal(t, "Backend developer", roles[0].Title)
	assert.False(t, roles[0].IsFilled)
}

func Test_CreateProjectRole_WhenUserIsOwner_RoleCreated(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)

	request := projects_dto.ProjectRoleRequestDTO{
		Title:        "Designer",
		Description:  "Owns the look and feel.",
		TechStackIDs: techstacks.GetSeededTechStackIDs(3),
	}

	var role projects_models.ProjectRole
	test_utils.MakePostRequestAndUnmarshal(t, router,
		"/api/v1/project-role/"+project.ID.String(), "Bearer "+owner.Token, request, http.StatusCreated, &role)

	assert.Equal(t, "Designer", role.Title)
	assert.Equal(t, project.ID, role.ProjectID)
	assert.Len(t, role.TechStacks, 3)
}

func Test_CreateProjectRole_WhenUserIsNotOwner_ReturnsForbidden(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)

	request := projects_dto.ProjectRoleRequestDTO{
		Title:        "Designer",
		Description:  "Owns the look and feel.",
		TechStackIDs: techstacks.GetSeededTechStackIDs(1),
	}

	resp := test_utils.MakePostRequest(t, router,
		"/api/v1/project-role/"+project.ID.String(), "Bearer "+stranger.Token, request, http.StatusForbidden)
	test_utils.AssertErrorCode(t, resp, errs.CodeProjectModificationDenied)
}

func Test_CreateProjectRole_WithoutTechStacks_ReturnsValidationErrors(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)

	request := projects_dto.ProjectRoleRequestDTO{Title: "Designer"}

	resp := test_utils.MakePostRequest(t, router,
		"/api/v1/project-role/"+project.ID.String(), "Bearer "+owner.Token, request, http.StatusBadRequest)
	body := test_utils.AssertErrorCode(t, resp, errs.CodeValidationFailed)

	assert.Contains(t, body.Error.Extra, "description")
	assert.Contains(t, body.Error.Extra, "techStacks")
}

func Test_UpdateProjectRole_MarksRoleFilled(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)
	roleID := project.ProjectRoles[0].ID

	isFilled := true
	var role projects_models.ProjectRole
	test_utils.MakePatchRequestAndUnmarshal(t, router,
		"/api/v1/project-role/"+project.ID.String()+"/"+roleID.String(), "Bearer "+owner.Token,
		projects_dto.UpdateProjectRoleRequestDTO{IsFilled: &isFilled}, http.StatusOK, &role)

	assert.True(t, role.IsFilled)
	assert.Equal(t, "Backend developer", role.Title)
	assert.Len(t, role.TechStacks, 1)
}

func Test_UpdateProjectRole_WithRoleOfAnotherProject_ReturnsBadRequest(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	first := projects_testing.CreateTestProject(t, router, owner)
	second := projects_testing.CreateTestProject(t, router, owner)

	title := "Renamed"
	resp := test_utils.MakePatchRequest(t, router,
		"/api/v1/project-role/"+first.ID.String()+"/"+second.ProjectRoles[0].ID.String(), "Bearer "+owner.Token,
		projects_dto.UpdateProjectRoleRequestDTO{Title: &title}, http.StatusBadRequest)
	test_utils.AssertErrorCode(t, resp, errs.CodeProjectRoleNotInProject)
}

func Test_UpdateProjectRole_WhenRoleMissing_ReturnsNotFound(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)

	title := "Renamed"
	resp := test_utils.MakePatchRequest(t, router,
		"/api/v1/project-role/"+project.ID.String()+"/"+uuid.New().String(), "Bearer "+owner.Token,
		projects_dto.UpdateProjectRoleRequestDTO{Title: &title}, http.StatusNotFound)
	test_utils.AssertErrorCode(t, resp, errs.CodeProjectRoleNotFound)
}

func Test_DeleteProjectRole_WhenUserIsOwner_RoleDeleted(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)
	rolePath := "/api/v1/project-role/" + project.ID.String() + "/" + project.ProjectRoles[0].ID.String()

	test_utils.MakeDeleteRequest(t, router, rolePath, "Bearer "+owner.Token, http.StatusNoContent)

	var roles []projects_models.ProjectRole
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/project-role/"+project.ID.String(), "", http.StatusOK, &roles)
	assert.Empty(t, roles)
}

func Test_DeleteProjectRole_WhenUserIsNotOwner_ReturnsForbidden(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)
	rolePath := "/api/v1/project-role/" + project.ID.String() + "/" + project.ProjectRoles[0].ID.String()

	resp := test_utils.MakeDeleteRequest(t, router, rolePath, "Bearer "+stranger.Token, http.StatusForbidden)
	test_utils.AssertErrorCode(t, resp, errs.CodeProjectModificationDenied)
}
