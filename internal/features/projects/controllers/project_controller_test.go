package projects_controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"opensourcetogether/internal/features/audit_logs"
	github_testing "opensourcetogether/internal/features/github/testing"
	projects_dto "opensourcetogether/internal/features/projects/dto"
	projects_enums "opensourcetogether/internal/features/projects/enums"
	projects_models "opensourcetogether/internal/features/projects/models"
	projects_services "opensourcetogether/internal/features/projects/services"
	projects_testing "opensourcetogether/internal/features/projects/testing"
	users_testing "opensourcetogether/internal/features/users/testing"
	"opensourcetogether/internal/storage"
	"opensourcetogether/internal/util/errs"
	test_utils "opensourcetogether/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_CreateProject_WithValidRequest_CreatesProjectAndRepository(t *testing.T) {
	fake, _ := github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	request := projects_testing.NewCreateProjectRequest()

	project := projects_testing.CreateTestProjectWithRequest(t, router, owner, request)

	assert.Equal(t, request.Title, project.Title)
	assert.Equal(t, owner.UserID, *project.OwnerID)
	assert.Equal(t, owner.UserID, project.Owner.ID)
	assert.Len(t, project.TechStacks, 2)
	assert.Len(t, project.Categories, 1)
	assert.Len(t, project.ProjectRoles, 1)
	assert.Len(t, project.ProjectRoles[0].TechStacks, 1)
	assert.Equal(t, "Realtime updates", project.KeyFeatures[0].Feature)
	assert.Equal(t, "Offline mode", project.KeyFeatures[1].Feature)

	assert.Equal(t, projects_enums.GithubSyncStatusSynced, project.GithubSyncStatus)
	assert.Equal(t, "octocat", project.GithubOwner)
	assert.Equal(t, projects_services.RepositoryNameForTitle(request.Title), project.GithubRepo)
	assert.Equal(t, "https://github.com/octocat/"+project.GithubRepo, project.GithubRepoURL)

	_, err := fake.GetRepository(context.Background(), "octocat", project.GithubRepo)
	assert.NoError(t, err)
}

func Test_CreateProject_WhenGithubFails_ProjectStaysPendingUntilWorkerSyncs(t *testing.T) {
	fake, _ := github_testing.InstallFakeClient(t)
	fake.SetCreateRepositoryErr(errors.New("github is down"))
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()

	project := projects_testing.CreateTestProject(t, router, owner)

	assert.Equal(t, projects_enums.GithubSyncStatusPending, project.GithubSyncStatus)
	assert.Empty(t, project.GithubRepoURL)

	stored, err := projects_services.GetProjectService().GetProjectByID(project.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, stored.GithubSyncAttempts)
	assert.Contains(t, stored.GithubSyncError, "github is down")
	assert.True(t, stored.GithubSyncNextAttemptAt.After(time.Now().UTC()))

	fake.SetCreateRepositoryErr(nil)
	makeProjectDueForSync(t, project.ID)

	err = projects_services.GetGithubSyncBackgroundService().ExecuteAllTasksForTest()
	assert.NoError(t, err)

	synced, err := projects_services.GetProjectService().GetProjectByID(project.ID)
	assert.NoError(t, err)
	assert.Equal(t, projects_enums.GithubSyncStatusSynced, synced.GithubSyncStatus)
	assert.Empty(t, synced.GithubSyncError)
	assert.Nil(t, synced.GithubSyncNextAttemptAt)
}

func Test_CreateProject_WhenRepositoryAlreadyExists_AdoptsIt(t *testing.T) {
	fake, _ := github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	fake.User.Login = owner.Login

	request := projects_testing.NewCreateProjectRequest()
	fake.AddRepository(owner.Login, projects_services.RepositoryNameForTitle(request.Title))

	project := projects_testing.CreateTestProjectWithRequest(t, router, owner, request)

	assert.Equal(t, projects_enums.GithubSyncStatusSynced, project.GithubSyncStatus)
	assert.Equal(t, owner.Login, project.GithubOwner)
}

func Test_CreateProject_WithExistingRepositoryURL_ImportsRepository(t *testing.T) {
	fake, _ := github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	repoName := github_testing.UniqueRepoName("import")
	fake.AddRepository(owner.Login, repoName)

	request := projects_testing.NewCreateProjectRequest()
	request.GithubRepoURL = fmt.Sprintf("https://github.com/%s/%s", owner.Login, repoName)

	project := projects_testing.CreateTestProjectWithRequest(t, router, owner, request)

	assert.Equal(t, projects_enums.GithubSyncStatusSynced, project.GithubSyncStatus)
	assert.Equal(t, owner.Login, project.GithubOwner)
	assert.Equal(t, repoName, project.GithubRepo)
	assert.Equal(t, "# README", project.Readme)
}

func Test_CreateProject_WithRepositoryOfAnotherUser_ReturnsBadRequest(t *testing.T) {
	fake, _ := github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	repoName := github_testing.UniqueRepoName("foreign")
	fake.AddRepository("someone-else", repoName)

	request := projects_testing.NewCreateProjectRequest()
	request.GithubRepoURL = "https://github.com/someone-else/" + repoName

	resp := test_utils.MakePostRequest(t, router, "/api/v1/projects", "Bearer "+owner.Token, request, http.StatusBadRequest)
	test_utils.AssertErrorCode(t, resp, errs.CodeInvalidGithubRepositoryURL)
}

func Test_CreateProject_WithMalformedRepositoryURL_ReturnsBadRequest(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()

	request := projects_testing.NewCreateProjectRequest()
	request.GithubRepoURL = "https://gitlab.com/foo/bar"

	resp := test_utils.MakePostRequest(t, router, "/api/v1/projects", "Bearer "+owner.Token, request, http.StatusBadRequest)
	test_utils.AssertErrorCode(t, resp, errs.CodeInvalidGithubRepositoryURL)
}

func Test_CreateProject_WithDuplicateTitle_ReturnsConflict(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	existing := projects_testing.CreateTestProject(t, router, owner)

	request := projects_testing.NewCreateProjectRequest()
	request.Title = "  " + existing.Title + "  "

	resp := test_utils.MakePostRequest(t, router, "/api/v1/projects", "Bearer "+owner.Token, request, http.StatusConflict)
	test_utils.AssertErrorCode(t, resp, errs.CodeProjectTitleAlreadyExists)
}

func Test_CreateProject_WithInvalidFields_ReturnsValidationErrors(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()

	request := projects_testing.NewCreateProjectRequest()
	request.Description = "short"
	request.TechStackIDs = nil

	resp := test_utils.MakePostRequest(t, router, "/api/v1/projects", "Bearer "+owner.Token, request, http.StatusBadRequest)
	body := test_utils.AssertErrorCode(t, resp, errs.CodeValidationFailed)

	assert.Contains(t, body.Error.Extra, "description")
	assert.Contains(t, body.Error.Extra, "techStacks")
	assert.NotContains(t, body.Error.Extra, "title")
}

func Test_CreateProject_WithUnknownTechStack_ReturnsBadRequest(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()

	request := projects_testing.NewCreateProjectRequest()
	request.TechStackIDs = append(request.TechStackIDs, uuid.New())

	resp := test_utils.MakePostRequest(t, router, "/api/v1/projects", "Bearer "+owner.Token, request, http.StatusBadRequest)
	test_utils.AssertErrorCode(t, resp, errs.CodeTechStackNotFound)
}

func Test_CreateProject_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	router := createProjectsRouter()

	resp := test_utils.MakePostRequest(t, router, "/api/v1/projects", "",
		projects_testing.NewCreateProjectRequest(), http.StatusUnauthorized)
	test_utils.AssertErrorCode(t, resp, errs.CodeUnauthorized)
}

func Test_GetProjects_WithoutToken_ReturnsMatchingProjectsWithStats(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)

	var response projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/projects?q="+url.QueryEscape(project.Title), "", http.StatusOK, &response)

	assert.Equal(t, int64(1), response.Total)
	assert.Equal(t, 20, response.Limit)
	assert.Len(t, response.Projects, 1)
	assert.Equal(t, project.ID, response.Projects[0].ID)
	assert.NotNil(t, response.Projects[0].Stats)
	assert.Equal(t, owner.Login, response.Projects[0].Owner.Login)
}

func Test_GetProjects_FilteredByCategory_ExcludesOtherCategories(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)
	otherCategory := uuid.New()

	var matching projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		fmt.Sprintf("/api/v1/projects?q=%s&categoryId=%s", url.QueryEscape(project.Title), project.Categories[0].ID),
		"", http.StatusOK, &matching)

	var other projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		fmt.Sprintf("/api/v1/projects?q=%s&categoryId=%s", url.QueryEscape(project.Title), otherCategory),
		"", http.StatusOK, &other)

	assert.Equal(t, int64(1), matching.Total)
	assert.Equal(t, int64(0), other.Total)
}

func Test_GetProjects_WithMalformedFilterID_ReturnsBadRequest(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/projects?techStackId=nope", "", http.StatusBadRequest)
	test_utils.AssertErrorCode(t, resp, errs.CodeInvalidRequest)
}

func Test_GetProject_WhenProjectExists_ReturnsProject(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)

	var response projects_dto.ProjectResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/projects/"+project.ID.String(), "", http.StatusOK, &response)

	assert.Equal(t, project.Title, response.Title)
	assert.NotNil(t, response.Stats)
}

func Test_GetProject_WhenProjectMissing_ReturnsNotFound(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/projects/"+uuid.New().String(), "", http.StatusNotFound)
	test_utils.AssertErrorCode(t, resp, errs.CodeProjectNotFound)
}

func Test_GetProject_WithInvalidID_ReturnsBadRequest(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/projects/not-a-uuid", "", http.StatusBadRequest)
	test_utils.AssertErrorCode(t, resp, errs.CodeInvalidRequest)
}

func Test_GetMyProjects_ReturnsOnlyCallersProjects(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	other := users_testing.CreateTestUser()
	mine := projects_testing.CreateTestProject(t, router, owner)
	projects_testing.CreateTestProject(t, router, other)

	var response projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/projects/me", "Bearer "+owner.Token, http.StatusOK, &response)

	assert.Equal(t, int64(1), response.Total)
	assert.Equal(t, mine.ID, response.Projects[0].ID)
}

func Test_GetUserProjects_WhenUserMissing_ReturnsNotFound(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/projects/user/"+uuid.New().String(), "", http.StatusNotFound)
	test_utils.AssertErrorCode(t, resp, errs.CodeUserNotFound)
}

func Test_UpdateProject_WhenUserIsOwner_ProjectUpdated(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)

	newTitle := projects_testing.UniqueProjectTitle()
	newFeatures := []string{"Plugin system"}
	request := projects_dto.UpdateProjectRequestDTO{
		Title:       &newTitle,
		KeyFeatures: &newFeatures,
	}

	var response projects_dto.ProjectResponseDTO
	test_utils.MakePatchRequestAndUnmarshal(t, router,
		"/api/v1/projects/"+project.ID.String(), "Bearer "+owner.Token, request, http.StatusOK, &response)

	assert.Equal(t, newTitle, response.Title)
	assert.Equal(t, project.Description, response.Description)
	assert.Len(t, response.KeyFeatures, 1)
	assert.Equal(t, "Plugin system", response.KeyFeatures[0].Feature)
	assert.Len(t, response.TechStacks, 2)
	assert.Len(t, response.ProjectRoles, 1)
}

func Test_UpdateProject_WhenUserIsNotOwner_ReturnsForbidden(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)

	newTitle := projects_testing.UniqueProjectTitle()
	resp := test_utils.MakePatchRequest(t, router, "/api/v1/projects/"+project.ID.String(),
		"Bearer "+stranger.Token, projects_dto.UpdateProjectRequestDTO{Title: &newTitle}, http.StatusForbidden)
	test_utils.AssertErrorCode(t, resp, errs.CodeProjectModificationDenied)
}

func Test_UpdateProject_WithTitleOfAnotherProject_ReturnsConflict(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	first := projects_testing.CreateTestProject(t, router, owner)
	second := projects_testing.CreateTestProject(t, router, owner)

	resp := test_utils.MakePatchRequest(t, router, "/api/v1/projects/"+second.ID.String(),
		"Bearer "+owner.Token, projects_dto.UpdateProjectRequestDTO{Title: &first.Title}, http.StatusConflict)
	test_utils.AssertErrorCode(t, resp, errs.CodeProjectTitleAlreadyExists)
}

func Test_DeleteProject_WhenUserIsOwner_ProjectDeleted(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)

	test_utils.MakeDeleteRequest(t, router, "/api/v1/projects/"+project.ID.String(), "Bearer "+owner.Token, http.StatusNoContent)
	test_utils.MakeGetRequest(t, router, "/api/v1/projects/"+project.ID.String(), "", http.StatusNotFound)

	var roleCount int64
	storage.GetDb().Model(&projects_models.ProjectRole{}).Where("project_id = ?", project.ID).Count(&roleCount)
	assert.Equal(t, int64(0), roleCount)
}

func Test_DeleteProject_WhenUserIsNotOwner_ReturnsForbidden(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)

	resp := test_utils.MakeDeleteRequest(t, router, "/api/v1/projects/"+project.ID.String(), "Bearer "+stranger.Token, http.StatusForbidden)
	test_utils.AssertErrorCode(t, resp, errs.CodeProjectModificationDenied)
}

func Test_GetProjectAuditLogs_OnlyOwnerSeesProjectHistory(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createProjectsRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()
	project := projects_testing.CreateTestProject(t, router, owner)

	var response audit_logs.GetAuditLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/projects/"+project.ID.String()+"/audit-logs", "Bearer "+owner.Token, http.StatusOK, &response)

	messages := make([]string, 0, len(response.AuditLogs))
	for _, log := range response.AuditLogs {
		messages = append(messages, log.Message)
		assert.Equal(t, project.ID, *log.ProjectID)
	}
	assert.Contains(t, messages, "Project created: "+project.Title)

	test_utils.MakeGetRequest(t, router,
		"/api/v1/projects/"+project.ID.String()+"/audit-logs", "Bearer "+stranger.Token, http.StatusForbidden)
}

func createProjectsRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(GetProjectController(), GetProjectRoleController())
}

func makeProjectDueForSync(t *testing.T, projectID uuid.UUID) {
	err := storage.GetDb().Model(&projects_models.Project{}).
		Where("id = ?", projectID).
		Update("github_sync_next_attempt_at", time.Unix(0, 0).UTC()).Error
	assert.NoError(t, err)
}
