package github_controllers

import (
	"net/http"
	"testing"

	github_client "opensourcetogether/internal/features/github/client"
	github_dto "opensourcetogether/internal/features/github/dto"
	github_testing "opensourcetogether/internal/features/github/testing"
	users_middleware "opensourcetogether/internal/features/users/middleware"
	users_services "opensourcetogether/internal/features/users/services"
	users_testing "opensourcetogether/internal/features/users/testing"
	"opensourcetogether/internal/util/errs"
	test_utils "opensourcetogether/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func Test_GetRepository_WhenRepositoryExists_ReturnsDetailsWithStats(t *testing.T) {
	fake, _ := github_testing.InstallFakeClient(t)
	repoName := github_testing.UniqueRepoName("details")
	fake.AddRepository("octocat", repoName)
	router := createGithubTestRouter()

	var response github_dto.RepositoryDetailsDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/github/repos/octocat/"+repoName, "", http.StatusOK, &response)

	assert.Equal(t, repoName, response.Repository.Name)
	assert.Equal(t, 7, response.Stats.Stars)
	assert.Equal(t, 1, response.Stats.ContributorsCount)
	assert.NotNil(t, response.Stats.LastCommit)
	assert.Equal(t, "# README", response.Readme)
}

func Test_GetRepository_WhenRepositoryMissing_ReturnsNotFound(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createGithubTestRouter()

	resp := test_utils.MakeGetRequest(t, router,
		"/api/v1/github/repos/octocat/"+github_testing.UniqueRepoName("missing"), "", http.StatusNotFound)
	test_utils.AssertErrorCode(t, resp, errs.CodeGithubRequestFailed)
}

func Test_ListMyRepositories_WithConnectedAccount_ReturnsOwnedRepositories(t *testing.T) {
	fake, _ := github_testing.InstallFakeClient(t)
	repoName := github_testing.UniqueRepoName("mine")
	fake.AddRepository("octocat", repoName)
	fake.AddRepository("someone-else", github_testing.UniqueRepoName("theirs"))
	router := createGithubTestRouter()
	user := users_testing.CreateTestUser()

	var response []github_client.Repository
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/github/repos", "Bearer "+user.Token, http.StatusOK, &response)

	assert.Len(t, response, 1)
	assert.Equal(t, repoName, response[0].Name)
}

func Test_ListMyRepositories_WithoutConnectedAccount_ReturnsGithubNotConnected(t *testing.T) {
	_, factory := github_testing.InstallFakeClient(t)
	router := createGithubTestRouter()
	user := users_testing.CreateTestUser()
	factory.Disconnected[user.UserID] = true

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/github/repos", "Bearer "+user.Token, http.StatusUnauthorized)
	test_utils.AssertErrorCode(t, resp, errs.CodeGithubNotConnected)
}

func Test_ListMyRepositories_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	github_testing.InstallFakeClient(t)
	router := createGithubTestRouter()

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/github/repos", "", http.StatusUnauthorized)
	test_utils.AssertErrorCode(t, resp, errs.CodeUnauthorized)
}

func Test_GetMyStats_ReturnsStatsForCurrentLogin(t *testing.T) {
	fake, _ := github_testing.InstallFakeClient(t)
	fake.Stats = github_client.UserStats{TotalStars: 120, ContributedRepos: 4, CommitsLastYear: 321}
	router := createGithubTestRouter()
	user := users_testing.CreateTestUser()

	var response github_dto.UserStatsDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/github/users/me/stats", "Bearer "+user.Token, http.StatusOK, &response)

	assert.Equal(t, user.Login, response.Login)
	assert.Equal(t, 120, response.TotalStars)
	assert.Equal(t, 4, response.ContributedRepos)
	assert.Equal(t, 321, response.CommitsLastYear)
}

func createGithubTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	GetGithubController().RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetGithubController().RegisterProtectedRoutes(protected)

	return router
}
