package users_controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"opensourcetogether/internal/features/audit_logs"
	users_dto "opensourcetogether/internal/features/users/dto"
	users_middleware "opensourcetogether/internal/features/users/middleware"
	users_models "opensourcetogether/internal/features/users/models"
	users_services "opensourcetogether/internal/features/users/services"
	users_testing "opensourcetogether/internal/features/users/testing"
	"opensourcetogether/internal/util/errs"
	test_utils "opensourcetogether/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_GetCurrentUser_WithValidToken_ReturnsUser(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser()

	var response users_models.User
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/users/me", "Bearer "+user.Token, http.StatusOK, &response)

	assert.Equal(t, user.UserID, response.ID)
	assert.Equal(t, user.Login, response.Login)
}

func Test_GetCurrentUser_WithSessionCookie_ReturnsUser(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser()

	var response users_models.User
	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodGet,
		URL:            "/api/v1/users/me",
		Cookie:         &http.Cookie{Name: users_middleware.SessionCookieName, Value: user.Token},
		ExpectedStatus: http.StatusOK,
	})

	assert.NoError(t, json.Unmarshal(resp.Body, &response))
	assert.Equal(t, user.UserID, response.ID)
}

func Test_GetCurrentUser_WithoutOrWithInvalidToken_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	tests := []struct {
		name  string
		token string
	}{
		{name: "no token", token: ""},
		{name: "garbage token", token: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := test_utils.MakeGetRequest(t, router, "/api/v1/users/me", tt.token, http.StatusUnauthorized)
			test_utils.AssertErrorCode(t, resp, errs.CodeUnauthorized)
		})
	}
}

func Test_GetUser_WhenUserExists_ReturnsPublicFields(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser()

	var response users_dto.PublicUserDTO
	resp := test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/users/"+user.UserID.String(), "", http.StatusOK, &response)

	assert.Equal(t, user.Login, response.Login)
	assert.NotContains(t, string(resp.Body), user.Email)
}

func Test_GetUser_WhenUserDoesNotExist_ReturnsNotFound(t *testing.T) {
	router := createUserTestRouter()

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/users/"+uuid.New().String(), "", http.StatusNotFound)
	test_utils.AssertErrorCode(t, resp, errs.CodeUserNotFound)
}

func Test_BeginGithubLogin_RedirectsToGithubWithState(t *testing.T) {
	router := createUserTestRouter()

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/auth/github?redirect=/projects", "", http.StatusFound)

	location := resp.Headers.Get("Location")
	assert.True(t, strings.HasPrefix(location, "https://github.com/login/oauth/authorize"))
	assert.Contains(t, location, "state=")
}

func Test_CompleteGithubLogin_WithUnknownState_RedirectsWithErrorCode(t *testing.T) {
	router := createUserTestRouter()

	resp := test_utils.MakeGetRequest(t, router,
		"/api/v1/auth/github/callback?state=unknown&code=abc", "", http.StatusFound)

	assert.Contains(t, resp.Headers.Get("Location"), "/auth/error?code="+errs.CodeInvalidOAuthState)
}

func Test_SignOut_ClearsSessionCookie(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser()

	resp := test_utils.MakePostRequest(t, router, "/api/v1/auth/logout", "Bearer "+user.Token, nil, http.StatusNoContent)

	cookie := resp.Headers.Get("Set-Cookie")
	assert.Contains(t, cookie, users_middleware.SessionCookieName+"=")
	assert.Contains(t, cookie, "Max-Age=0")
}

func Test_GetGithubAccessToken_AfterStoringCredentials_ReturnsDecryptedToken(t *testing.T) {
	user := users_testing.CreateTestUserWithGithubToken("gho_stored_token")

	token, err := users_services.GetUserService().GetGithubAccessToken(user.UserID)

	assert.NoError(t, err)
	assert.Equal(t, "gho_stored_token", token)
}

func Test_GetGithubAccessToken_WithoutCredentials_ReturnsNotConnected(t *testing.T) {
	user := users_testing.CreateTestUser()

	_, err := users_services.GetUserService().GetGithubAccessToken(user.UserID)

	assert.ErrorIs(t, err, users_services.ErrGithubNotConnected)
}

func Test_SignInWithGithub_SameGithubAccountTwice_KeepsUserID(t *testing.T) {
	audit_logs.SetupDependencies()
	identity := &users_dto.GithubIdentity{
		ID:    int64(uuid.New().ID()) + 1_000_000_000,
		Login: "octo-" + uuid.New().String()[:6],
		Name:  "Octo",
	}

	first, err := users_services.GetUserService().SignInWithGithub(identity, "gho_first", "public_repo")
	assert.NoError(t, err)

	identity.Name = "Octo Renamed"
	second, err := users_services.GetUserService().SignInWithGithub(identity, "gho_second", "public_repo")
	assert.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)

	user, err := users_services.GetUserService().GetUserByID(first.UserID)
	assert.NoError(t, err)
	assert.Equal(t, "Octo Renamed", user.Name)

	token, err := users_services.GetUserService().GetGithubAccessToken(first.UserID)
	assert.NoError(t, err)
	assert.Equal(t, "gho_second", token)
}

func createUserTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	audit_logs.SetupDependencies()

	v1 := router.Group("/api/v1")
	GetUserController().RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetUserController().RegisterProtectedRoutes(protected)

	return router
}
