package profiles

import (
	"net/http"
	"testing"

	"opensourcetogether/internal/features/techstacks"
	users_middleware "opensourcetogether/internal/features/users/middleware"
	users_services "opensourcetogether/internal/features/users/services"
	users_testing "opensourcetogether/internal/features/users/testing"
	"opensourcetogether/internal/util/errs"
	test_utils "opensourcetogether/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_UpsertMyProfile_CreatesThenReplaces(t *testing.T) {
	router := createRouter()
	user := users_testing.CreateTestUser()
	techStackIDs := techstacks.GetSeededTechStackIDs(3)

	var created ProfileResponseDTO
	test_utils.MakePutRequestAndUnmarshal(t, router, "/api/v1/profile/me", "Bearer "+user.Token,
		UpsertProfileRequestDTO{
			Bio:          "  Backend engineer  ",
			JobTitle:     "Engineer",
			TechStackIDs: techStackIDs,
			SocialLinks: map[SocialLinkType]string{
				SocialLinkTypeGithub:   "https://github.com/" + user.Login,
				SocialLinkTypeLinkedin: "https://linkedin.com/in/" + user.Login,
			},
		}, http.StatusOK, &created)

	assert.Equal(t, "Backend engineer", created.Bio)
	assert.Len(t, created.TechStacks, 3)
	assert.Len(t, created.SocialLinks, 2)
	assert.Equal(t, user.Login, created.User.Login)

	var replaced ProfileResponseDTO
	test_utils.MakePutRequestAndUnmarshal(t, router, "/api/v1/profile/me", "Bearer "+user.Token,
		UpsertProfileRequestDTO{
			Bio:          "Now writing Go",
			TechStackIDs: techStackIDs[:1],
			SocialLinks: map[SocialLinkType]string{
				SocialLinkTypeWebsite: "https://example.com",
			},
		}, http.StatusOK, &replaced)

	assert.Equal(t, "Now writing Go", replaced.Bio)
	assert.Empty(t, replaced.JobTitle)
	assert.Len(t, replaced.TechStacks, 1)
	assert.Equal(t, map[SocialLinkType]string{SocialLinkTypeWebsite: "https://example.com"}, replaced.SocialLinks)

	var fetched ProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/profile/"+user.UserID.String(), "",
		http.StatusOK, &fetched)
	assert.Equal(t, replaced.Bio, fetched.Bio)
	assert.Len(t, fetched.TechStacks, 1)
}

func Test_UpsertMyProfile_WithInvalidFields_ReturnsValidationErrors(t *testing.T) {
	router := createRouter()
	user := users_testing.CreateTestUser()

	resp := test_utils.MakePutRequest(t, router, "/api/v1/profile/me", "Bearer "+user.Token,
		UpsertProfileRequestDTO{
			Website: "ftp://example.com",
			SocialLinks: map[SocialLinkType]string{
				"MYSPACE":            "https://myspace.com/me",
				SocialLinkTypeGithub: "not a url",
			},
		}, http.StatusBadRequest)
	body := test_utils.AssertErrorCode(t, resp, errs.CodeValidationFailed)

	assert.Contains(t, body.Error.Extra, "website")
	assert.Contains(t, body.Error.Extra, "socialLinks.MYSPACE")
	assert.Contains(t, body.Error.Extra, "socialLinks.GITHUB")
}

func Test_UpsertMyProfile_WithUnknownTechStack_ReturnsBadRequest(t *testing.T) {
	router := createRouter()
	user := users_testing.CreateTestUser()

	resp := test_utils.MakePutRequest(t, router, "/api/v1/profile/me", "Bearer "+user.Token,
		UpsertProfileRequestDTO{TechStackIDs: []uuid.UUID{uuid.New()}}, http.StatusBadRequest)
	test_utils.AssertErrorCode(t, resp, errs.CodeTechStackNotFound)
}

func Test_GetMyProfile_WhenMissing_ReturnsNotFound(t *testing.T) {
	router := createRouter()
	user := users_testing.CreateTestUser()

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/profile/me", "Bearer "+user.Token, http.StatusNotFound)
	test_utils.AssertErrorCode(t, resp, errs.CodeProfileNotFound)
}

func Test_GetProfile_WithUnknownUser_ReturnsNotFound(t *testing.T) {
	router := createRouter()

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/profile/"+uuid.New().String(), "", http.StatusNotFound)
	test_utils.AssertErrorCode(t, resp, errs.CodeUserNotFound)

	resp = test_utils.MakeGetRequest(t, router, "/api/v1/profile/abc", "", http.StatusBadRequest)
	test_utils.AssertErrorCode(t, resp, errs.CodeInvalidRequest)
}

func createRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	GetProfileController().RegisterRoutes(v1)
	GetProfileController().RegisterProtectedRoutes(protected)

	return router
}
