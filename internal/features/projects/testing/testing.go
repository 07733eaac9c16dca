package projects_testing

import (
	"fmt"
	"net/http"
	"testing"

	"opensourcetogether/internal/features/categories"
	projects_dto "opensourcetogether/internal/features/projects/dto"
	projects_enums "opensourcetogether/internal/features/projects/enums"
	"opensourcetogether/internal/features/techstacks"
	users_dto "opensourcetogether/internal/features/users/dto"
	users_middleware "opensourcetogether/internal/features/users/middleware"
	users_services "opensourcetogether/internal/features/users/services"
	test_utils "opensourcetogether/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PublicController interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type ProtectedController interface {
	RegisterProtectedRoutes(router *gin.RouterGroup)
}

// CreateTestRouter mounts the given controllers under /api/v1. A controller
// may implement either or both registration methods.
func CreateTestRouter(controllers ...any) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		if public, ok := controller.(PublicController); ok {
			public.RegisterRoutes(v1)
		}
		if private, ok := controller.(ProtectedController); ok {
			private.RegisterProtectedRoutes(protected)
		}
	}

	return router
}

// NewCreateProjectRequest returns a valid request with a unique title, two key
// features and one open role.
func NewCreateProjectRequest() *projects_dto.CreateProjectRequestDTO {
	techStackIDs := techstacks.GetSeededTechStackIDs(2)
	categoryIDs := categories.GetSeededCategoryIDs(1)

	return &projects_dto.CreateProjectRequestDTO{
		Title:        UniqueProjectTitle(),
		Description:  "A project created by the test suite to exercise the API.",
		CategoryIDs:  categoryIDs,
		TechStackIDs: techStackIDs,
		KeyFeatures:  []string{"Realtime updates", "Offline mode"},
		ProjectRoles: []projects_dto.ProjectRoleRequestDTO{
			{
				Title:        "Backend developer",
				Description:  "Builds the API and the storage layer.",
				TechStackIDs: techStackIDs[:1],
			},
		},
		ExternalLinks: []projects_dto.ExternalLinkDTO{
			{Type: projects_enums.ExternalLinkTypeWebsite, URL: "https://example.com"},
		},
	}
}

// CreateTestProject creates a project through the API and fails the test
// unless it gets 201.
func CreateTestProject(
	t *testing.T,
	router *gin.Engine,
	owner *users_dto.SignInResponseDTO,
) *projects_dto.ProjectResponseDTO {
	return CreateTestProjectWithRequest(t, router, owner, NewCreateProjectRequest())
}

func CreateTestProjectWithRequest(
	t *testing.T,
	router *gin.Engine,
	owner *users_dto.SignInResponseDTO,
	request *projects_dto.CreateProjectRequestDTO,
) *projects_dto.ProjectResponseDTO {
	t.Helper()

	var response projects_dto.ProjectResponseDTO
	test_utils.MakePostRequestAndUnmarshal(t, router, "/api/v1/projects", "Bearer "+owner.Token,
		request, http.StatusCreated, &response)

	if response.Project == nil {
		t.Fatalf("project was not created")
	}

	return &response
}

func UniqueProjectTitle() string {
	return fmt.Sprintf("Test Project %s", uuid.New().String()[:8])
}
