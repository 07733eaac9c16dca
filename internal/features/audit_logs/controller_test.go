package audit_logs

import (
	"fmt"
	"net/http"
	"testing"

	users_middleware "opensourcetogether/internal/features/users/middleware"
	users_services "opensourcetogether/internal/features/users/services"
	users_testing "opensourcetogether/internal/features/users/testing"
	test_utils "opensourcetogether/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_GetMyAuditLogs_ReturnsOnlyCallersLogs(t *testing.T) {
	user1 := users_testing.CreateTestUser()
	user2 := users_testing.CreateTestUser()
	router := createRouter()
	service := GetAuditLogService()
	testID := uuid.New().String()

	user1Message := fmt.Sprintf("user1 log %s", testID)
	user2Message := fmt.Sprintf("user2 log %s", testID)
	createAuditLog(service, user1Message, &user1.UserID, nil)
	createAuditLog(service, user2Message, &user2.UserID, nil)

	var response GetAuditLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/audit-logs/me?limit=100", "Bearer "+user1.Token, http.StatusOK, &response)

	messages := extractMessages(response.AuditLogs)
	assert.Contains(t, messages, user1Message)
	assert.NotContains(t, messages, user2Message)
	for _, log := range response.AuditLogs {
		assert.Equal(t, user1.UserID, *log.UserID)
		assert.Equal(t, user1.Login, *log.UserLogin)
	}
}

func Test_GetMyAuditLogs_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	router := createRouter()

	test_utils.MakeGetRequest(t, router, "/api/v1/audit-logs/me", "", http.StatusUnauthorized)
}

func createRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupDependencies()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetAuditLogController().RegisterRoutes(protected)

	return router
}
