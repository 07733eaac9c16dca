package audit_logs

import (
	"testing"
	"time"

	users_testing "opensourcetogether/internal/features/users/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_GetProjectAuditLogs_ReturnsOnlyThatProjectsLogs(t *testing.T) {
	service := GetAuditLogService()
	user1 := users_testing.CreateTestUser()
	user2 := users_testing.CreateTestUser()
	project1ID, project2ID := uuid.New(), uuid.New()

	createAuditLog(service, "project1 first", &user1.UserID, &project1ID)
	createAuditLog(service, "project1 second", &user2.UserID, &project1ID)
	createAuditLog(service, "project2 first", &user1.UserID, &project2ID)
	createAuditLog(service, "no project", &user1.UserID, nil)

	response, err := service.GetProjectAuditLogs(project1ID, &GetAuditLogsRequest{Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), response.Total)

	messages := extractMessages(response.AuditLogs)
	assert.ElementsMatch(t, []string{"project1 first", "project1 second"}, messages)
	for _, log := range response.AuditLogs {
		assert.Equal(t, &project1ID, log.ProjectID)
		assert.NotNil(t, log.UserLogin)
		assert.Nil(t, log.ProjectTitle)
	}
}

func Test_GetProjectAuditLogs_WithPagination_RespectsLimit(t *testing.T) {
	service := GetAuditLogService()
	projectID := uuid.New()

	for i := 0; i < 3; i++ {
		createAuditLog(service, "paged", nil, &projectID)
	}

	response, err := service.GetProjectAuditLogs(projectID, &GetAuditLogsRequest{Limit: 2, Offset: 0})
	assert.NoError(t, err)
	assert.Len(t, response.AuditLogs, 2)
	assert.Equal(t, int64(3), response.Total)
	assert.Equal(t, 2, response.Limit)

	response, err = service.GetProjectAuditLogs(projectID, &GetAuditLogsRequest{Limit: 2, Offset: 2})
	assert.NoError(t, err)
	assert.Len(t, response.AuditLogs, 1)
}

func Test_GetProjectAuditLogs_WithBeforeDate_ExcludesNewerLogs(t *testing.T) {
	service := GetAuditLogService()
	projectID := uuid.New()
	createAuditLog(service, "recent", nil, &projectID)

	beforeTime := time.Now().UTC().Add(-1 * time.Minute)
	response, err := service.GetProjectAuditLogs(projectID, &GetAuditLogsRequest{BeforeDate: &beforeTime})

	assert.NoError(t, err)
	assert.Empty(t, response.AuditLogs)
}

func Test_GetProjectAuditLogs_WithOutOfRangeLimit_UsesDefault(t *testing.T) {
	service := GetAuditLogService()

	for _, limit := range []int{-1, 0, 5000} {
		response, err := service.GetProjectAuditLogs(uuid.New(), &GetAuditLogsRequest{Limit: limit})
		assert.NoError(t, err)
		assert.Equal(t, defaultAuditLogsLimit, response.Limit)
	}
}

func createAuditLog(service *AuditLogService, message string, userID, projectID *uuid.UUID) {
	service.WriteAuditLog(message, userID, projectID)
}

func extractMessages(logs []*AuditLogDTO) []string {
	messages := make([]string, len(logs))
	for i, log := range logs {
		messages[i] = log.Message
	}
	return messages
}
