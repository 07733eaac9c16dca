package audit_logs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	defaultAuditLogsLimit = 100
	maxAuditLogsLimit     = 1000
)

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
	logger             *slog.Logger
}

// WriteAuditLog never fails the caller; storage errors are only logged.
func (s *AuditLogService) WriteAuditLog(
	message string,
	userID *uuid.UUID,
	projectID *uuid.UUID,
) {
	auditLog := &AuditLog{
		UserID:    userID,
		ProjectID: projectID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.auditLogRepository.Create(auditLog); err != nil {
		s.logger.Error("failed to create audit log", "error", err)
	}
}

func (s *AuditLogService) GetUserAuditLogs(
	userID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	limit, offset := normalizePage(request)

	auditLogs, err := s.auditLogRepository.GetByUser(userID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get user audit logs: %w", err)
	}

	total, err := s.auditLogRepository.CountByUser(userID, request.BeforeDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count user audit logs: %w", err)
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

// GetProjectAuditLogs does no access checks; callers gate it on ownership.
func (s *AuditLogService) GetProjectAuditLogs(
	projectID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	limit, offset := normalizePage(request)

	auditLogs, err := s.auditLogRepository.GetByProject(projectID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get project audit logs: %w", err)
	}

	total, err := s.auditLogRepository.CountByProject(projectID, request.BeforeDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count project audit logs: %w", err)
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func normalizePage(request *GetAuditLogsRequest) (int, int) {
	limit := request.Limit
	if limit <= 0 || limit > maxAuditLogsLimit {
		limit = defaultAuditLogsLimit
	}

	return limit, max(request.Offset, 0)
}
