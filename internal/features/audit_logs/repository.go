package audit_logs

import (
	"time"

	"opensourcetogether/internal/storage"

	"github.com/google/uuid"
)

type AuditLogRepository struct{}

const auditLogSelect = `
		SELECT
			al.id,
			al.user_id,
			al.project_id,
			al.message,
			al.created_at,
			u.login as user_login,
			p.title as project_title
		FROM audit_logs al
		LEFT JOIN users u ON al.user_id = u.id
		LEFT JOIN projects p ON al.project_id = p.id`

func (r *AuditLogRepository) Create(auditLog *AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	return storage.GetDb().Create(auditLog).Error
}

func (r *AuditLogRepository) GetByUser(
	userID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	return r.query("al.user_id = ?", userID, limit, offset, beforeDate)
}

func (r *AuditLogRepository) GetByProject(
	projectID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	return r.query("al.project_id = ?", projectID, limit, offset, beforeDate)
}

func (r *AuditLogRepository) CountByUser(userID uuid.UUID, beforeDate *time.Time) (int64, error) {
	return r.count("user_id = ?", userID, beforeDate)
}

func (r *AuditLogRepository) CountByProject(projectID uuid.UUID, beforeDate *time.Time) (int64, error) {
	return r.count("project_id = ?", projectID, beforeDate)
}

func (r *AuditLogRepository) query(
	condition string,
	value uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	var auditLogs = make([]*AuditLogDTO, 0)

	sql := auditLogSelect + " WHERE " + condition
	args := []any{value}

	if beforeDate != nil {
		sql += " AND al.created_at < ?"
		args = append(args, *beforeDate)
	}

	sql += " ORDER BY al.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	err := storage.GetDb().Raw(sql, args...).Scan(&auditLogs).Error

	return auditLogs, err
}

func (r *AuditLogRepository) count(condition string, value uuid.UUID, beforeDate *time.Time) (int64, error) {
	var count int64
	query := storage.GetDb().Model(&AuditLog{}).Where(condition, value)

	if beforeDate != nil {
		query = query.Where("created_at < ?", *beforeDate)
	}

	err := query.Count(&count).Error
	return count, err
}
