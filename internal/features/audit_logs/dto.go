package audit_logs

import (
	"time"

	"github.com/google/uuid"
)

type GetAuditLogsRequest struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"beforeDate" json:"beforeDate" time_format:"2006-01-02T15:04:05Z07:00"`
}

type GetAuditLogsResponse struct {
	AuditLogs []*AuditLogDTO `json:"auditLogs"`
	Total     int64          `json:"total"`
	Limit     int            `json:"limit"`
	Offset    int            `json:"offset"`
}

// AuditLogDTO is an audit log joined with the user's login and the project's
// title; both are nil once the referenced row is gone.
type AuditLogDTO struct {
	ID           uuid.UUID  `json:"id"           gorm:"column:id"`
	UserID       *uuid.UUID `json:"userId"       gorm:"column:user_id"`
	ProjectID    *uuid.UUID `json:"projectId"    gorm:"column:project_id"`
	Message      string     `json:"message"      gorm:"column:message"`
	CreatedAt    time.Time  `json:"createdAt"    gorm:"column:created_at"`
	UserLogin    *string    `json:"userLogin"    gorm:"column:user_login"`
	ProjectTitle *string    `json:"projectTitle" gorm:"column:project_title"`
}
