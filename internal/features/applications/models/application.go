package applications_models

import (
	"time"

	applications_enums "opensourcetogether/internal/features/applications/enums"
	projects_models "opensourcetogether/internal/features/projects/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProjectRoleApplication struct {
	ID                  uuid.UUID                            `gorm:"column:id;primaryKey"`
	ProjectID           uuid.UUID                            `gorm:"column:project_id"`
	ProjectRoleID       uuid.UUID                            `gorm:"column:project_role_id"`
	UserID              uuid.UUID                            `gorm:"column:user_id"`
	Status              applications_enums.ApplicationStatus `gorm:"column:status"`
	MotivationLetter    string                               `gorm:"column:motivation_letter"`
	SelectedKeyFeatures datatypes.JSONSlice[string]          `gorm:"column:selected_key_features"`
	RejectionReason     *string                              `gorm:"column:rejection_reason"`
	AppliedAt           time.Time                            `gorm:"column:applied_at"`
	DecidedAt           *time.Time                           `gorm:"column:decided_at"`
	DecidedBy           *uuid.UUID                           `gorm:"column:decided_by"`

	Project     *projects_models.Project     `gorm:"foreignKey:ProjectID"`
	ProjectRole *projects_models.ProjectRole `gorm:"foreignKey:ProjectRoleID"`
}

func (ProjectRoleApplication) TableName() string {
	return "project_role_applications"
}

func (a *ProjectRoleApplication) IsPending() bool {
	return !a.Status.IsTerminal()
}
