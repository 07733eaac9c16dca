package applications_dto

import (
	"time"

	applications_enums "opensourcetogether/internal/features/applications/enums"
	users_dto "opensourcetogether/internal/features/users/dto"

	"github.com/google/uuid"
)

type ApplyRequestDTO struct {
	ProjectID           uuid.UUID `json:"projectId"           binding:"required"`
	ProjectRoleID       uuid.UUID `json:"projectRoleId"       binding:"required"`
	MotivationLetter    string    `json:"motivationLetter"`
	SelectedKeyFeatures []string  `json:"selectedKeyFeatures"`
}

type RejectRequestDTO struct {
	RejectionReason string `json:"rejectionReason"`
}

type ApplicationResponseDTO struct {
	ID                  uuid.UUID                            `json:"id"`
	ProjectID           uuid.UUID                            `json:"projectId"`
	ProjectTitle        string                               `json:"projectTitle"`
	ProjectRoleID       uuid.UUID                            `json:"projectRoleId"`
	ProjectRoleTitle    string                               `json:"projectRoleTitle"`
	Status              applications_enums.ApplicationStatus `json:"status"`
	MotivationLetter    string                               `json:"motivationLetter"`
	SelectedKeyFeatures []string                             `json:"selectedKeyFeatures"`
	RejectionReason     *string                              `json:"rejectionReason,omitempty"`
	AppliedAt           time.Time                            `json:"appliedAt"`
	DecidedAt           *time.Time                           `json:"decidedAt,omitempty"`
	DecidedBy           *uuid.UUID                           `json:"decidedBy,omitempty"`
	Applicant           *users_dto.PublicUserDTO             `json:"applicant"`
}

// NotificationPayload is stored in Notification.payload for application events.
type NotificationPayload struct {
	ApplicationID    uuid.UUID `json:"applicationId"`
	ProjectID        uuid.UUID `json:"projectId"`
	ProjectTitle     string    `json:"projectTitle"`
	ProjectRoleID    uuid.UUID `json:"projectRoleId"`
	ProjectRoleTitle string    `json:"projectRoleTitle"`
	UserID           uuid.UUID `json:"userId"`
	UserLogin        string    `json:"userLogin"`
	RejectionReason  string    `json:"rejectionReason,omitempty"`
}
