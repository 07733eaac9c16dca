package applications_repositories

import (
	"errors"
	"time"

	applications_enums "opensourcetogether/internal/features/applications/enums"
	applications_models "opensourcetogether/internal/features/applications/models"
	projects_models "opensourcetogether/internal/features/projects/models"
	"opensourcetogether/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrStatusChanged means another request decided the application first.
	ErrStatusChanged = errors.New("application is no longer pending")
	// ErrRoleFilled means another application for the role was accepted first.
	ErrRoleFilled = errors.New("project role is already filled")
)

type ApplicationRepository struct{}

// Create returns gorm.ErrDuplicatedKey when the user already has a pending
// application for the role.
func (r *ApplicationRepository) Create(application *applications_models.ProjectRoleApplication) error {
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	if application.AppliedAt.IsZero() {
		application.AppliedAt = time.Now().UTC()
	}

	return storage.GetDb().Omit("Project", "ProjectRole").Create(application).Error
}

func (r *ApplicationRepository) GetByID(id uuid.UUID) (*applications_models.ProjectRoleApplication, error) {
	var application applications_models.ProjectRoleApplication

	err := withSummary(storage.GetDb()).Where("id = ?", id).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &application, nil
}

func (r *ApplicationRepository) ExistsPending(userID uuid.UUID, projectRoleID uuid.UUID) (bool, error) {
	var count int64

	err := storage.GetDb().Model(&applications_models.ProjectRoleApplication{}).
		Where("user_id = ? AND project_role_id = ? AND status = ?",
			userID, projectRoleID, applications_enums.ApplicationStatusPending).
		Count(&count).Error

	return count > 0, err
}

func (r *ApplicationRepository) GetByUser(userID uuid.UUID) ([]*applications_models.ProjectRoleApplication, error) {
	applications := make([]*applications_models.ProjectRoleApplication, 0)

	err := withSummary(storage.GetDb()).
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&applications).Error

	return applications, err
}

func (r *ApplicationRepository) GetByProject(projectID uuid.UUID) ([]*applications_models.ProjectRoleApplication, error) {
	applications := make([]*applications_models.ProjectRoleApplication, 0)

	err := withSummary(storage.GetDb()).
		Where("project_id = ?", projectID).
		Order("applied_at DESC").
		Find(&applications).Error

	return applications, err
}

// Decide moves a pending application to a terminal status. It returns
// ErrStatusChanged when the row is no longer pending.
func (r *ApplicationRepository) Decide(application *applications_models.ProjectRoleApplication) error {
	return decide(storage.GetDb(), application)
}

// DecideAndFillRole accepts a pending application and marks its role filled
// in one transaction. Nothing is written when either the application is no
// longer pending (ErrStatusChanged) or the role is already filled
// (ErrRoleFilled).
func (r *ApplicationRepository) DecideAndFillRole(application *applications_models.ProjectRoleApplication) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&projects_models.ProjectRole{}).
			Where("id = ? AND is_filled = ?", application.ProjectRoleID, false).
			Update("is_filled", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRoleFilled
		}

		return decide(tx, application)
	})
}

func (r *ApplicationRepository) DeleteByProject(projectID uuid.UUID) error {
	return storage.GetDb().
		Where("project_id = ?", projectID).
		Delete(&applications_models.ProjectRoleApplication{}).Error
}

func decide(db *gorm.DB, application *applications_models.ProjectRoleApplication) error {
	result := db.Model(&applications_models.ProjectRoleApplication{}).
		Where("id = ? AND status = ?", application.ID, applications_enums.ApplicationStatusPending).
		Updates(map[string]any{
			"status":           application.Status,
			"rejection_reason": application.RejectionReason,
			"decided_at":       application.DecidedAt,
			"decided_by":       application.DecidedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

func withSummary(db *gorm.DB) *gorm.DB {
	return db.Preload("Project").Preload("ProjectRole")
}
