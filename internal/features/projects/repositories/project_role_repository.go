package projects_repositories

import (
	"errors"
	"time"

	projects_models "opensourcetogether/internal/features/projects/models"
	"opensourcetogether/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRoleRepository struct{}

func (r *ProjectRoleRepository) CreateRole(role *projects_models.ProjectRole, techStackIDs []uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		return createRole(tx, role, techStackIDs)
	})
}

// UpdateRole saves title, description and isFilled. Tech stacks are replaced
// only when techStackIDs is non-nil.
func (r *ProjectRoleRepository) UpdateRole(role *projects_models.ProjectRole, techStackIDs []uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&projects_models.ProjectRole{}).
			Where("id = ?", role.ID).
			Updates(map[string]any{
				"title":       role.Title,
				"description": role.Description,
				"is_filled":   role.IsFilled,
			}).Error
		if err != nil {
			return err
		}

		if techStackIDs == nil {
			return nil
		}

		if err := tx.Where("project_role_id = ?", role.ID).Delete(&projects_models.ProjectRoleTechStack{}).Error; err != nil {
			return err
		}

		return createRoleTechStacks(tx, role.ID, techStackIDs)
	})
}

func (r *ProjectRoleRepository) GetRoleByID(roleID uuid.UUID) (*projects_models.ProjectRole, error) {
	var role projects_models.ProjectRole

	err := storage.GetDb().Preload("TechStacks").Where("id = ?", roleID).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &role, nil
}

func (r *ProjectRoleRepository) GetRolesByProjectID(projectID uuid.UUID) ([]*projects_models.ProjectRole, error) {
	roles := make([]*projects_models.ProjectRole, 0)

	err := storage.GetDb().
		Preload("TechStacks").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&roles).Error

	return roles, err
}

func (r *ProjectRoleRepository) DeleteRole(roleID uuid.UUID) error {
	return storage.GetDb().Delete(&projects_models.ProjectRole{}, "id = ?", roleID).Error
}

func createRole(tx *gorm.DB, role *projects_models.ProjectRole, techStackIDs []uuid.UUID) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	if role.CreatedAt.IsZero() {
		role.CreatedAt = time.Now().UTC()
	}

	if err := tx.Omit(clause.Associations).Create(role).Error; err != nil {
		return err
	}

	return createRoleTechStacks(tx, role.ID, techStackIDs)
}

func createRoleTechStacks(tx *gorm.DB, roleID uuid.UUID, techStackIDs []uuid.UUID) error {
	if len(techStackIDs) == 0 {
		return nil
	}

	rows := make([]projects_models.ProjectRoleTechStack, 0, len(techStackIDs))
	for _, id := range techStackIDs {
		rows = append(rows, projects_models.ProjectRoleTechStack{ProjectRoleID: roleID, TechStackID: id})
	}

	return tx.Create(&rows).Error
}
