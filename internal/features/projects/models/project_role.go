package projects_models

import (
	"time"

	"opensourcetogether/internal/features/techstacks"

	"github.com/google/uuid"
)

// ProjectRole is an open contribution position on a project.
type ProjectRole struct {
	ID          uuid.UUID               `json:"id"          gorm:"column:id;primaryKey"`
	ProjectID   uuid.UUID               `json:"projectId"   gorm:"column:project_id"`
	Title       string                  `json:"title"       gorm:"column:title"`
	Description string                  `json:"description" gorm:"column:description"`
	IsFilled    bool                    `json:"isFilled"    gorm:"column:is_filled"`
	TechStacks  []*techstacks.TechStack `json:"techStacks"  gorm:"many2many:project_role_tech_stacks"`
	CreatedAt   time.Time               `json:"createdAt"   gorm:"column:created_at"`
}

func (ProjectRole) TableName() string {
	return "project_roles"
}

type ProjectRoleTechStack struct {
	ProjectRoleID uuid.UUID `gorm:"column:project_role_id;primaryKey"`
	TechStackID   uuid.UUID `gorm:"column:tech_stack_id;primaryKey"`
}

func (ProjectRoleTechStack) TableName() string {
	return "project_role_tech_stacks"
}

func (r *ProjectRole) TechStackIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.TechStacks))
	for _, techStack := range r.TechStacks {
		ids = append(ids, techStack.ID)
	}
	return ids
}
