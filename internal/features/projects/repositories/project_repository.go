package projects_repositories

import (
	"errors"
	"strings"
	"time"

	projects_enums "opensourcetogether/internal/features/projects/enums"
	projects_models "opensourcetogether/internal/features/projects/models"
	"opensourcetogether/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectFilter struct {
	Query       string
	CategoryID  *uuid.UUID
	TechStackID *uuid.UUID
	OwnerID     *uuid.UUID
	Limit       int
	Offset      int
}

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(
	project *projects_models.Project,
	categoryIDs []uuid.UUID,
	techStackIDs []uuid.UUID,
) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}

		if err := replaceRelations(tx, project, categoryIDs, techStackIDs); err != nil {
			return err
		}

		for _, role := range project.ProjectRoles {
			role.ProjectID = project.ID
			if err := createRole(tx, role, role.TechStackIDs()); err != nil {
				return err
			}
		}

		return nil
	})
}

// UpdateProjectWithRelations saves scalar fields and rewrites categories, tech
// stacks, key features and external links in one transaction.
func (r *ProjectRepository) UpdateProjectWithRelations(
	project *projects_models.Project,
	categoryIDs []uuid.UUID,
	techStackIDs []uuid.UUID,
) error {
	project.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&projects_models.Project{}).
			Where("id = ?", project.ID).
			Updates(map[string]any{
				"title":        project.Title,
				"description":  project.Description,
				"image":        project.Image,
				"cover_images": project.CoverImages,
				"updated_at":   project.UpdatedAt,
			}).Error
		if err != nil {
			return err
		}

		return replaceRelations(tx, project, categoryIDs, techStackIDs)
	})
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	err := withRelations(storage.GetDb()).Where("id = ?", projectID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) ExistsByTitle(title string, excludeID *uuid.UUID) (bool, error) {
	var count int64

	query := storage.GetDb().Model(&projects_models.Project{}).
		Where("LOWER(title) = ?", strings.ToLower(strings.TrimSpace(title)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	err := query.Count(&count).Error

	return count > 0, err
}

func (r *ProjectRepository) GetProjects(filter ProjectFilter) ([]*projects_models.Project, int64, error) {
	query := storage.GetDb().Model(&projects_models.Project{})

	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	if filter.CategoryID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM project_categories pc WHERE pc.project_id = projects.id AND pc.category_id = ?)",
			*filter.CategoryID,
		)
	}

	if filter.TechStackID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM project_tech_stacks pt WHERE pt.project_id = projects.id AND pt.tech_stack_id = ?)",
			*filter.TechStackID,
		)
	}

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []*projects_models.Project
	err := withRelations(query).
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&projects).Error

	return projects, total, err
}

// GetProjectsDueForSync returns pending projects whose next attempt time has passed.
func (r *ProjectRepository) GetProjectsDueForSync(now time.Time, limit int) ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	err := storage.GetDb().
		Where("github_sync_status = ?", projects_enums.GithubSyncStatusPending).
		Where("owner_id IS NOT NULL").
		Where("github_sync_next_attempt_at IS NULL OR github_sync_next_attempt_at <= ?", now).
		Order("github_sync_next_attempt_at ASC NULLS FIRST").
		Limit(limit).
		Find(&projects).Error

	return projects, err
}

func (r *ProjectRepository) MarkGithubSynced(projectID uuid.UUID, owner, repo, readme string) error {
	return storage.GetDb().Model(&projects_models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]any{
			"github_owner":                owner,
			"github_repo":                 repo,
			"readme":                      readme,
			"github_sync_status":          projects_enums.GithubSyncStatusSynced,
			"github_sync_error":           "",
			"github_sync_next_attempt_at": nil,
			"updated_at":                  time.Now().UTC(),
		}).Error
}

func (r *ProjectRepository) RecordGithubSyncFailure(projectID uuid.UUID, syncErr string, nextAttemptAt time.Time) error {
	return storage.GetDb().Model(&projects_models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]any{
			"github_sync_error":           syncErr,
			"github_sync_attempts":        gorm.Expr("github_sync_attempts + 1"),
			"github_sync_next_attempt_at": nextAttemptAt,
		}).Error
}

func (r *ProjectRepository) DeleteProject(projectID uuid.UUID) error {
	return storage.GetDb().Delete(&projects_models.Project{}, "id = ?", projectID).Error
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("categories.name ASC") }).
		Preload("TechStacks", func(db *gorm.DB) *gorm.DB { return db.Order("tech_stacks.name ASC") }).
		Preload("KeyFeatures", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("ExternalLinks").
		Preload("ProjectRoles", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("ProjectRoles.TechStacks")
}

func replaceRelations(
	tx *gorm.DB,
	project *projects_models.Project,
	categoryIDs []uuid.UUID,
	techStackIDs []uuid.UUID,
) error {
	deletions := []any{
		&projects_models.ProjectCategory{},
		&projects_models.ProjectTechStack{},
		&projects_models.KeyFeature{},
		&projects_models.ExternalLink{},
	}
	for _, model := range deletions {
		if err := tx.Where("project_id = ?", project.ID).Delete(model).Error; err != nil {
			return err
		}
	}

	if len(categoryIDs) > 0 {
		rows := make([]projects_models.ProjectCategory, 0, len(categoryIDs))
		for _, id := range categoryIDs {
			rows = append(rows, projects_models.ProjectCategory{ProjectID: project.ID, CategoryID: id})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}

	if len(techStackIDs) > 0 {
		rows := make([]projects_models.ProjectTechStack, 0, len(techStackIDs))
		for _, id := range techStackIDs {
			rows = append(rows, projects_models.ProjectTechStack{ProjectID: project.ID, TechStackID: id})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}

	for i, feature := range project.KeyFeatures {
		feature.ID = uuid.New()
		feature.ProjectID = project.ID
		feature.Position = i
	}
	if len(project.KeyFeatures) > 0 {
		if err := tx.Create(project.KeyFeatures).Error; err != nil {
			return err
		}
	}

	for _, link := range project.ExternalLinks {
		link.ID = uuid.New()
		link.ProjectID = project.ID
	}
	if len(project.ExternalLinks) > 0 {
		if err := tx.Create(project.ExternalLinks).Error; err != nil {
			return err
		}
	}

	return nil
}
