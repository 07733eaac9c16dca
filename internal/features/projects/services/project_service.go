package projects_services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"opensourcetogether/internal/config"
	"opensourcetogether/internal/features/audit_logs"
	"opensourcetogether/internal/features/categories"
	github_client "opensourcetogether/internal/features/github/client"
	github_services "opensourcetogether/internal/features/github/services"
	projects_dto "opensourcetogether/internal/features/projects/dto"
	projects_enums "opensourcetogether/internal/features/projects/enums"
	projects_interfaces "opensourcetogether/internal/features/projects/interfaces"
	projects_models "opensourcetogether/internal/features/projects/models"
	projects_repositories "opensourcetogether/internal/features/projects/repositories"
	projects_validation "opensourcetogether/internal/features/projects/validation"
	"opensourcetogether/internal/features/techstacks"
	users_dto "opensourcetogether/internal/features/users/dto"
	users_models "opensourcetogether/internal/features/users/models"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

const (
	defaultProjectsLimit     = 20
	maxProjectsLimit         = 100
	statsEnrichmentLimit     = 8
	githubSyncBaseRetryDelay = time.Minute
	githubSyncMaxRetryDelay  = 6 * time.Hour
	repoDescriptionMaxLength = 350
)

type ProjectService struct {
	projectRepository        *projects_repositories.ProjectRepository
	techStackService         *techstacks.TechStackService
	categoryService          *categories.CategoryService
	userService              *users_services.UserService
	githubService            *github_services.GithubService
	auditLogService          *audit_logs.AuditLogService
	projectDeletionListeners []projects_interfaces.ProjectDeletionListener
	logger                   *slog.Logger
}

func (s *ProjectService) AddProjectDeletionListener(listener projects_interfaces.ProjectDeletionListener) {
	s.projectDeletionListeners = append(s.projectDeletionListeners, listener)
}

// CreateProject stores the project and then tries to create its GitHub
// repository once. A failed attempt leaves the project PENDING for the sync
// worker instead of failing the request. When GithubRepoURL is given the
// existing repository is verified and the project starts SYNCED.
func (s *ProjectService) CreateProject(
	ctx context.Context,
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	exists, err := s.projectRepository.ExistsByTitle(request.Title, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check project title: %w", err)
	}
	if exists {
		return nil, ErrProjectTitleAlreadyExists
	}

	allTechStackIDs := append([]uuid.UUID{}, request.TechStackIDs...)
	for _, role := range request.ProjectRoles {
		allTechStackIDs = append(allTechStackIDs, role.TechStackIDs...)
	}
	if _, err := s.techStackService.FindByIDs(allTechStackIDs); err != nil {
		return nil, err
	}
	if _, err := s.categoryService.FindByIDs(request.CategoryIDs); err != nil {
		return nil, err
	}

	if validationErrors := projects_validation.ValidateProject(createRequestToDraft(request)); validationErrors != nil {
		return nil, errs.Validation(validationErrors)
	}

	project := &projects_models.Project{
		ID:            uuid.New(),
		OwnerID:       &creator.ID,
		Title:         strings.TrimSpace(request.Title),
		Description:   strings.TrimSpace(request.Description),
		Image:         request.Image,
		CoverImages:   datatypes.JSONSlice[string](nonNilStrings(request.CoverImages)),
		KeyFeatures:   toKeyFeatures(request.KeyFeatures),
		ExternalLinks: toExternalLinks(request.ExternalLinks),
	}

	for _, role := range request.ProjectRoles {
		project.ProjectRoles = append(project.ProjectRoles, &projects_models.ProjectRole{
			Title:       strings.TrimSpace(role.Title),
			Description: strings.TrimSpace(role.Description),
			TechStacks:  techStackRefs(role.TechStackIDs),
		})
	}

	isImported := request.GithubRepoURL != ""
	if isImported {
		repository, readme, err := s.verifyImportedRepository(ctx, request.GithubRepoURL, creator)
		if err != nil {
			return nil, err
		}

		project.GithubOwner = repository.Owner
		project.GithubRepo = repository.Name
		project.Readme = readme
		project.GithubSyncStatus = projects_enums.GithubSyncStatusSynced
	} else {
		nextAttemptAt := time.Now().UTC().Add(githubSyncBaseRetryDelay)
		project.GithubSyncStatus = projects_enums.GithubSyncStatusPending
		project.GithubSyncNextAttemptAt = &nextAttemptAt
	}

	if err := s.projectRepository.CreateProject(project, uniqueIDs(request.CategoryIDs), uniqueIDs(request.TechStackIDs)); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Title),
		&creator.ID,
		&project.ID,
	)

	if !isImported {
		if err := s.SyncProjectRepository(ctx, project); err != nil {
			s.logger.Warn("GitHub repository creation deferred to sync worker",
				"projectId", project.ID,
				"error", err)
		}
	}

	created, err := s.GetProjectByID(project.ID)
	if err != nil {
		return nil, err
	}

	responses, err := s.toResponses(ctx, nil, []*projects_models.Project{created})
	if err != nil {
		return nil, err
	}

	return responses[0], nil
}

func (s *ProjectService) GetProjects(
	ctx context.Context,
	client github_client.Client,
	request *projects_dto.GetProjectsRequestDTO,
) (*projects_dto.ListProjectsResponseDTO, error) {
	filter, err := toFilter(request)
	if err != nil {
		return nil, err
	}

	return s.listProjects(ctx, client, filter)
}

func (s *ProjectService) GetUserProjects(
	ctx context.Context,
	client github_client.Client,
	userID uuid.UUID,
	request *projects_dto.GetProjectsRequestDTO,
) (*projects_dto.ListProjectsResponseDTO, error) {
	if _, err := s.userService.GetUserByID(userID); err != nil {
		return nil, err
	}

	filter, err := toFilter(request)
	if err != nil {
		return nil, err
	}
	filter.OwnerID = &userID

	return s.listProjects(ctx, client, filter)
}

// GetProject returns the project with live GitHub stats. A stats failure
// fails the whole request.
func (s *ProjectService) GetProject(
	ctx context.Context,
	client github_client.Client,
	projectID uuid.UUID,
) (*projects_dto.ProjectResponseDTO, error) {
	project, err := s.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	responses, err := s.toResponses(ctx, client, []*projects_models.Project{project})
	if err != nil {
		return nil, err
	}

	return responses[0], nil
}

func (s *ProjectService) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	return project, nil
}

func (s *ProjectService) UpdateProject(
	ctx context.Context,
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	project, err := s.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	if !s.CanUserModifyProject(project, user.ID) {
		return nil, ErrProjectModificationDenied
	}

	if request.Title != nil && !strings.EqualFold(strings.TrimSpace(*request.Title), project.Title) {
		exists, err := s.projectRepository.ExistsByTitle(*request.Title, &project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check project title: %w", err)
		}
		if exists {
			return nil, ErrProjectTitleAlreadyExists
		}
	}

	categoryIDs := project.CategoryIDs()
	if request.CategoryIDs != nil {
		if _, err := s.categoryService.FindByIDs(*request.CategoryIDs); err != nil {
			return nil, err
		}
		categoryIDs = uniqueIDs(*request.CategoryIDs)
	}

	techStackIDs := project.TechStackIDs()
	if request.TechStackIDs != nil {
		if _, err := s.techStackService.FindByIDs(*request.TechStackIDs); err != nil {
			return nil, err
		}
		techStackIDs = uniqueIDs(*request.TechStackIDs)
	}

	applyUpdate(project, request)

	draft := projectToDraft(project, categoryIDs, techStackIDs)
	if validationErrors := projects_validation.ValidateProject(draft); validationErrors != nil {
		return nil, errs.Validation(validationErrors)
	}

	if err := s.projectRepository.UpdateProjectWithRelations(project, categoryIDs, techStackIDs); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project updated: %s", project.Title),
		&user.ID,
		&project.ID,
	)

	updated, err := s.GetProjectByID(project.ID)
	if err != nil {
		return nil, err
	}

	responses, err := s.toResponses(ctx, nil, []*projects_models.Project{updated})
	if err != nil {
		return nil, err
	}

	return responses[0], nil
}

func (s *ProjectService) DeleteProject(projectID uuid.UUID, user *users_models.User) error {
	project, err := s.GetProjectByID(projectID)
	if err != nil {
		return err
	}

	if !s.CanUserModifyProject(project, user.ID) {
		return ErrProjectModificationDenied
	}

	for _, listener := range s.projectDeletionListeners {
		if err := listener.OnBeforeProjectDeletion(projectID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
	}

	if err := s.projectRepository.DeleteProject(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Title),
		&user.ID,
		&projectID,
	)

	return nil
}

func (s *ProjectService) GetProjectAuditLogs(
	projectID uuid.UUID,
	user *users_models.User,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	project, err := s.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	if !s.CanUserModifyProject(project, user.ID) {
		return nil, ErrProjectModificationDenied
	}

	return s.auditLogService.GetProjectAuditLogs(projectID, request)
}

// CanUserModifyProject is true only for the owner. Ownerless projects and
// uuid.Nil never match.
func (s *ProjectService) CanUserModifyProject(project *projects_models.Project, userID uuid.UUID) bool {
	if project == nil || project.OwnerID == nil || userID == uuid.Nil {
		return false
	}

	return *project.OwnerID == userID
}

// SyncProjectRepository makes sure a PENDING project has a GitHub repository.
// A repository left over from an earlier attempt is adopted instead of
// created twice. Failures are recorded on the project with a backoff.
func (s *ProjectService) SyncProjectRepository(ctx context.Context, project *projects_models.Project) error {
	if project.GithubSyncStatus == projects_enums.GithubSyncStatusSynced {
		return nil
	}

	repository, err := s.ensureRepository(ctx, project)
	if err != nil {
		nextAttemptAt := time.Now().UTC().Add(syncRetryDelay(project.GithubSyncAttempts + 1))

		if recordErr := s.projectRepository.RecordGithubSyncFailure(project.ID, err.Error(), nextAttemptAt); recordErr != nil {
			return fmt.Errorf("failed to record sync failure: %w", recordErr)
		}

		return err
	}

	if err := s.projectRepository.MarkGithubSynced(project.ID, repository.Owner, repository.Name, project.Readme); err != nil {
		return fmt.Errorf("failed to mark project synced: %w", err)
	}

	project.GithubOwner = repository.Owner
	project.GithubRepo = repository.Name
	project.GithubSyncStatus = projects_enums.GithubSyncStatusSynced
	project.GithubSyncError = ""

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("GitHub repository linked: %s", repository.FullName),
		project.OwnerID,
		&project.ID,
	)

	return nil
}

// SyncPendingProjects runs one sync round and returns how many projects got
// their repository.
func (s *ProjectService) SyncPendingProjects(ctx context.Context, batchSize int) (int, error) {
	projects, err := s.projectRepository.GetProjectsDueForSync(time.Now().UTC(), batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to get projects due for sync: %w", err)
	}

	synced := 0
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return synced, err
		}

		if err := s.SyncProjectRepository(ctx, project); err != nil {
			s.logger.Warn("GitHub sync attempt failed",
				"projectId", project.ID,
				"attempt", project.GithubSyncAttempts+1,
				"error", err)
			continue
		}

		synced++
	}

	return synced, nil
}

func (s *ProjectService) ensureRepository(
	ctx context.Context,
	project *projects_models.Project,
) (*github_client.Repository, error) {
	if project.OwnerID == nil {
		return nil, errors.New("project has no owner")
	}

	owner, err := s.userService.GetUserByID(*project.OwnerID)
	if err != nil {
		return nil, err
	}

	client, err := s.githubService.GetClientFactory().ForUser(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	name := RepositoryNameForTitle(project.Title)

	existing, err := client.GetRepository(ctx, owner.Login, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, github_client.ErrNotFound) {
		return nil, err
	}

	return client.CreateRepository(ctx, github_client.CreateRepositoryInput{
		Name:        name,
		Description: truncate(project.Description, repoDescriptionMaxLength),
		Homepage:    fmt.Sprintf("%s/projects/%s", config.GetEnv().FrontendURL, project.ID),
	})
}

func (s *ProjectService) verifyImportedRepository(
	ctx context.Context,
	rawURL string,
	creator *users_models.User,
) (*github_client.Repository, string, error) {
	owner, repo, ok := projects_validation.ParseGithubRepositoryURL(rawURL)
	if !ok {
		return nil, "", ErrInvalidGithubRepositoryURL
	}

	if !strings.EqualFold(owner, creator.Login) {
		return nil, "", ErrInvalidGithubRepositoryURL.WithExtra("reason", "repository must belong to your GitHub account")
	}

	factory := s.githubService.GetClientFactory()

	client, err := factory.ForUser(ctx, creator.ID)
	if errors.Is(err, users_services.ErrGithubNotConnected) {
		client = factory.Public()
	} else if err != nil {
		return nil, "", err
	}

	repository, err := client.GetRepository(ctx, owner, repo)
	if err != nil {
		if errors.Is(err, github_client.ErrNotFound) {
			return nil, "", ErrInvalidGithubRepositoryURL.WithExtra("reason", "repository not found")
		}
		return nil, "", github_services.MapError(err)
	}

	readme, err := client.GetReadme(ctx, repository.Owner, repository.Name)
	if err != nil {
		return nil, "", github_services.MapError(err)
	}

	return repository, readme, nil
}

func (s *ProjectService) listProjects(
	ctx context.Context,
	client github_client.Client,
	filter projects_repositories.ProjectFilter,
) (*projects_dto.ListProjectsResponseDTO, error) {
	projects, total, err := s.projectRepository.GetProjects(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}

	responses, err := s.toResponses(ctx, client, projects)
	if err != nil {
		return nil, err
	}

	return &projects_dto.ListProjectsResponseDTO{
		Projects: responses,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}, nil
}

// toResponses attaches owners and, when client is set, live stats for every
// synced project. Stats are fetched concurrently and any failure fails the call.
func (s *ProjectService) toResponses(
	ctx context.Context,
	client github_client.Client,
	projects []*projects_models.Project,
) ([]*projects_dto.ProjectResponseDTO, error) {
	ownerIDs := make([]uuid.UUID, 0, len(projects))
	for _, project := range projects {
		if project.OwnerID != nil {
			ownerIDs = append(ownerIDs, *project.OwnerID)
		}
	}

	owners, err := s.userService.GetUsersByIDs(ownerIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]*projects_dto.ProjectResponseDTO, len(projects))
	for i, project := range projects {
		responses[i] = &projects_dto.ProjectResponseDTO{
			Project:       project,
			GithubRepoURL: project.GithubRepoURL(),
		}

		if project.OwnerID != nil {
			if owner, ok := owners[*project.OwnerID]; ok {
				responses[i].Owner = &users_dto.PublicUserDTO{
					ID:        owner.ID,
					Login:     owner.Login,
					Name:      owner.Name,
					AvatarURL: owner.AvatarURL,
				}
			}
		}
	}

	if client == nil {
		return responses, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(statsEnrichmentLimit)

	for i, project := range projects {
		if !project.IsGithubSynced() {
			continue
		}

		group.Go(func() error {
			stats, err := s.githubService.GetRepositoryStats(groupCtx, client, project.GithubOwner, project.GithubRepo)
			if err != nil {
				return err
			}

			responses[i].Stats = stats
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return responses, nil
}

func toFilter(request *projects_dto.GetProjectsRequestDTO) (projects_repositories.ProjectFilter, error) {
	filter := projects_repositories.ProjectFilter{
		Query:  strings.TrimSpace(request.Query),
		Limit:  request.Limit,
		Offset: request.Offset,
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultProjectsLimit
	}
	if filter.Limit > maxProjectsLimit {
		filter.Limit = maxProjectsLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if request.CategoryID != "" {
		id, err := uuid.Parse(request.CategoryID)
		if err != nil {
			return filter, errs.BadRequest(errs.CodeInvalidRequest, "Invalid category ID")
		}
		filter.CategoryID = &id
	}

	if request.TechStackID != "" {
		id, err := uuid.Parse(request.TechStackID)
		if err != nil {
			return filter, errs.BadRequest(errs.CodeInvalidRequest, "Invalid tech stack ID")
		}
		filter.TechStackID = &id
	}

	return filter, nil
}

func syncRetryDelay(attempt int) time.Duration {
	delay := githubSyncBaseRetryDelay
	for i := 1; i < attempt && delay < githubSyncMaxRetryDelay; i++ {
		delay *= 2
	}

	return min(delay, githubSyncMaxRetryDelay)
}

func truncate(value string, maxLength int) string {
	runes := []rune(value)
	if len(runes) <= maxLength {
		return value
	}
	return string(runes[:maxLength])
}
