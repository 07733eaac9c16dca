package projects_services

import (
	"opensourcetogether/internal/util/errs"
)

var (
	ErrProjectNotFound = errs.NotFound(errs.CodeProjectNotFound, "Project not found")

	ErrProjectModificationDenied = errs.Forbidden(
		errs.CodeProjectModificationDenied,
		"Only the project owner can modify this project",
	)

	ErrProjectTitleAlreadyExists = errs.Conflict(
		errs.CodeProjectTitleAlreadyExists,
		"A project with this title already exists",
	)

	ErrProjectRoleNotFound = errs.NotFound(errs.CodeProjectRoleNotFound, "Project role not found")

	ErrProjectRoleNotInProject = errs.BadRequest(
		errs.CodeProjectRoleNotInProject,
		"Project role does not belong to this project",
	)

	ErrInvalidGithubRepositoryURL = errs.BadRequest(
		errs.CodeInvalidGithubRepositoryURL,
		"Invalid GitHub repository URL",
	)
)
