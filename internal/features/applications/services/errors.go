package applications_services

import (
	"opensourcetogether/internal/util/errs"
)

var (
	ErrApplicationNotFound = errs.NotFound(errs.CodeApplicationNotFound, "Application not found")

	ErrApplicationAlreadyExists = errs.Conflict(
		errs.CodeApplicationAlreadyExists,
		"You already have a pending application for this role",
	)

	ErrApplicationAlreadyDecided = errs.Conflict(
		errs.CodeApplicationAlreadyDecided,
		"Application is no longer pending",
	)

	ErrCannotApplyToOwnProject = errs.Forbidden(
		errs.CodeCannotApplyToOwnProject,
		"You cannot apply to your own project",
	)

	ErrProjectRoleAlreadyFilled = errs.Conflict(
		errs.CodeProjectRoleAlreadyFilled,
		"This role is already filled",
	)

	ErrDecisionDenied = errs.Forbidden(
		errs.CodeForbidden,
		"Only the project owner can decide on applications",
	)

	ErrCancelDenied = errs.Forbidden(
		errs.CodeForbidden,
		"Only the applicant can cancel an application",
	)

	ErrApplicationsAccessDenied = errs.Forbidden(
		errs.CodeForbidden,
		"Only the project owner can see its applications",
	)
)
