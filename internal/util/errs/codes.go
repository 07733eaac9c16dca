package errs

const (
	CodeInternal          = "INTERNAL_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeRouteNotFound     = "ROUTE_NOT_FOUND"

	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeInvalidOAuthState   = "INVALID_OAUTH_STATE"
	CodeGithubAuthFailed    = "GITHUB_AUTH_FAILED"
	CodeGithubRequestFailed = "GITHUB_REQUEST_FAILED"
	CodeGithubNotConnected  = "GITHUB_NOT_CONNECTED"

	CodeTechStackNotFound = "TECH_STACK_NOT_FOUND"
	CodeCategoryNotFound  = "CATEGORY_NOT_FOUND"

	CodeProjectNotFound            = "PROJECT_NOT_FOUND"
	CodeProjectTitleAlreadyExists  = "PROJECT_TITLE_ALREADY_EXISTS"
	CodeProjectRoleNotFound        = "PROJECT_ROLE_NOT_FOUND"
	CodeProjectRoleNotInProject    = "PROJECT_ROLE_DOES_NOT_BELONG_TO_PROJECT"
	CodeProjectRoleAlreadyFilled   = "PROJECT_ROLE_ALREADY_FILLED"
	CodeInvalidGithubRepositoryURL = "INVALID_GITHUB_REPOSITORY_URL"
	CodeProjectModificationDenied  = "PROJECT_MODIFICATION_FORBIDDEN"

	CodeApplicationNotFound       = "APPLICATION_NOT_FOUND"
	CodeApplicationAlreadyExists  = "APPLICATION_ALREADY_EXISTS"
	CodeApplicationAlreadyDecided = "APPLICATION_ALREADY_DECIDED"
	CodeCannotApplyToOwnProject   = "CANNOT_APPLY_TO_OWN_PROJECT"

	CodeProfileNotFound = "PROFILE_NOT_FOUND"

	CodeNotificationNotFound = "NOTIFICATION_NOT_FOUND"
)
