package profiles

import (
	"opensourcetogether/internal/features/audit_logs"
	"opensourcetogether/internal/features/techstacks"
	users_services "opensourcetogether/internal/features/users/services"
)

var profileService = &ProfileService{
	profileRepository: &ProfileRepository{},
	techStackService:  techstacks.GetTechStackService(),
	userService:       users_services.GetUserService(),
	auditLogService:   audit_logs.GetAuditLogService(),
}

var profileController = &ProfileController{
	profileService: profileService,
}

func GetProfileService() *ProfileService {
	return profileService
}

func GetProfileController() *ProfileController {
	return profileController
}
