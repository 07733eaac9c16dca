package applications_controllers

import (
	applications_services "opensourcetogether/internal/features/applications/services"
)

var applicationController = &ApplicationController{
	applications_services.GetApplicationService(),
}

func GetApplicationController() *ApplicationController {
	return applicationController
}
