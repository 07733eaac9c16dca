package techstacks

import (
	"opensourcetogether/internal/util/logger"
)

var techStackRepository = &TechStackRepository{}
var techStackService = &TechStackService{
	techStackRepository: techStackRepository,
	logger:              logger.GetLogger(),
}
var techStackController = &TechStackController{
	techStackService: techStackService,
}

func GetTechStackService() *TechStackService {
	return techStackService
}

func GetTechStackController() *TechStackController {
	return techStackController
}
