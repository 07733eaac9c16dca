package system_healthcheck

import (
	"opensourcetogether/internal/downdetect"

	"github.com/shirou/gopsutil/v4/disk"
)

var healthcheckService = &HealthcheckService{
	downdetectService: downdetect.GetDowndetectService(),
	diskUsage:         disk.Usage,
}
var healthcheckController = &HealthcheckController{
	healthcheckService,
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
