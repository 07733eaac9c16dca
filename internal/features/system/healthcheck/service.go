package system_healthcheck

import (
	"fmt"
	"os"

	"opensourcetogether/internal/downdetect"

	"github.com/shirou/gopsutil/v4/disk"
)

const maxDiskUsagePercent = 95.0

type CheckStatus string

const (
	CheckStatusOk   CheckStatus = "ok"
	CheckStatusFail CheckStatus = "fail"
)

type HealthcheckResponse struct {
	Status   CheckStatus     `json:"status"`
	Database CheckResult     `json:"database"`
	Cache    CheckResult     `json:"cache"`
	Disk     DiskCheckResult `json:"disk"`
}

type CheckResult struct {
	Status CheckStatus `json:"status"`
	Error  string      `json:"error,omitempty"`
}

type DiskCheckResult struct {
	CheckResult
	Path        string  `json:"path"`
	UsedPercent float64 `json:"usedPercent"`
}

type HealthcheckService struct {
	downdetectService *downdetect.DowndetectService
	diskUsage         func(path string) (*disk.UsageStat, error)
}

// Check runs every probe; the response is healthy only when all pass.
func (s *HealthcheckService) Check() *HealthcheckResponse {
	response := &HealthcheckResponse{
		Database: toResult(s.downdetectService.CheckDatabase()),
		Cache:    toResult(s.downdetectService.CheckCache()),
		Disk:     s.checkDisk(),
	}

	response.Status = CheckStatusOk
	for _, result := range []CheckResult{response.Database, response.Cache, response.Disk.CheckResult} {
		if result.Status != CheckStatusOk {
			response.Status = CheckStatusFail
		}
	}

	return response
}

func (s *HealthcheckService) checkDisk() DiskCheckResult {
	path, err := os.Getwd()
	if err != nil {
		path = "/"
	}

	result := DiskCheckResult{Path: path}

	usage, err := s.diskUsage(path)
	if err != nil {
		result.CheckResult = toResult(fmt.Errorf("disk usage check failed: %w", err))
		return result
	}

	result.UsedPercent = usage.UsedPercent
	if usage.UsedPercent >= maxDiskUsagePercent {
		result.CheckResult = toResult(fmt.Errorf("disk usage %.1f%% is above %.0f%%", usage.UsedPercent, maxDiskUsagePercent))
		return result
	}

	result.CheckResult = CheckResult{Status: CheckStatusOk}
	return result
}

func toResult(err error) CheckResult {
	if err != nil {
		return CheckResult{Status: CheckStatusFail, Error: err.Error()}
	}
	return CheckResult{Status: CheckStatusOk}
}
