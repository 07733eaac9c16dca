package downdetect

import (
	"fmt"

	"opensourcetogether/internal/storage"
	cache_utils "opensourcetogether/internal/util/cache"
)

type DowndetectService struct{}

func (s *DowndetectService) CheckDatabase() error {
	if err := storage.GetDb().Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	return nil
}

func (s *DowndetectService) CheckCache() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache connection test panicked: %v", r)
		}
	}()

	if err := cache_utils.TestCacheConnection(); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}
