package projects_services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"opensourcetogether/internal/config"
)

const (
	githubSyncInterval  = 1 * time.Minute
	githubSyncBatchSize = 20
)

// GithubSyncBackgroundService retries repository creation for projects that
// are still PENDING.
type GithubSyncBackgroundService struct {
	projectService *ProjectService
	logger         *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (s *GithubSyncBackgroundService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting GitHub sync background worker",
		slog.Duration("interval", githubSyncInterval))

	s.wg.Add(1)
	go s.syncWorker()
}

func (s *GithubSyncBackgroundService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *GithubSyncBackgroundService) ExecuteAllTasksForTest() error {
	_, err := s.projectService.SyncPendingProjects(context.Background(), githubSyncBatchSize)
	return err
}

func (s *GithubSyncBackgroundService) syncWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(githubSyncInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("GitHub sync worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("GitHub sync worker shutting down")
			return

		case <-ticker.C:
			synced, err := s.projectService.SyncPendingProjects(s.ctx, githubSyncBatchSize)
			if err != nil {
				s.logger.Error("Error during GitHub sync", slog.String("error", err.Error()))
				continue
			}

			if synced > 0 {
				s.logger.Info("GitHub sync round completed", slog.Int("syncedProjects", synced))
			}
		}
	}
}
