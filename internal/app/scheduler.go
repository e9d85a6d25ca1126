package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CachePurger сбрасывает кэш справочника
type CachePurger interface {
	PurgeCache()
}

// DialogSweeper удаляет брошенные диалоги бота
type DialogSweeper interface {
	PurgeExpired() int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	doctors       CachePurger
	cacheInterval time.Duration

	dialogs       DialogSweeper
	sweepInterval time.Duration

	logger   *zap.Logger
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewScheduler создаёт новый планировщик
func NewScheduler(doctors CachePurger, cacheInterval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		doctors:       doctors,
		cacheInterval: cacheInterval,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// WithDialogSweeper добавляет периодическую очистку диалогов; вызывать до Start
func (s *Scheduler) WithDialogSweeper(dialogs DialogSweeper, interval time.Duration) *Scheduler {
	s.dialogs = dialogs
	s.sweepInterval = interval
	return s
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("doctor_cache_refresh", s.cacheInterval),
		zap.Duration("dialog_sweep", s.sweepInterval))

	s.wg.Add(1)
	go s.runCacheRefreshTask(ctx)

	if s.dialogs != nil && s.sweepInterval > 0 {
		s.wg.Add(1)
		go s.runDialogSweepTask(ctx)
	}
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// runCacheRefreshTask периодически сбрасывает кэш врачей,
// чтобы изменения справочника (деактивация, новые врачи) доходили до сервиса
func (s *Scheduler) runCacheRefreshTask(ctx context.Context) {
	s.runEvery(ctx, "doctor_cache_refresh", s.cacheInterval, func() {
		s.doctors.PurgeCache()
		s.logger.Debug("Doctor cache purged")
	})
}

// runDialogSweepTask освобождает память от диалогов, к которым не вернулись
func (s *Scheduler) runDialogSweepTask(ctx context.Context) {
	s.runEvery(ctx, "dialog_sweep", s.sweepInterval, func() {
		if purged := s.dialogs.PurgeExpired(); purged > 0 {
			s.logger.Debug("Expired dialogs purged", zap.Int("count", purged))
		}
	})
}

func (s *Scheduler) runEvery(ctx context.Context, task string, interval time.Duration, fn func()) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fn()
		case <-s.stopChan:
			s.logger.Info("Background task stopped", zap.String("task", task))
			return
		case <-ctx.Done():
			s.logger.Info("Background task cancelled", zap.String("task", task))
			return
		}
	}
}
