package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

// defaultSchedule runs maintenance daily at 03:00.
const defaultSchedule = "0 3 * * *"

// MaintenanceScheduler periodically enqueues the background cleanup tasks:
// orphan cover removal and audit event retention.
type MaintenanceScheduler struct {
	taskClient    *tasks.Client
	schedule      string
	retentionDays int
	coverMinAge   time.Duration

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a new scheduler instance.
// A nil task client disables scheduling entirely.
func NewMaintenanceScheduler(taskClient *tasks.Client, schedule string, retentionDays int, coverMinAge time.Duration) *MaintenanceScheduler {
	if schedule == "" {
		schedule = defaultSchedule
	}
	return &MaintenanceScheduler{
		taskClient:    taskClient,
		schedule:      schedule,
		retentionDays: retentionDays,
		coverMinAge:   coverMinAge,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if a task queue is available.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.taskClient == nil {
		zap.L().Info("maintenance scheduler: task queue disabled, not starting")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runMaintenance()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	zap.L().Info("maintenance scheduler started",
		zap.String("schedule", s.schedule),
		zap.Timep("next_run", s.nextRunLocked()))

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to complete.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	zap.L().Info("maintenance scheduler stopped")
}

// RunNow triggers an immediate maintenance run.
func (s *MaintenanceScheduler) RunNow() {
	go s.runMaintenance()
}

// IsRunning returns whether the scheduler is active.
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next maintenance run will occur.
func (s *MaintenanceScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	return s.nextRunLocked()
}

func (s *MaintenanceScheduler) nextRunLocked() *time.Time {
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runMaintenance enqueues both cleanup tasks. The queue itself serializes
// execution, so overlapping runs only produce duplicate no-op tasks.
func (s *MaintenanceScheduler) runMaintenance() {
	coverIDs, err := s.taskClient.Add(tasks.CleanupOrphanCoversTask{
		MinAgeMinutes: int(s.coverMinAge.Minutes()),
	}).Save()
	if err != nil {
		zap.L().Error("failed to enqueue cover cleanup task", zap.Error(err))
	}

	auditIDs, err := s.taskClient.Add(tasks.CleanupAuditEventsTask{
		RetentionDays: s.retentionDays,
	}).Save()
	if err != nil {
		zap.L().Error("failed to enqueue audit cleanup task", zap.Error(err))
	}

	zap.L().Info("enqueued maintenance tasks",
		zap.Strings("cover_task_ids", coverIDs),
		zap.Strings("audit_task_ids", auditIDs))
}
