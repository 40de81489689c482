// Package scheduler runs periodic maintenance against the study database.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/berean-study/berean/internal/database"
)

// MaintenanceScheduler periodically compacts and verifies the SQLite
// store. Annotation workloads are append-heavy with occasional cascading
// deletes, so VACUUM and ANALYZE keep query plans and file size sane.
type MaintenanceScheduler struct {
	db       *database.Database
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a new scheduler instance.
func NewMaintenanceScheduler(db *database.Database, schedule string) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		db:       db,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runMaintenance()
	})
	if err != nil {
		return fmt.Errorf("invalid maintenance schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Maintenance scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to
// complete.
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

	log.Printf("Maintenance scheduler: stopped")
}

// RunNow triggers an immediate maintenance pass.
func (s *MaintenanceScheduler) RunNow() {
	go s.runMaintenance()
}

// IsRunning returns whether the scheduler is active.
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next maintenance pass will occur.
func (s *MaintenanceScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *MaintenanceScheduler) runMaintenance() {
	log.Printf("Maintenance: starting")
	startTime := time.Now()

	var integrity string
	if err := s.db.DB.Raw("PRAGMA integrity_check").Scan(&integrity).Error; err != nil {
		log.Printf("Maintenance: integrity check failed: %v", err)
		return
	}
	if integrity != "ok" {
		log.Printf("Maintenance: integrity check reported: %s", integrity)
	}

	if err := s.db.DB.Exec("VACUUM").Error; err != nil {
		log.Printf("Maintenance: vacuum failed: %v", err)
		return
	}
	if err := s.db.DB.Exec("ANALYZE").Error; err != nil {
		log.Printf("Maintenance: analyze failed: %v", err)
		return
	}

	log.Printf("Maintenance: completed in %v", time.Since(startTime).Round(time.Millisecond))
}
