package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/jobportal-app/utils"
)

type scheduledTask struct {
	spec string
	id   cron.EntryID
}

// Scheduler runs named recurring tasks. A name maps to exactly one cron
// entry, so registering the same task twice never doubles its frequency.
// A run that is still going when the next tick arrives makes that tick a
// no-op.
type Scheduler struct {
	mu    sync.Mutex
	cron  *cron.Cron
	tasks map[string]scheduledTask
}

func NewScheduler() *Scheduler {
	logger := cron.PrintfLogger(utils.InfoLogger)
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		tasks: make(map[string]scheduledTask),
	}
}

// Register schedules fn under name. The same name and spec again is a
// no-op and returns false; a different spec replaces the previous entry.
func (s *Scheduler) Register(name, spec string, fn func()) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.tasks[name]; ok {
		if existing.spec == spec {
			return false, nil
		}
		s.cron.Remove(existing.id)
		delete(s.tasks, name)
	}

	id, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		return false, fmt.Errorf("invalid schedule %q for %s: %w", spec, name, err)
	}
	s.tasks[name] = scheduledTask{spec: spec, id: id}

	utils.InfoLogger.WithFields(logrus.Fields{"task": name, "spec": spec}).Info("task scheduled")
	return true, nil
}

// Entries returns the number of cron entries currently scheduled.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Spec returns the schedule of a registered task.
func (s *Scheduler) Spec(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[name]
	return task.spec, ok
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running tasks until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RegisterExpirySweep schedules the expiry sweeper as the close-expired task.
func RegisterExpirySweep(s *Scheduler, sweeper *ExpirySweeper, spec string) (bool, error) {
	if spec == "" {
		spec = DefaultExpiryCron
	}
	return s.Register(CloseExpiredTask, spec, sweeper.Run)
}
