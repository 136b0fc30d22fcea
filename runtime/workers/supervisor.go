package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
	"vaultcast/contract"
	"vaultcast/errors"
)

const (
	defaultRestartDelay = 200 * time.Millisecond
	maxRestartDelay     = 10 * time.Second
	// a run lasting this long resets the backoff
	stableRun = time.Minute
)

// Supervisor Own a context and a Cancel function
// Run each worker in a goroutine
// Recover panics and errors
// Restart crashed workers with a doubling delay, starting at restartDelay
// Shutdown properly if parent context is canceled
// Wait for the end of all goroutines via WaitGroup
type Supervisor struct {
	Cancel       context.CancelFunc // To stop the context
	wg           *sync.WaitGroup    // Wait for the end of goroutines
	log          *slog.Logger
	workers      []contract.Worker
	restartDelay time.Duration
	restarts     atomic.Uint64 // Total restarts, logged at shutdown
}

func NewSupervisor(log *slog.Logger, restartDelay time.Duration) *Supervisor {
	if restartDelay <= 0 {
		restartDelay = defaultRestartDelay
	}
	return &Supervisor{wg: &sync.WaitGroup{}, log: log, restartDelay: restartDelay}
}

// Run Create a local cancellation trigger tied to the parent ctx
// and block until every worker stopped.
//
//	// If the parent (main) cancels, we Cancel.
//	// If WE call s.Cancel(), only our children Cancel.
func (s *Supervisor) Run(ctx context.Context) {
	// 1. We create a local cancellation trigger tied to the parent ctx
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.Cancel = cancel
	// Safety: ensure resources are cleaned up when Run exits
	defer s.Cancel()

	// 2. Every worker gets its own supervised goroutine

	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Restarts counts worker restarts since the supervisor was created.
func (s *Supervisor) Restarts() uint64 {
	return s.restarts.Load()
}

// Start runs a worker under supervision.
// The worker is executed in a dedicated goroutine. If its Run method panics
// or returns an error, the supervisor recovers and restarts it after a delay
// that doubles on every crash, up to maxRestartDelay. A run lasting stableRun
// resets the delay. A failure in one worker must not stop the supervisor itself.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	name := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()
		delay := s.restartDelay

		for {
			if ctx.Err() != nil {
				s.log.Debug("Worker not restarted, supervisor stopping", "worker", name)
				return
			}

			started := time.Now()
			// Restarted after a crash, not the entire goroutine
			err := runProtected(ctx, worker)
			switch {
			case err == nil:
				// Terminated properly, never restart !
				s.log.Info("Worker finished", "worker", name)
				return
			case ctx.Err() != nil:
				s.log.Info("Worker stopped", "worker", name)
				return
			}

			if time.Since(started) >= stableRun {
				delay = s.restartDelay
			}
			s.restarts.Add(1)
			s.log.Warn("Worker crashed, restarting", "worker", name, "error", err, "delay", delay)

			select {
			case <-ctx.Done():
				// Context canceled: priority stop.
				// Exit immediately without waiting for the restart delay.
				return
			case <-time.After(delay):
				// Delay elapsed and context is still active.
				// Proceed with the worker restart.
			}
			delay = min(delay*2, maxRestartDelay)
		}
	}()
}

// runProtected turns a panic into ErrWorkerPanic so the loop keeps going.
func runProtected(ctx context.Context, worker contract.Worker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
		}
	}()
	return worker.Run(ctx)
}

// Stop Cancel all goroutines listening channel for Ctx.Done
// Supervisor will wait for all goroutines to finish
func (s *Supervisor) Stop() {
	if s.Cancel != nil {
		s.Cancel()
	}
}
