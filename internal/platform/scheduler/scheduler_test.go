package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

type countingSyncRunner struct {
	calls atomic.Int64
	err   error
}

func (c *countingSyncRunner) RunSync(ctx context.Context) (*models.SyncRun, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &models.SyncRun{Status: models.SyncRunCompleted}, nil
}

func TestScheduler_RunOnStartup(t *testing.T) {
	runner := &countingSyncRunner{}
	s := New(runner, time.Hour, true, slog.Default())

	s.Start()
	assert.Eventually(t, func() bool {
		return runner.calls.Load() == 1
	}, time.Second, 10*time.Millisecond)
	s.Stop()
}

func TestScheduler_TicksOnInterval(t *testing.T) {
	runner := &countingSyncRunner{}
	s := New(runner, 20*time.Millisecond, false, slog.Default())

	s.Start()
	assert.Eventually(t, func() bool {
		return runner.calls.Load() >= 2
	}, time.Second, 10*time.Millisecond)
	s.Stop()
}

func TestScheduler_StopPreventsFurtherRuns(t *testing.T) {
	runner := &countingSyncRunner{}
	s := New(runner, 20*time.Millisecond, false, slog.Default())

	s.Start()
	s.Stop()

	count := runner.calls.Load()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, count, runner.calls.Load())
}

func TestScheduler_ToleratesActiveRun(t *testing.T) {
	runner := &countingSyncRunner{err: fmt.Errorf("%w: busy", apperrors.ErrSyncInProgress)}
	s := New(runner, 20*time.Millisecond, true, slog.Default())

	s.Start()
	assert.Eventually(t, func() bool {
		return runner.calls.Load() >= 2
	}, time.Second, 10*time.Millisecond)
	s.Stop()
}
