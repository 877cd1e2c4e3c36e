package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunsUntilCancelled(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(logger.Nop())
	s.AddJob("count", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	s.Wait()
	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_RunOnceKeepsGoingAfterFailure(t *testing.T) {
	var order []string
	s := NewScheduler(logger.Nop())
	s.AddJob("fails", time.Hour, func(ctx context.Context) error {
		order = append(order, "fails")
		return errors.New("boom")
	})
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		order = append(order, "ok")
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"fails", "ok"}, order)
}
