package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestScheduler_RunsUntilCancelled(t *testing.T) {
	s := New(10*time.Millisecond, zap.NewNop())

	var ticks atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx, "test", func(ctx context.Context) error {
			ticks.Add(1)
			return nil
		})
	}()

	assert.Eventually(t, func() bool {
		return ticks.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestScheduler_SurvivesJobErrors(t *testing.T) {
	s := New(10*time.Millisecond, zap.NewNop())

	var ticks atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.Run(ctx, "test", func(ctx context.Context) error {
		ticks.Add(1)
		return errors.New("run failed")
	})

	// The ticker keeps firing even though every run errors
	assert.Eventually(t, func() bool {
		return ticks.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_NoTickBeforeInterval(t *testing.T) {
	s := New(200*time.Millisecond, zap.NewNop())

	var ticks atomic.Int32
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s.Run(ctx, "test", func(ctx context.Context) error {
		ticks.Add(1)
		return nil
	})

	assert.Equal(t, int32(0), ticks.Load())
}
