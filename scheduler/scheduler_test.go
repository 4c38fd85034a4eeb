package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int64
}

func (c *countingSweeper) ClearExpired() int {
	c.calls.Add(1)
	return 0
}

func TestScheduler(t *testing.T) {
	t.Run("sweeps periodically between start and stop", func(t *testing.T) {
		sweeper := &countingSweeper{}
		s := NewScheduler(sweeper, 20*time.Millisecond)

		require.NoError(t, s.Start())
		time.Sleep(90 * time.Millisecond)
		s.Stop()

		swept := sweeper.calls.Load()
		assert.GreaterOrEqual(t, swept, int64(1))

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, swept, sweeper.calls.Load(), "no sweeps after stop")
	})

	t.Run("no sweeps before start", func(t *testing.T) {
		sweeper := &countingSweeper{}
		NewScheduler(sweeper, 20*time.Millisecond)

		time.Sleep(50 * time.Millisecond)
		assert.Zero(t, sweeper.calls.Load())
	})
}
