package sweep

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Process(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("Sequential", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)
		var processedCount, batches int32

		callback := func(_ context.Context, batch []int, _ int) error {
			atomic.AddInt32(&batches, 1)
			atomic.AddInt32(&processedCount, int32(len(batch)))
			return nil
		}

		require.NoError(t, p.Process(context.Background(), items, callback, 1))
		assert.Equal(t, int32(25), processedCount)
		assert.Equal(t, int32(3), batches)
	})

	t.Run("Concurrent preserves offsets", func(t *testing.T) {
		p, err := NewProcessor[int](5)
		require.NoError(t, err)
		seen := make([]int, len(items))

		callback := func(_ context.Context, batch []int, start int) error {
			for i, v := range batch {
				seen[start+i] = v
			}
			return nil
		}

		require.NoError(t, p.Process(context.Background(), items, callback, 4))
		assert.Equal(t, items, seen)
	})

	t.Run("ErrorHandling", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)
		callback := func(_ context.Context, _ []int, start int) error {
			if start == 10 {
				return errors.New("fail")
			}
			return nil
		}

		err = p.Process(context.Background(), items, callback, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch 1 failed")
	})

	t.Run("Cancelled", func(t *testing.T) {
		p, err := NewProcessor[int](1)
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = p.Process(ctx, items, func(context.Context, []int, int) error { return nil }, 2)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		p, err := NewProcessor[int](DefaultBatchSize)
		require.NoError(t, err)
		assert.Equal(t, ErrEmptyItems, p.Process(context.Background(), nil, nil, 1))
	})

	t.Run("NilCallback", func(t *testing.T) {
		p, err := NewProcessor[int](DefaultBatchSize)
		require.NoError(t, err)
		assert.Equal(t, ErrNilCallback, p.Process(context.Background(), items, nil, 1))
	})

	t.Run("InvalidBatchSize", func(t *testing.T) {
		_, err := NewProcessor[int](0)
		require.ErrorIs(t, err, ErrInvalidBatchSize)
		_, err = NewProcessor[int](2000)
		require.ErrorIs(t, err, ErrInvalidBatchSize)
	})
}

func TestProcessorBatches(t *testing.T) {
	p, err := NewProcessor[int](10)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 10}, {10, 20}, {20, 25}}, p.Batches(25))
	assert.Empty(t, p.Batches(0))
}

func TestProcessorProgress(t *testing.T) {
	p, err := NewProcessor[int](4)
	require.NoError(t, err)

	var mu sync.Mutex
	var snapshots []ProgressSnapshot
	p.WithProgressCallback(func(s ProgressSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		snapshots = append(snapshots, s)
	})

	items := make([]int, 10)
	require.NoError(t, p.Process(context.Background(), items, func(context.Context, []int, int) error { return nil }, 1))

	require.Len(t, snapshots, 3)
	last := snapshots[len(snapshots)-1]
	assert.True(t, last.IsComplete())
	assert.InDelta(t, 100.0, last.PercentComplete, 1e-9)
	assert.Equal(t, 3, last.ProcessedBatches)
	assert.Equal(t, 3, last.TotalBatches)
}
