package notifier

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	tests := []struct {
		name           string
		numTasks       int
		numWorkers     int
		expectedErrors int
	}{
		{
			name:       "Simple tasks",
			numTasks:   5,
			numWorkers: 2,
		},
		{
			name:           "Error in task",
			numTasks:       2,
			numWorkers:     2,
			expectedErrors: 1,
		},
		{
			name:       "Zero size falls back to one worker",
			numTasks:   3,
			numWorkers: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wp := NewWorkerPool(tt.numWorkers)
			defer wp.Close()

			var mu sync.Mutex
			var executed, failed int
			var wg sync.WaitGroup

			for i := 0; i < tt.numTasks; i++ {
				wg.Add(1)
				i := i
				err := wp.AddTask(context.Background(), func() error {
					defer wg.Done()
					mu.Lock()
					defer mu.Unlock()
					if i == tt.numTasks-1 && tt.expectedErrors > 0 {
						failed++
						return assert.AnError
					}
					executed++
					return nil
				})
				require.NoError(t, err)
			}

			wg.Wait()

			assert.Equal(t, tt.numTasks-tt.expectedErrors, executed)
			assert.Equal(t, tt.expectedErrors, failed)
		})
	}
}

func TestWorkerPool_CanceledContext(t *testing.T) {
	wp := NewWorkerPool(1)
	defer wp.Close()

	block := make(chan struct{})
	defer close(block)
	// Occupy the worker and fill the buffer so the next send has to wait.
	require.NoError(t, wp.AddTask(context.Background(), func() error { <-block; return nil }))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, wp.AddTask(context.Background(), func() error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := wp.AddTask(ctx, func() error {
		t.Error("task should not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkerPool_CloseTwice(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Close()
	assert.NotPanics(t, wp.Close)
}
