package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitIndependentHosts(t *testing.T) {
	hl := New(1, 1)
	ctx := context.Background()

	// Each host gets its own bucket, so the first request to each host
	// should not block.
	start := time.Now()
	require.NoError(t, hl.Wait(ctx, "a.example.com"))
	require.NoError(t, hl.Wait(ctx, "b.example.com"))
	assert.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestWaitRespectsContextCancellation(t *testing.T) {
	hl := New(0.001, 1) // effectively one request per ~17 minutes
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, hl.Wait(ctx, "slow.example.com"))
	// Bucket is drained; the next wait must fail with the context error.
	err := hl.Wait(ctx, "slow.example.com")
	assert.Error(t, err)
}

func TestConcurrentAccessSameHost(t *testing.T) {
	hl := New(1000, 1000)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = hl.Wait(ctx, "example.com")
		}()
	}
	wg.Wait()
}
