package handlers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/on-the-ground/effect_ive_profile/effects/internal/handlers"
	"github.com/on-the-ground/effect_ive_profile/effects/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logLine implements Partitionable for testing partitioned dispatching.
type logLine struct {
	runID string
	text  string
}

func (l logLine) PartitionKey() string {
	return l.runID
}

func TestFireAndForgetHandler_BasicExecution(t *testing.T) {
	ctx := context.Background()

	received := make(chan string, 1)
	handler := handlers.NewFireAndForgetHandler(
		ctx,
		10,
		func(ctx context.Context, msg string) {
			received <- msg
		},
		func() {}, // no-op teardown
	)
	defer handler.Close()

	handler.FireAndForgetEffect(ctx, "Updating Profile")

	select {
	case msg := <-received:
		assert.Equal(t, "Updating Profile", msg)
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for handler")
	}
}

func TestFireAndForgetHandler_CancelledCallerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var mu sync.Mutex
	called := false
	handler := handlers.NewFireAndForgetHandler(
		context.Background(),
		10,
		func(ctx context.Context, msg string) {
			mu.Lock()
			called = true
			mu.Unlock()
		},
		func() {},
	)

	handler.FireAndForgetEffect(ctx, "should-not-send")
	handler.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, called, "handler should not have been called")
}

func TestFireAndForgetHandler_CloseRunsTeardownOnce(t *testing.T) {
	teardowns := 0
	handler := handlers.NewFireAndForgetHandler(
		context.Background(),
		1,
		func(context.Context, string) {},
		func() { teardowns++ },
	)

	handler.Close()
	handler.Close()
	assert.Equal(t, 1, teardowns)

	// dropped, not panicking
	assert.NotPanics(t, func() {
		handler.FireAndForgetEffect(context.Background(), "late")
	})
}

func TestPartitionableFireAndForgetHandler_SameKeyKeepsOrder(t *testing.T) {
	ctx := context.Background()

	var (
		mu       sync.Mutex
		received []string
		wg       sync.WaitGroup
	)
	wg.Add(4)

	handler := handlers.NewPartitionableFireAndForgetHandler(
		ctx,
		model.NewEffectScopeConfig(5, 3),
		func(ctx context.Context, msg logLine) {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			if msg.runID == "run-a" {
				received = append(received, msg.text)
			}
		},
		func() {},
	)
	defer handler.Close()

	handler.FireAndForgetEffect(ctx, logLine{runID: "run-a", text: "first"})
	handler.FireAndForgetEffect(ctx, logLine{runID: "run-b", text: "other"})
	handler.FireAndForgetEffect(ctx, logLine{runID: "run-a", text: "second"})
	handler.FireAndForgetEffect(ctx, logLine{runID: "run-a", text: "third"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for messages")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"first", "second", "third"}, received, "messages with same key should be processed in order")
}

func TestFireAndForgetHandler_CloseHandlesQueuedPayloads(t *testing.T) {
	var (
		mu       sync.Mutex
		received []string
	)
	handler := handlers.NewFireAndForgetHandler(
		context.Background(),
		8,
		func(ctx context.Context, msg string) {
			mu.Lock()
			received = append(received, msg)
			mu.Unlock()
		},
		func() {},
	)

	for _, msg := range []string{"a", "b", "c", "d"} {
		handler.FireAndForgetEffect(context.Background(), msg)
	}
	handler.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "b", "c", "d"}, received)
}
