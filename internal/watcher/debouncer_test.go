package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	batches := make(chan []FileChangePayload, 4)
	d := NewDebouncer(20*time.Millisecond, func(batch []FileChangePayload) {
		batches <- batch
	})
	defer d.Stop()

	d.Add(FileChangePayload{EventType: EventChange, Filename: "b.ts"})
	d.Add(FileChangePayload{EventType: EventChange, Filename: "a.ts"})
	d.Add(FileChangePayload{EventType: EventRename, Filename: "b.ts"})

	select {
	case batch := <-batches:
		assert.Equal(t, []FileChangePayload{
			{EventType: EventChange, Filename: "a.ts"},
			{EventType: EventRename, Filename: "b.ts"},
		}, batch)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced batch was not delivered")
	}

	select {
	case batch := <-batches:
		t.Fatalf("unexpected second batch %v", batch)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	batches := make(chan []FileChangePayload, 4)
	d := NewDebouncer(10*time.Millisecond, func(batch []FileChangePayload) {
		batches <- batch
	})
	defer d.Stop()

	d.Add(FileChangePayload{EventType: EventChange, Filename: "a.ts"})
	first := receive(t, batches)
	d.Add(FileChangePayload{EventType: EventChange, Filename: "b.ts"})
	second := receive(t, batches)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "a.ts", first[0].Filename)
	assert.Equal(t, "b.ts", second[0].Filename)
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	batches := make(chan []FileChangePayload, 1)
	d := NewDebouncer(30*time.Millisecond, func(batch []FileChangePayload) {
		batches <- batch
	})

	d.Add(FileChangePayload{EventType: EventChange, Filename: "a.ts"})
	d.Stop()
	d.Add(FileChangePayload{EventType: EventChange, Filename: "b.ts"})

	select {
	case batch := <-batches:
		t.Fatalf("batch delivered after stop: %v", batch)
	case <-time.After(100 * time.Millisecond):
	}
}

func receive(t *testing.T, ch <-chan []FileChangePayload) []FileChangePayload {
	t.Helper()
	select {
	case batch := <-ch:
		return batch
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for batch")
		return nil
	}
}
