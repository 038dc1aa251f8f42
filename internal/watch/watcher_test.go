package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchRunsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	ran := make(chan struct{}, 8)
	w := New(path, 10*time.Millisecond, nil, func(ctx context.Context) error {
		ran <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// Give the watcher time to register before touching the file.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("two"), 0o644))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("callback not invoked after a file change")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancellation")
	}
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	ran := make(chan struct{}, 8)
	w := New(path, 10*time.Millisecond, nil, func(ctx context.Context) error {
		ran <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.bin"), []byte("x"), 0o644))

	select {
	case <-ran:
		t.Fatal("callback invoked for a sibling file")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	<-done
}

func TestWatchPropagatesRunError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	runErr := errors.New("refill failed")
	w := New(path, 10*time.Millisecond, nil, func(ctx context.Context) error {
		return runErr
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("two"), 0o644))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, runErr)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not surface the callback error")
	}
}
