package utils

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	messages []posthog.Message
	err      error
	closed   bool
}

func (r *recordingEnqueuer) Enqueue(m posthog.Message) error {
	r.messages = append(r.messages, m)
	return r.err
}

func (r *recordingEnqueuer) Close() error {
	r.closed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitializePosthogClient_EmptyKeyIsDisabled(t *testing.T) {
	w := InitializePosthogClient("", "https://eu.i.posthog.com", discardLogger())
	require.NotNil(t, w)
	assert.False(t, w.IsInitialized())

	// Disabled wrappers swallow calls.
	w.Enqueue("user-1", "GET_api_v1_organizations", nil)
	w.Close()
}

func TestPosthogClientWrapper_NilIsSafe(t *testing.T) {
	var w *PosthogClientWrapper
	assert.False(t, w.IsInitialized())
	w.Enqueue("user-1", "event", nil)
	w.Close()
}

func TestPosthogClientWrapper_EnqueuesCapture(t *testing.T) {
	rec := &recordingEnqueuer{}
	w := NewPosthogClientWrapper(rec, discardLogger())
	require.True(t, w.IsInitialized())

	w.Enqueue("user-1", "POST_api_v1_organizations", map[string]any{"status_code": 201})

	require.Len(t, rec.messages, 1)
	capture, ok := rec.messages[0].(posthog.Capture)
	require.True(t, ok)
	assert.Equal(t, "user-1", capture.DistinctId)
	assert.Equal(t, "POST_api_v1_organizations", capture.Event)
	assert.Equal(t, 201, capture.Properties["status_code"])

	w.Close()
	assert.True(t, rec.closed)
}

func TestPosthogClientWrapper_EnqueueErrorIsLogged(t *testing.T) {
	rec := &recordingEnqueuer{err: errors.New("queue full")}
	w := NewPosthogClientWrapper(rec, discardLogger())

	assert.NotPanics(t, func() { w.Enqueue("user-1", "event", nil) })
	assert.Len(t, rec.messages, 1)
}
