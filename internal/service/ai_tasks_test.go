package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskTrackerRejectsSecondStartWhileBusy(t *testing.T) {
	tracker := NewTaskTracker(time.Minute)

	_, done, err := tracker.Start(context.Background(), "s1", AIOpTitles)
	require.NoError(t, err)
	assert.True(t, tracker.Busy("s1", AIOpTitles))

	_, _, err = tracker.Start(context.Background(), "s1", AIOpTitles)
	assert.ErrorIs(t, err, ErrTaskBusy)

	// other sessions and other operations are independent
	_, doneOther, err := tracker.Start(context.Background(), "s2", AIOpTitles)
	require.NoError(t, err)
	doneOther()
	_, doneSEO, err := tracker.Start(context.Background(), "s1", AIOpSEO)
	require.NoError(t, err)
	doneSEO()

	done()
	assert.False(t, tracker.Busy("s1", AIOpTitles))
}

func TestTaskTrackerCancelAbortsContext(t *testing.T) {
	tracker := NewTaskTracker(time.Minute)

	ctx, done, err := tracker.Start(context.Background(), "s1", AIOpText)
	require.NoError(t, err)
	defer done()

	assert.True(t, tracker.Cancel("s1", AIOpText))
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("expected context to be cancelled")
	}
	assert.False(t, tracker.Busy("s1", AIOpText))
	assert.False(t, tracker.Cancel("s1", AIOpText))
}

func TestTaskTrackerDoneAfterCancelKeepsNewTask(t *testing.T) {
	tracker := NewTaskTracker(time.Minute)

	_, oldDone, err := tracker.Start(context.Background(), "s1", AIOpImage)
	require.NoError(t, err)
	tracker.Cancel("s1", AIOpImage)

	_, newDone, err := tracker.Start(context.Background(), "s1", AIOpImage)
	require.NoError(t, err)
	defer newDone()

	oldDone()
	assert.True(t, tracker.Busy("s1", AIOpImage))
}

func TestTaskTrackerTimeout(t *testing.T) {
	tracker := NewTaskTracker(20 * time.Millisecond)

	ctx, done, err := tracker.Start(context.Background(), "s1", AIOpOutline)
	require.NoError(t, err)
	defer done()

	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("expected task to time out")
	}
}

func TestTaskTrackerStatus(t *testing.T) {
	tracker := NewTaskTracker(time.Minute)
	_, done, err := tracker.Start(context.Background(), "s1", AIOpSEO)
	require.NoError(t, err)
	defer done()

	statuses := tracker.Status("s1")
	require.Len(t, statuses, len(AIOperations))
	for _, status := range statuses {
		if status.Operation == AIOpSEO {
			assert.True(t, status.Busy)
			assert.NotNil(t, status.StartedAt)
			continue
		}
		assert.False(t, status.Busy)
		assert.Nil(t, status.StartedAt)
	}

	tracker.CancelAll("s1")
	assert.False(t, tracker.Busy("s1", AIOpSEO))
}

func TestParseAIOperation(t *testing.T) {
	op, ok := ParseAIOperation("seo")
	assert.True(t, ok)
	assert.Equal(t, AIOpSEO, op)

	_, ok = ParseAIOperation("poem")
	assert.False(t, ok)
}
