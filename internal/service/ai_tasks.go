package service

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTaskBusy is returned when an AI operation is started while the same
// operation is still running for the session.
var ErrTaskBusy = errors.New("ai task already running")

// AIOperation names one assist operation.
type AIOperation string

const (
	AIOpText    AIOperation = "text"
	AIOpTitles  AIOperation = "titles"
	AIOpOutline AIOperation = "outline"
	AIOpSEO     AIOperation = "seo"
	AIOpImage   AIOperation = "image"
	AIOpLogo    AIOperation = "logo"
)

// AIOperations lists every tracked operation in display order.
var AIOperations = []AIOperation{AIOpText, AIOpTitles, AIOpOutline, AIOpSEO, AIOpImage, AIOpLogo}

// ParseAIOperation maps a route parameter onto a known operation.
func ParseAIOperation(raw string) (AIOperation, bool) {
	for _, op := range AIOperations {
		if string(op) == raw {
			return op, true
		}
	}
	return "", false
}

// TaskStatus reports whether an operation is running for a session.
type TaskStatus struct {
	Operation AIOperation `json:"operation"`
	Busy      bool        `json:"busy"`
	StartedAt *time.Time  `json:"startedAt,omitempty"`
}

type taskKey struct {
	owner string
	op    AIOperation
}

type runningTask struct {
	cancel    context.CancelFunc
	startedAt time.Time
}

// TaskTracker keeps the busy/idle state of AI operations per session and
// lets another request cancel a running one.
type TaskTracker struct {
	mu      sync.Mutex
	running map[taskKey]*runningTask
	timeout time.Duration
	now     func() time.Time
}

// NewTaskTracker creates a tracker whose tasks time out after timeout.
// A non-positive timeout disables the deadline.
func NewTaskTracker(timeout time.Duration) *TaskTracker {
	return &TaskTracker{
		running: make(map[taskKey]*runningTask),
		timeout: timeout,
		now:     time.Now,
	}
}

// Start marks op busy for owner and returns the task context together with a
// done func that must be called when the work finishes.
func (t *TaskTracker) Start(parent context.Context, owner string, op AIOperation) (context.Context, func(), error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := taskKey{owner: owner, op: op}
	if _, busy := t.running[key]; busy {
		return nil, nil, ErrTaskBusy
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if t.timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, t.timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}

	task := &runningTask{cancel: cancel, startedAt: t.now()}
	t.running[key] = task

	done := func() {
		cancel()
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.running[key] == task {
			delete(t.running, key)
		}
	}
	return ctx, done, nil
}

// Cancel aborts the running op of owner. It reports whether a task was running.
func (t *TaskTracker) Cancel(owner string, op AIOperation) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := taskKey{owner: owner, op: op}
	task, ok := t.running[key]
	if !ok {
		return false
	}
	task.cancel()
	delete(t.running, key)
	return true
}

// CancelAll aborts every task of owner, used on logout.
func (t *TaskTracker) CancelAll(owner string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, task := range t.running {
		if key.owner == owner {
			task.cancel()
			delete(t.running, key)
		}
	}
}

// Busy reports whether op is running for owner.
func (t *TaskTracker) Busy(owner string, op AIOperation) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.running[taskKey{owner: owner, op: op}]
	return ok
}

// Status returns the state of every operation for owner.
func (t *TaskTracker) Status(owner string) []TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	statuses := make([]TaskStatus, 0, len(AIOperations))
	for _, op := range AIOperations {
		status := TaskStatus{Operation: op}
		if task, ok := t.running[taskKey{owner: owner, op: op}]; ok {
			started := task.startedAt
			status.Busy = true
			status.StartedAt = &started
		}
		statuses = append(statuses, status)
	}
	return statuses
}
