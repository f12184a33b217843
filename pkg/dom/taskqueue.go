package dom

import (
	"context"
	"sync"
)

// TaskQueue is an unbounded FIFO of tasks executed on a single logical
// execution context.
//
// Producers on any goroutine call Post. Consumption happens either through
// Run, which loops until the context is done, or through Drain, which runs
// synchronously until the queue is empty (the form tests and the CLI use).
// Tasks themselves may Post further tasks.
type TaskQueue struct {
	mu     sync.Mutex
	tasks  []func()
	wake   chan struct{}
	closed bool
}

// NewTaskQueue creates an empty task queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{
		wake: make(chan struct{}, 1),
	}
}

// Post enqueues a task. Safe to call from any goroutine. Tasks posted after
// Close are dropped.
func (q *TaskQueue) Post(task func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Drain runs tasks until the queue is empty and returns how many ran.
func (q *TaskQueue) Drain() int {
	n := 0
	for {
		task, ok := q.pop()
		if !ok {
			return n
		}
		task()
		n++
	}
}

// Run executes tasks until ctx is done, sleeping while the queue is empty.
// It returns ctx.Err().
func (q *TaskQueue) Run(ctx context.Context) error {
	for {
		q.Drain()
		select {
		case <-ctx.Done():
			// Run what was posted before cancellation won the race.
			q.Drain()
			return ctx.Err()
		case <-q.wake:
		}
	}
}

// Close marks the queue closed; subsequent Posts are dropped. Tasks already
// queued still run.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Len returns the number of queued tasks.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

func (q *TaskQueue) pop() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return nil, false
	}
	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	return task, true
}
