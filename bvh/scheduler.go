package bvh

import (
	"sync"
)

// TaskFactory creates a Task for a worker. Each worker receives its own
// Task so that tasks can keep private scratch state.
type TaskFactory func() Task

// Scheduler drives a Task over a tree in top-down order until no more splits
// are produced.
//
// Work items with at least threshold primitives are pushed to a queue shared
// by all workers; smaller items are processed inline by the worker that
// produced them using an explicit stack. When a single worker is used the
// processing order, and therefore the generated tree, is deterministic.
type Scheduler struct {
	workers   int
	threshold int
}

// NewScheduler creates a scheduler that uses the given number of workers.
func NewScheduler(workers, threshold int) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{
		workers:   workers,
		threshold: threshold,
	}
}

// Run processes root and all work items derived from it. It returns once the
// entire subtree has been built.
func (s *Scheduler) Run(newTask TaskFactory, root WorkItem) {
	if s.workers == 1 || root.WorkSize() < s.threshold {
		s.runInline(newTask(), root)
		return
	}

	queue := newWorkQueue()
	queue.push(root)

	var wg sync.WaitGroup
	wg.Add(s.workers)
	for w := 0; w < s.workers; w++ {
		go func() {
			defer wg.Done()
			task := newTask()
			for {
				item, ok := queue.pop()
				if !ok {
					return
				}

				if item.WorkSize() < s.threshold {
					s.runInline(task, item)
				} else if left, right, split := task.Build(item); split {
					queue.push(left, right)
				}
				queue.done()
			}
		}()
	}
	wg.Wait()
}

// Process item and its descendants on the calling goroutine.
func (s *Scheduler) runInline(task Task, item WorkItem) {
	stack := []WorkItem{item}
	for len(stack) > 0 {
		item = stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		left, right, split := task.Build(item)
		if !split {
			continue
		}

		// Visit the left child first.
		stack = append(stack, right, left)
	}
}

// A LIFO queue of work items that tracks the number of items that are
// either queued or being processed.
type workQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []WorkItem
	pending int
}

func newWorkQueue() *workQueue {
	q := &workQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *workQueue) push(items ...WorkItem) {
	q.mu.Lock()
	q.items = append(q.items, items...)
	q.pending += len(items)
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Pop blocks until an item is available or all work has been completed, in
// which case it returns false.
func (q *workQueue) pop() (WorkItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && q.pending > 0 {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return WorkItem{}, false
	}

	item := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return item, true
}

// Mark a popped item as processed.
func (q *workQueue) done() {
	q.mu.Lock()
	q.pending--
	finished := q.pending == 0
	q.mu.Unlock()
	if finished {
		q.cond.Broadcast()
	}
}
