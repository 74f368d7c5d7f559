package catch

import (
	"container/heap"
	"time"
)

// Task is a handle to a scheduled callback. Stopping a task prevents
// future firings only; a task that is already running finishes.
type Task struct {
	at      time.Time
	period  time.Duration // 0 for one-shot tasks
	seq     uint64
	fn      func()
	stopped bool
	index   int
}

// Stop cancels the task. It reports whether the task was still pending.
// Stop on a nil task is a no-op.
func (t *Task) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Scheduler runs delayed and repeating tasks on a virtual clock.
// Time only moves when the owner calls Advance, which makes every
// timing source deterministic and keeps all callbacks on the caller's
// goroutine. A Scheduler is not safe for concurrent use.
type Scheduler struct {
	now   time.Time
	seq   uint64
	queue taskQueue
}

// NewScheduler creates a scheduler whose clock starts at start.
func NewScheduler(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// AfterFunc schedules fn to run once after d.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Task {
	return s.schedule(d, 0, fn)
}

// Every schedules fn to run every period, first after one period.
func (s *Scheduler) Every(period time.Duration, fn func()) *Task {
	if period <= 0 {
		period = time.Millisecond
	}
	return s.schedule(period, period, fn)
}

func (s *Scheduler) schedule(d, period time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Task{
		at:     s.now.Add(d),
		period: period,
		seq:    s.seq,
		fn:     fn,
	}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock to now, firing every due task in deadline
// order. While a task runs, Now reports that task's deadline. Tasks
// scheduled by a callback fire in the same call if they fall due.
// Advancing backwards is ignored.
func (s *Scheduler) Advance(now time.Time) {
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.stopped {
			heap.Pop(&s.queue)
			continue
		}
		if next.at.After(now) {
			break
		}
		heap.Pop(&s.queue)
		if next.at.After(s.now) {
			s.now = next.at
		}
		if next.period > 0 {
			s.seq++
			next.seq = s.seq
			next.at = next.at.Add(next.period)
			heap.Push(&s.queue, next)
		}
		next.fn()
	}
	if now.After(s.now) {
		s.now = now
	}
}

// Pending returns the number of live tasks.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.stopped {
			n++
		}
	}
	return n
}

// taskQueue is a min-heap ordered by deadline, then scheduling order.
type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
