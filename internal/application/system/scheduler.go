package system

import "container/heap"

// timeEpsilon absorbs float drift so a task due "now" is not a frame late
const timeEpsilon = 1e-9

// Guard is checked right before a scheduled task runs. A task whose guard
// returns false is dropped.
type Guard func() bool

type task struct {
	due   float64
	seq   uint64
	guard Guard
	fn    func()
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}
func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *taskQueue) Push(x any)   { *q = append(*q, x.(*task)) }
func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Scheduler runs delayed callbacks on simulation time. It is advanced once
// per frame and never runs anything on its own.
type Scheduler struct {
	now   float64
	seq   uint64
	tasks taskQueue
}

// NewScheduler creates an empty scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the simulation time in seconds
func (s *Scheduler) Now() float64 {
	return s.now
}

// Pending returns the number of queued tasks
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// After queues fn to run delay seconds from now. guard may be nil.
func (s *Scheduler) After(delay float64, guard Guard, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	heap.Push(&s.tasks, &task{
		due:   s.now + delay,
		seq:   s.seq,
		guard: guard,
		fn:    fn,
	})
}

// Advance moves time forward by dt and runs every task that became due, in
// due order. While a task runs the clock reads its due time, so tasks it
// queues are timed from there and run in the same call if already due.
// Returns the number of callbacks executed.
func (s *Scheduler) Advance(dt float64) int {
	end := s.now
	if dt > 0 {
		end += dt
	}

	ran := 0
	for len(s.tasks) > 0 && s.tasks[0].due <= end+timeEpsilon {
		t := heap.Pop(&s.tasks).(*task)
		if t.due > s.now {
			s.now = t.due
		}
		if t.guard != nil && !t.guard() {
			continue
		}
		t.fn()
		ran++
	}
	s.now = end
	return ran
}

// Clear drops every pending task
func (s *Scheduler) Clear() {
	s.tasks = s.tasks[:0]
}
