// Package loop drives a game through periodic callbacks.
//
// A Scheduler hides where the callbacks come from (a Bubble Tea tick, an
// Ebitengine frame, a virtual clock in tests). Implementations must run
// callbacks one at a time so the game's state never needs a lock.
package loop

import "time"

// Handle cancels a scheduled task.
type Handle interface {
	Stop()
}

// Scheduler runs a task repeatedly at a fixed interval.
type Scheduler interface {
	Every(interval time.Duration, task func()) Handle
}

// ManualScheduler is a virtual-clock Scheduler. Time only moves when Advance
// is called, which makes it suitable for tests and for frame-driven front ends
// that feed it the elapsed wall-clock time.
type ManualScheduler struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	interval time.Duration
	due      time.Duration
	seq      int
	fn       func()
	stopped  bool
}

func (t *manualTask) Stop() {
	t.stopped = true
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every schedules task to run each interval, first after one full interval.
// A non-positive interval yields a handle that never fires.
func (s *ManualScheduler) Every(interval time.Duration, task func()) Handle {
	t := &manualTask{
		interval: interval,
		due:      s.now + interval,
		seq:      s.seq,
		fn:       task,
	}
	s.seq++
	if interval <= 0 || task == nil {
		t.stopped = true
		return t
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every task that falls due in
// deadline order. Tasks due at the same instant run in registration order.
func (s *ManualScheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d

	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		next.due += next.interval
		next.fn()
	}

	s.now = target
	s.prune()
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of live tasks.
func (s *ManualScheduler) Pending() int {
	s.prune()
	return len(s.tasks)
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTask {
	var best *manualTask
	for _, t := range s.tasks {
		if t.stopped || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *ManualScheduler) prune() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	s.tasks = live
}
