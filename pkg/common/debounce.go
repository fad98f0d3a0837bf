package common

import (
	"cmp"
	"slices"
	"time"
)

// Debouncer coalesces bursts of Trigger calls into one run of fn after a
// quiet period. It is not safe for concurrent use; trigger it from the loop.
type Debouncer struct {
	scheduler Scheduler
	delay     time.Duration
	fn        func()
	pending   Cancel
}

func NewDebouncer(scheduler Scheduler, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		scheduler: scheduler,
		delay:     delay,
		fn:        fn,
	}
}

func (d *Debouncer) Trigger() {
	if d.pending != nil {
		d.pending()
	}
	d.pending = d.scheduler.Schedule(d.run, d.delay)
}

func (d *Debouncer) run() {
	d.pending = nil
	d.fn()
}

func (d *Debouncer) Pending() bool {
	return d.pending != nil
}

// Flush runs a pending call right away.
func (d *Debouncer) Flush() {
	if d.pending == nil {
		return
	}
	d.pending()
	d.run()
}

// ManualScheduler only runs tasks when the clock is advanced. Tests use it in
// place of a Loop.
type ManualScheduler struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	due       time.Duration
	seq       int
	fn        func()
	cancelled bool
}

func (m *ManualScheduler) Schedule(fn func(), delay time.Duration) Cancel {
	m.seq++
	task := &manualTask{due: m.now + delay, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, task)
	return func() {
		task.cancelled = true
	}
}

// Advance moves the clock forward and runs every task that came due, in due
// order. Tasks scheduled while advancing run too if they fall inside d.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		task := m.popDue(target)
		if task == nil {
			break
		}
		m.now = task.due
		task.fn()
	}
	m.now = target
}

func (m *ManualScheduler) popDue(target time.Duration) *manualTask {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.tasks = live
	slices.SortStableFunc(m.tasks, func(a, b *manualTask) int {
		return cmp.Or(cmp.Compare(a.due, b.due), cmp.Compare(a.seq, b.seq))
	})
	if len(m.tasks) == 0 || m.tasks[0].due > target {
		return nil
	}
	task := m.tasks[0]
	m.tasks = m.tasks[1:]
	return task
}

func (m *ManualScheduler) Pending() int {
	count := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			count++
		}
	}
	return count
}
