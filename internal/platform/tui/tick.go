// Package tui provides the Bubble Tea front end for the game.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/loop"
)

// taskMsg asks Update to run a scheduled task.
type taskMsg struct {
	id int
}

// teaScheduler implements loop.Scheduler on top of tea.Tick. Every task runs
// inside Update, so tasks never overlap with input handling.
type teaScheduler struct {
	tasks   map[int]*teaTask
	nextID  int
	pending []tea.Cmd
}

type teaTask struct {
	id       int
	interval time.Duration
	fn       func()
	sched    *teaScheduler
}

// Stop cancels the task. A tick already in flight is dropped on arrival.
func (t *teaTask) Stop() {
	delete(t.sched.tasks, t.id)
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{tasks: make(map[int]*teaTask)}
}

// Every registers a task. The first tick is armed by the next Flush.
func (s *teaScheduler) Every(interval time.Duration, task func()) loop.Handle {
	t := &teaTask{
		id:       s.nextID,
		interval: interval,
		fn:       task,
		sched:    s,
	}
	s.nextID++
	if interval <= 0 || task == nil {
		return t
	}
	s.tasks[t.id] = t
	s.pending = append(s.pending, s.arm(t))
	return t
}

// Flush returns the commands that arm newly registered tasks.
func (s *teaScheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Fire runs the task and re-arms it. Stopped tasks are ignored.
func (s *teaScheduler) Fire(msg taskMsg) tea.Cmd {
	t, ok := s.tasks[msg.id]
	if !ok {
		return nil
	}
	t.fn()
	if _, live := s.tasks[msg.id]; !live {
		return nil
	}
	return s.arm(t)
}

// Len returns the number of live tasks.
func (s *teaScheduler) Len() int {
	return len(s.tasks)
}

func (s *teaScheduler) arm(t *teaTask) tea.Cmd {
	id := t.id
	return tea.Tick(t.interval, func(time.Time) tea.Msg {
		return taskMsg{id: id}
	})
}
