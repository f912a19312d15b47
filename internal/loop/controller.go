package loop

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game is the part of a game the controller drives.
type Game interface {
	// Step advances the simulation by one frame.
	Step() core.StepResult

	// Press applies a discrete input immediately.
	Press(a core.Action) core.StepResult

	// Timers returns the fixed-interval tasks that run beside the frame tick.
	Timers() []core.Timer

	// State returns the current game state.
	State() core.GameState
}

// Observer receives every result the controller produces.
type Observer interface {
	OnStep(res core.StepResult)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(res core.StepResult)

// OnStep calls f(res).
func (f ObserverFunc) OnStep(res core.StepResult) { f(res) }

// Controller owns the binding between a game and a scheduler.
// Its lifecycle is NewController -> Start -> (run until game over) ->
// Press to restart, or Stop to discard.
type Controller struct {
	game     Game
	sched    Scheduler
	frame    time.Duration
	observer Observer
	handles  []Handle
}

// Option configures a Controller.
type Option func(*Controller)

// WithTickRate sets the frame rate. Non-positive rates keep the 60 Hz default.
func WithTickRate(rate int) Option {
	return func(c *Controller) {
		if rate > 0 {
			c.frame = time.Second / time.Duration(rate)
		}
	}
}

// WithObserver registers an observer for every step and input result.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observer = o
	}
}

// NewController creates a stopped controller.
func NewController(g Game, s Scheduler, opts ...Option) *Controller {
	c := &Controller{
		game:  g,
		sched: s,
		frame: time.Second / 60,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start registers the frame tick and the game's timers. Starting a running
// controller is a no-op.
func (c *Controller) Start() {
	if c.Active() {
		return
	}

	c.handles = append(c.handles, c.sched.Every(c.frame, c.tick))
	for _, t := range c.game.Timers() {
		c.handles = append(c.handles, c.sched.Every(t.Interval, t.Fire))
	}
}

// Stop cancels every scheduled task. The game keeps its state.
func (c *Controller) Stop() {
	for _, h := range c.handles {
		h.Stop()
	}
	c.handles = nil
}

// Active reports whether the controller has tasks scheduled.
func (c *Controller) Active() bool {
	return len(c.handles) > 0
}

// Press forwards an input to the game and reports the result.
func (c *Controller) Press(a core.Action) core.StepResult {
	res := c.game.Press(a)
	c.notify(res)
	return res
}

// Terminal reports whether the current run has ended.
func (c *Controller) Terminal() bool {
	return c.game.State().GameOver
}

// FrameInterval returns the time between frame ticks.
func (c *Controller) FrameInterval() time.Duration {
	return c.frame
}

func (c *Controller) tick() {
	c.notify(c.game.Step())
}

func (c *Controller) notify(res core.StepResult) {
	if c.observer != nil {
		c.observer.OnStep(res)
	}
}
