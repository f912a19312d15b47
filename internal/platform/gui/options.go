// Package gui runs the game in a pixel window using Ebitengine. The window
// driver is only compiled with the ebiten build tag; without it Run reports
// ErrNotBuilt.
package gui

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// ErrNotBuilt is returned by Run in builds without the ebiten tag.
var ErrNotBuilt = errors.New("gui: window support requires building with -tags ebiten")

// Game is a variant that can also expose its frame as rectangles.
type Game interface {
	registry.Game
	Snapshot() flappy.Snapshot
}

// Options configures the window.
type Options struct {
	Width, Height int // Initial window size in pixels
	TickRate      int
	Seed          int64
	Player        string
	Store         *storage.Store // Optional
	Logger        *log.Logger    // Optional
	Audio         config.AudioConfig
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = int(flappy.BaseWidth), int(flappy.BaseHeight)
	}
	if o.TickRate <= 0 {
		o.TickRate = 60
	}
	return o
}
