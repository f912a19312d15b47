package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/gui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var (
	flagWidth   int
	flagHeight  int
	flagNoSound bool
)

var windowCmd = &cobra.Command{
	Use:   "window [variant]",
	Short: "Play in a pixel window",
	Long: `Open a resizable window and play there. Requires a binary built
with -tags ebiten.

Controls:
  Space/Up/X/Click  - Flap (also starts and restarts)
  Q/Esc             - Quit

Examples:
  flappy window
  flappy window flappy_strict --width 540 --height 960`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagWidth, "width", int(flappy.BaseWidth), "Initial window width in pixels")
	windowCmd.Flags().IntVar(&flagHeight, "height", int(flappy.BaseHeight), "Initial window height in pixels")
	windowCmd.Flags().BoolVar(&flagNoSound, "mute", false, "Disable sound cues")
}

func runWindow(_ *cobra.Command, args []string) error {
	gameID := flappy.ClassicID
	if len(args) == 1 {
		gameID = args[0]
	}

	created, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	game, ok := created.(gui.Game)
	if !ok {
		return fmt.Errorf("variant %q cannot be drawn in a window", gameID)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	audio := gameConfig.Audio
	if flagNoSound {
		audio.Enabled = false
	}

	return gui.Run(game, gui.Options{
		Width:    flagWidth,
		Height:   flagHeight,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   playerName(),
		Store:    store,
		Logger:   logger,
		Audio:    audio,
	})
}
