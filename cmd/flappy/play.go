package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in the terminal",
	Long: `Play a variant directly, or pick one from the menu when no variant
is given. After a game you return to the menu.

Controls:
  Space/Up/X  - Flap (also starts and restarts)
  Esc/B       - Back to menu (not while flying)
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

Examples:
  flappy play
  flappy play flappy
  flappy play flappy_strict --difficulty easy
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown variant %q; run 'flappy list' to see them", args[0])
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	opts := tui.Options{Player: playerName(), Logger: logger}

	if len(args) == 1 {
		return playOne(args[0], store, cfg, opts)
	}
	return menuLoop(store, cfg, opts)
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func playOne(gameID string, store *storage.Store, cfg core.RuntimeConfig, opts tui.Options) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	err = tui.Run(game, store, cfg, opts)
	if errors.Is(err, core.ErrNoSurface) {
		return fmt.Errorf("terminal is too small to play (%dx%d)", cfg.ScreenW, cfg.ScreenH)
	}
	return err
}

// menuLoop alternates between the menu, the scoreboard and games until the
// player quits.
func menuLoop(store *storage.Store, cfg core.RuntimeConfig, opts tui.Options) error {
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case res.GameID != "":
			// Fresh pipes every game unless a seed was given
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			if err := playOne(res.GameID, store, cfg, opts); err != nil {
				logger.Error("game failed", "game", res.GameID, "error", err)
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}
