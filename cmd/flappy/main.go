// flappy is a Flappy Bird clone for the terminal, SSH and a pixel window.
//
// Usage:
//
//	flappy list              - List game variants
//	flappy play [variant]    - Play a variant, or pick one from the menu
//	flappy scores [variant]  - Show high scores
//	flappy serve             - Start SSH server for remote play
//	flappy window [variant]  - Play in a pixel window (ebiten builds)
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.flappy/scores.db)
//	--config <path>       - Load settings from a YAML file
//	--difficulty <name>   - Apply a preset: easy, normal, hard
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagDebug      bool
)

var (
	// Effective settings, resolved before every command
	gameConfig config.FlappyConfig
	logger     = log.New(io.Discard)
	logFile    *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		_ = logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flappy Bird for the terminal, with remote play over SSH and an
optional pixel window.

Available commands:
  list     - Show game variants
  play     - Play in the terminal
  scores   - View high scores
  serve    - Start SSH server for remote play
  window   - Play in a pixel window
  config   - Print the effective configuration

Examples:
  flappy play
  flappy play flappy_strict --difficulty hard
  flappy serve --ssh :2222
  flappy scores flappy`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Name stored with your scores (default: current user)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and opens the log file.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	gameConfig = cfg
	flappy.SetConfig(cfg)

	// serve writes its own log to stderr
	if cmd == serveCmd {
		return nil
	}
	logger = openLog()
	return nil
}

// openLog logs to ~/.flappy/flappy.log, since full-screen programs own the
// terminal. Failures fall back to a discarding logger.
func openLog() *log.Logger {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard)
	}
	dir := filepath.Join(home, ".flappy")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard)
	}

	f, err := os.OpenFile(filepath.Join(dir, "flappy.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard)
	}
	logFile = f

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
	})
	if flagDebug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// playerName returns the --player flag or the OS user name.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return storage.AnonymousPlayer
}

// openStore opens the scores database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
