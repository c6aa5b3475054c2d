package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kiittsunne/wardle/internal/config"
	"github.com/kiittsunne/wardle/internal/game"
	"github.com/kiittsunne/wardle/internal/match"
	"github.com/kiittsunne/wardle/internal/words"
)

// app is the state shared by every subcommand, filled in by the root
// command's pre-run.
type app struct {
	configPath string
	cfg        config.Config
	dict       *words.Dictionary
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "wardle",
		Short:        "Wordle with a computer opponent",
		Long:         `Wardle is a word-guessing game: find the secret word in six tries, alone or racing a computer that narrows its guesses from the feedback it sees.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")

	root.AddCommand(
		newServeCmd(a),
		newPlayCmd(a),
		newCandidatesCmd(a),
		newWordsCmd(a),
	)
	return root
}

// init loads .env, config, logging and the dictionary.
func (a *app) init() error {
	_ = godotenv.Load()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	setupLogging(cfg.LogLevel)

	dict, err := words.Load(cfg.WordsFile)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	a.dict = dict
	total, distinct, skipped := dict.Stats()
	log.Debug().
		Int("words", total).
		Int("distinct", distinct).
		Int("skipped", skipped).
		Int("length", dict.WordLength()).
		Msg("dictionary loaded")
	return nil
}

// factory builds a match factory from config. Unpaced factories reveal
// synchronously.
func (a *app) factory(paced bool) *match.Factory {
	var d time.Duration
	if paced {
		d = a.cfg.RevealDelay
	}
	return match.NewFactory(a.dict, game.NewSeededSelector(a.cfg.Seed), d, game.Options{
		MaxAttempts:    a.cfg.MaxAttempts,
		DistinctTarget: a.cfg.DistinctTargets,
		ShareFeedback:  a.cfg.ShareFeedback,
	})
}

// setupLogging sets the global level and uses the console writer on a terminal.
func setupLogging(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}
