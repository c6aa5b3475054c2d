package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kiittsunne/wardle/internal/console"
	"github.com/kiittsunne/wardle/internal/game"
	"github.com/kiittsunne/wardle/internal/match"
)

func newPlayCmd(a *app) *cobra.Command {
	var (
		versus bool
		answer string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a round in the terminal",
		Long:  `Reads one guess per line. In versus mode the computer answers each of your guesses with one of its own.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := game.ModeSolo
			if versus {
				mode = game.ModeVersus
			}
			return a.play(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), mode, answer)
		},
	}
	cmd.Flags().BoolVar(&versus, "versus", false, "race the computer")
	cmd.Flags().StringVar(&answer, "answer", "", "fix the secret word")
	return cmd
}

// play runs one round, reading guesses from in until the round ends or in is
// exhausted.
func (a *app) play(ctx context.Context, in io.Reader, out io.Writer, mode game.Mode, answer string) error {
	src := match.SourceRandom
	if answer != "" {
		src = match.SourceFixed
	}
	m, err := a.factory(false).Start(mode, answer, src, console.NewPrinter(out))
	if err != nil {
		return err
	}
	rd := m.Round()
	fmt.Fprintf(out, "%s round: %d letters, %d tries\n", rd.Mode, rd.WordLength(), rd.MaxAttempts())

	sc := bufio.NewScanner(in)
	for rd.Status() == game.StatusPlaying {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		_, err := m.Submit(ctx, line)
		switch {
		case err == nil:
			if rd.Status() == game.StatusPlaying {
				fmt.Fprint(out, console.Keyboard(rd.Snapshot().Sides[game.SidePlayer].Keyboard))
			}
		case errors.Is(err, game.ErrNoAttemptsLeft):
			fmt.Fprintln(out, "No tries left; waiting on the computer")
		default:
			if _, ok := game.IsValidation(err); !ok {
				return err
			}
			// the alert was already printed by the observer
		}
	}
	return nil
}
