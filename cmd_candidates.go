package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kiittsunne/wardle/internal/game"
)

func newCandidatesCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "candidates word=codes...",
		Short: "List dictionary words consistent with observed feedback",
		Long: `Each argument is a guess and its feedback as digits, one per letter:
2 = placed, 1 = present, 0 = absent. For example:

  wardle candidates trace=02212 about=10000`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]game.GuessResult, 0, len(args))
			for _, arg := range args {
				r, err := parseFeedback(arg, a.dict.WordLength())
				if err != nil {
					return err
				}
				results = append(results, r)
			}
			return a.candidates(cmd.OutOrStdout(), results, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum words to print (0 = all)")
	return cmd
}

// candidates folds results and prints the surviving words and the knowledge.
func (a *app) candidates(out io.Writer, results []game.GuessResult, limit int) error {
	c := game.NewConstraints(a.dict.WordLength())
	for _, r := range results {
		c.Fold(r)
	}
	pool := game.Filter(a.dict.Words(), c)

	v := c.View()
	fmt.Fprintf(out, "placed %s  present [%s]  absent [%s]\n", v.Placed, v.Present, v.Absent)
	fmt.Fprintf(out, "%d candidates\n", len(pool))
	shown := pool
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, w := range shown {
		fmt.Fprintln(out, w)
	}
	if len(shown) < len(pool) {
		fmt.Fprintf(out, "... %d more\n", len(pool)-len(shown))
	}
	return nil
}

// parseFeedback reads "word=codes" into a GuessResult.
func parseFeedback(arg string, length int) (game.GuessResult, error) {
	word, codes, ok := strings.Cut(arg, "=")
	word = strings.ToLower(strings.TrimSpace(word))
	codes = strings.TrimSpace(codes)
	if !ok || len(word) != length || len(codes) != length {
		return game.GuessResult{}, fmt.Errorf("bad feedback %q: want %d letters = %d digits", arg, length, length)
	}
	r := game.GuessResult{Guess: word, Marks: make([]game.Mark, length)}
	for i := 0; i < length; i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return game.GuessResult{}, fmt.Errorf("bad feedback %q: %q is not a letter", arg, word[i])
		}
		m, ok := game.MarkFromCode(codes[i])
		if !ok {
			return game.GuessResult{}, fmt.Errorf("bad feedback %q: %q is not 0, 1 or 2", arg, codes[i])
		}
		r.Marks[i] = m
	}
	return r, nil
}
