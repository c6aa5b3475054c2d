// Package console renders reveal events as plain text for the terminal game.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kiittsunne/wardle/internal/game"
	"github.com/kiittsunne/wardle/internal/reveal"
)

// Printer is a reveal.Observer that writes one line per guess.
//
// Tiles are buffered until the guess event arrives, then printed as the
// upper-cased word followed by its marks:
//
//	player   1  TRACE  .##+#
//
// where # is placed, + is present and . is absent.
type Printer struct {
	mu    sync.Mutex
	w     io.Writer
	tiles []reveal.Event
}

// NewPrinter writes to w.
func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

func (p *Printer) Observe(e reveal.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch e.Kind {
	case reveal.KindTile:
		p.tiles = append(p.tiles, e)
	case reveal.KindGuess:
		var marks strings.Builder
		for _, t := range p.tiles {
			marks.WriteByte(Symbol(t.Mark))
		}
		p.tiles = p.tiles[:0]
		fmt.Fprintf(p.w, "%-8s %d  %s  %s\n", e.Side, e.Row+1, strings.ToUpper(e.Guess), marks.String())
	case reveal.KindAlert, reveal.KindFinished:
		fmt.Fprintln(p.w, e.Message)
	}
}

// Symbol is the one-character form of a mark.
func Symbol(m game.Mark) byte {
	switch m {
	case game.MarkPlaced:
		return '#'
	case game.MarkPresent:
		return '+'
	default:
		return '.'
	}
}

// Keyboard renders a keyboard state as three qwerty rows, letters marked with
// the same symbols and untried letters left as-is.
func Keyboard(k game.Keyboard) string {
	rows := []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}
	var b strings.Builder
	for i, row := range rows {
		b.WriteString(strings.Repeat(" ", i))
		for _, c := range row {
			l := string(c)
			if m, ok := k[l]; ok {
				b.WriteString(strings.ToUpper(l))
				b.WriteByte(Symbol(m))
			} else {
				b.WriteString(l + " ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
