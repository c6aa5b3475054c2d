// internal/reveal/event.go
//
// Presentation boundary for scored guesses.
// A guess is revealed tile by tile, then announced as a whole word, and a round
// ends with a single "finished" event carrying the alert text.
//
// Nothing here decides game outcomes; events are derived from results the
// engine has already computed.

package reveal

import (
	"strings"

	"github.com/kiittsunne/wardle/internal/game"
)

// Kind names an event type.
type Kind string

const (
	KindTile     Kind = "tile"
	KindGuess    Kind = "guess"
	KindFinished Kind = "finished"
	KindAlert    Kind = "alert"
)

// Alert texts.
const (
	MsgWon = "Great Job!"
)

// Event is one step of a reveal.
type Event struct {
	Kind    Kind        `json:"kind"`
	Side    game.Side   `json:"side,omitempty"`
	Row     int         `json:"row"`
	Index   int         `json:"index"`
	Letter  string      `json:"letter,omitempty"`
	Mark    game.Mark   `json:"mark,omitempty"`
	Guess   string      `json:"guess,omitempty"`
	Status  game.Status `json:"status,omitempty"`
	Winner  game.Side   `json:"winner,omitempty"`
	Target  string      `json:"target,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Tiles returns one tile event per letter of r, followed by the guess event.
// row is zero-based.
func Tiles(r game.GuessResult, row int) []Event {
	out := make([]Event, 0, len(r.Marks)+1)
	for i := 0; i < len(r.Guess) && i < len(r.Marks); i++ {
		out = append(out, Event{
			Kind:   KindTile,
			Side:   r.Side,
			Row:    row,
			Index:  i,
			Letter: string(r.Guess[i]),
			Mark:   r.Marks[i],
		})
	}
	return append(out, Event{Kind: KindGuess, Side: r.Side, Row: row, Guess: r.Guess})
}

// Finished is the closing event of a round.
func Finished(status game.Status, winner game.Side, target string) Event {
	return Event{
		Kind:    KindFinished,
		Status:  status,
		Winner:  winner,
		Target:  target,
		Message: FinishMessage(status, winner, target),
	}
}

// FinishMessage is the alert shown when a round ends: praise when the player
// solves it, otherwise the target is revealed.
func FinishMessage(status game.Status, winner game.Side, target string) string {
	if status == game.StatusWon && winner == game.SidePlayer {
		return MsgWon
	}
	return "The Word was " + strings.ToUpper(target)
}

// Alert wraps a rejection message (e.g. a validation failure) as an event.
func Alert(side game.Side, msg string) Event {
	return Event{Kind: KindAlert, Side: side, Message: msg}
}

// Step is one scored guess to reveal.
type Step struct {
	Result game.GuessResult
	Row    int
}

// Sequence orders the events for one turn: each step's tiles in submission
// order, then a finished event if the round ended.
func Sequence(steps []Step, view game.RoundView) []Event {
	var out []Event
	for _, s := range steps {
		out = append(out, Tiles(s.Result, s.Row)...)
	}
	if view.Status.Finished() {
		out = append(out, Finished(view.Status, view.Winner, view.Target))
	}
	return out
}
