// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Mark: per-letter verdict of a guess (placed/present/absent).
//   - Side: who submitted a guess (player/computer).
//   - GuessResult: one scored guess.
//   - Mode and Status: round shape and lifecycle.

package game

import "strings"

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "placed":  letter is correct and in the correct position.
//   - "present": letter exists in the target but at another position, within
//     the target's letter counts.
//   - "absent":  letter does not occur in the target, or all its occurrences
//     are already accounted for.
type Mark string

const (
	MarkPlaced  Mark = "placed"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// Code returns the compact numeric encoding: 0=absent, 1=present, 2=placed.
func (m Mark) Code() int {
	switch m {
	case MarkPlaced:
		return 2
	case MarkPresent:
		return 1
	default:
		return 0
	}
}

// rank orders marks by how much they reveal; used for keyboard state.
func (m Mark) rank() int {
	switch m {
	case MarkPlaced:
		return 3
	case MarkPresent:
		return 2
	case MarkAbsent:
		return 1
	default:
		return 0
	}
}

// MarkFromCode is the inverse of Mark.Code. ok is false for unknown codes.
func MarkFromCode(c byte) (Mark, bool) {
	switch c {
	case '2':
		return MarkPlaced, true
	case '1':
		return MarkPresent, true
	case '0':
		return MarkAbsent, true
	}
	return "", false
}

// Side identifies who submitted a guess.
type Side string

const (
	SidePlayer   Side = "player"
	SideComputer Side = "computer"
)

// GuessResult is one scored guess: the word, who made it, and one Mark per letter.
type GuessResult struct {
	Side  Side   `json:"side"`
	Guess string `json:"guess"`
	Marks []Mark `json:"marks"`
}

// Solved reports whether every letter is placed.
func (r GuessResult) Solved() bool {
	if len(r.Marks) == 0 {
		return false
	}
	for _, m := range r.Marks {
		if m != MarkPlaced {
			return false
		}
	}
	return true
}

// Codes renders the marks as a digit string, e.g. "02212".
func (r GuessResult) Codes() string {
	var b strings.Builder
	for _, m := range r.Marks {
		b.WriteByte(byte('0' + m.Code()))
	}
	return b.String()
}

// Mode is the shape of a round.
type Mode string

const (
	ModeSolo   Mode = "solo"
	ModeVersus Mode = "versus"
)

// ParseMode maps user input to a Mode; anything unknown is solo.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeVersus)) {
		return ModeVersus
	}
	return ModeSolo
}

// Status is the coarse lifecycle of a round: playing → won | lost.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Finished reports whether s is terminal.
func (s Status) Finished() bool { return s == StatusWon || s == StatusLost }
