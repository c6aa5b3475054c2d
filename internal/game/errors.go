package game

import (
	"errors"
	"fmt"
)

var (
	// ErrRoundFinished rejects guesses once a round is won or lost.
	ErrRoundFinished = errors.New("round finished")
	// ErrSideLocked rejects a submission while the side's previous guess is still being revealed.
	ErrSideLocked = errors.New("side locked")
	// ErrNotParticipant rejects guesses from a side that is not playing this round.
	ErrNotParticipant = errors.New("side not in round")
	// ErrNoAttemptsLeft rejects guesses from a side that has used all its attempts.
	ErrNoAttemptsLeft = errors.New("no attempts left")
)

// ValidationKind names why a guess was rejected before scoring.
type ValidationKind string

const (
	TooShort        ValidationKind = "too_short"
	NotInDictionary ValidationKind = "not_in_dictionary"
)

// ValidationError rejects a guess without consuming an attempt.
type ValidationError struct {
	Kind  ValidationKind
	Guess string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid guess %q: %s", e.Guess, e.Kind)
}

// Message is the short text shown to the player.
func (e *ValidationError) Message() string {
	if e.Kind == TooShort {
		return "Not Enough Letters"
	}
	return "Not a Wardle Word"
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
