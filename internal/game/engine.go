// internal/game/engine.go
//
// Round state machine for one game.
// Responsibilities:
//   - Create rounds (solo or versus) with a fixed or random target.
//   - Validate guesses (length, letters, dictionary membership).
//   - Score guesses and fold the feedback into each side's knowledge.
//   - Track state transitions: playing → won/lost.
//   - Hold the per-side input lock used while a guess is being revealed.
//
// Notes:
//   - The dictionary is shared and read-only; a Round owns its target and
//     constraint state.
//   - In versus mode the computer can also learn from the player's feedback
//     (Options.ShareFeedback).
//   - All methods are safe for concurrent use.
package game

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kiittsunne/wardle/internal/words"
)

// DefaultMaxAttempts is the number of guesses each side gets.
const DefaultMaxAttempts = 6

// Options configures a new round.
type Options struct {
	Mode           Mode
	Target         string // optional fixed target (testing, daily rounds)
	MaxAttempts    int    // 0 means DefaultMaxAttempts
	DistinctTarget bool   // draw random targets from words without repeated letters
	ShareFeedback  bool   // versus: the computer also folds the player's results
}

type sideState struct {
	attempts int
	history  []GuessResult
	know     *Constraints
	keys     Keyboard
	locked   bool
}

// Round is one play session: a target, one or two sides, and a status.
type Round struct {
	ID        string
	Mode      Mode
	CreatedAt time.Time

	mu       sync.Mutex
	dict     *words.Dictionary
	target   string
	max      int
	share    bool
	status   Status
	winner   Side
	sides    map[Side]*sideState
	activity time.Time
}

// NewRound starts a round. Without a fixed target one is drawn with sel.
func NewRound(dict *words.Dictionary, sel *Selector, opts Options) (*Round, error) {
	r := &Round{
		ID:        uuid.NewString(),
		Mode:      opts.Mode,
		CreatedAt: time.Now().UTC(),
		dict:      dict,
		max:       opts.MaxAttempts,
		share:     opts.ShareFeedback,
		status:    StatusPlaying,
		sides:     make(map[Side]*sideState, 2),
	}
	if r.Mode != ModeVersus {
		r.Mode = ModeSolo
	}
	if r.max <= 0 {
		r.max = DefaultMaxAttempts
	}
	r.activity = r.CreatedAt

	if opts.Target != "" {
		t, err := r.validate(opts.Target)
		if err != nil {
			return nil, err
		}
		r.target = t
	} else {
		t, _ := sel.Pick(dict.TargetPool(opts.DistinctTarget))
		r.target = t
	}

	order := []Side{SidePlayer}
	if r.Mode == ModeVersus {
		order = append(order, SideComputer)
	}
	for _, s := range order {
		r.sides[s] = &sideState{know: NewConstraints(dict.WordLength()), keys: Keyboard{}}
	}
	return r, nil
}

// Submit validates and scores a guess for side, mutating the round.
//
// Validation failures return a *ValidationError and leave the round unchanged.
// State transitions:
//   - A solved guess → won, and the submitting side is the winner.
//   - Every side out of attempts → lost.
//
// Either terminal state stops both sides.
func (r *Round) Submit(side Side, letters string) (GuessResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.sides[side]
	if !ok {
		return GuessResult{}, ErrNotParticipant
	}
	if r.status.Finished() {
		return GuessResult{}, ErrRoundFinished
	}
	if st.attempts >= r.max {
		return GuessResult{}, ErrNoAttemptsLeft
	}
	guess, err := r.validate(letters)
	if err != nil {
		return GuessResult{}, err
	}

	res := Evaluate(guess, r.target)
	res.Side = side

	st.attempts++
	st.history = append(st.history, res)
	st.know.Fold(res)
	st.keys.Apply(res)
	if r.share && side == SidePlayer {
		if cs, ok := r.sides[SideComputer]; ok {
			cs.know.Fold(res)
		}
	}
	r.activity = time.Now().UTC()

	switch {
	case res.Solved():
		r.status, r.winner = StatusWon, side
	case r.exhausted():
		r.status = StatusLost
	}
	return res, nil
}

// validate normalizes letters and checks length and dictionary membership.
func (r *Round) validate(letters string) (string, error) {
	g := strings.ToLower(strings.TrimSpace(letters))
	n := r.dict.WordLength()
	if len(g) < n {
		return "", &ValidationError{Kind: TooShort, Guess: g}
	}
	if len(g) != n || !r.dict.Contains(g) {
		return "", &ValidationError{Kind: NotInDictionary, Guess: g}
	}
	return g, nil
}

// exhausted reports whether every side has used all its attempts.
func (r *Round) exhausted() bool {
	for _, st := range r.sides {
		if st.attempts < r.max {
			return false
		}
	}
	return true
}

// Begin takes side's input lock. It fails if the side is already mid-reveal
// or the round is over.
func (r *Round) Begin(side Side) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.sides[side]
	if !ok {
		return ErrNotParticipant
	}
	if r.status.Finished() {
		return ErrRoundFinished
	}
	if st.locked {
		return ErrSideLocked
	}
	st.locked = true
	return nil
}

// End releases side's input lock.
func (r *Round) End(side Side) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.sides[side]; ok {
		st.locked = false
	}
}

// Knowledge returns a copy of what side has learned so far.
func (r *Round) Knowledge(side Side) *Constraints {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.sides[side]; ok {
		return st.know.Clone()
	}
	return NewConstraints(r.dict.WordLength())
}

// Attempts is the number of guesses side has made.
func (r *Round) Attempts(side Side) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.sides[side]; ok {
		return st.attempts
	}
	return 0
}

// Status reports the current status.
func (r *Round) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Winner is the side that solved the round, or "" if none.
func (r *Round) Winner() Side {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.winner
}

// Target is the secret word.
func (r *Round) Target() string { return r.target }

// WordLength is the length of every guess.
func (r *Round) WordLength() int { return r.dict.WordLength() }

// MaxAttempts is the number of guesses each side gets.
func (r *Round) MaxAttempts() int { return r.max }

// LastActivity is when the round last accepted a guess.
func (r *Round) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activity
}

// SideView is the visible state of one side.
type SideView struct {
	Attempts  int           `json:"attempts"`
	Remaining int           `json:"remaining"`
	History   []GuessResult `json:"history"`
	Keyboard  Keyboard      `json:"keyboard"`
	Locked    bool          `json:"locked"`
}

// RoundView is a snapshot safe to hand to a client. Target is only set once
// the round is finished.
type RoundView struct {
	ID          string            `json:"id"`
	Mode        Mode              `json:"mode"`
	WordLength  int               `json:"wordLength"`
	MaxAttempts int               `json:"maxAttempts"`
	Status      Status            `json:"status"`
	Winner      Side              `json:"winner,omitempty"`
	Target      string            `json:"target,omitempty"`
	Sides       map[Side]SideView `json:"sides"`
}

// Snapshot copies the round's visible state.
func (r *Round) Snapshot() RoundView {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := RoundView{
		ID:          r.ID,
		Mode:        r.Mode,
		WordLength:  r.dict.WordLength(),
		MaxAttempts: r.max,
		Status:      r.status,
		Winner:      r.winner,
		Sides:       make(map[Side]SideView, len(r.sides)),
	}
	if r.status.Finished() {
		v.Target = r.target
	}
	for s, st := range r.sides {
		v.Sides[s] = SideView{
			Attempts:  st.attempts,
			Remaining: r.max - st.attempts,
			History:   append([]GuessResult(nil), st.history...),
			Keyboard:  st.keys.clone(),
			Locked:    st.locked,
		}
	}
	return v
}
