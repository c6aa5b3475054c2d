// internal/match/match.go
//
// Turn orchestration for a live round.
// Responsibilities:
//   - Hold the player's input lock for the whole turn.
//   - Score the player's guess, then (versus) let the computer answer.
//   - Hand the turn's events to the reveal feed and release the lock only
//     once the reveal has been delivered.
//   - Record round and guess metrics.

package match

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kiittsunne/wardle/internal/game"
	"github.com/kiittsunne/wardle/internal/metrics"
	"github.com/kiittsunne/wardle/internal/reveal"
	"github.com/kiittsunne/wardle/internal/words"
)

// Source labels how a round's target was chosen.
type Source string

const (
	SourceRandom Source = "random"
	SourceFixed  Source = "fixed"
	SourceDaily  Source = "daily"
)

// Turn is the outcome of one player submission.
type Turn struct {
	Player   game.GuessResult  `json:"player"`
	Computer *game.GuessResult `json:"computer,omitempty"`
	Pick     *game.Pick        `json:"pick,omitempty"`
	View     game.RoundView    `json:"view"`
	Events   []reveal.Event    `json:"-"`
}

// Match pairs a Round with the computer opponent and a reveal feed.
type Match struct {
	round *game.Round
	opp   *game.Opponent
	feed  *reveal.Feed
}

// New wires an existing round. opp may be nil for solo rounds.
func New(r *game.Round, opp *game.Opponent, feed *reveal.Feed) *Match {
	return &Match{round: r, opp: opp, feed: feed}
}

// Round is the underlying round.
func (m *Match) Round() *game.Round { return m.round }

// Feed is the match's reveal feed.
func (m *Match) Feed() *reveal.Feed { return m.feed }

// ID is the round ID.
func (m *Match) ID() string { return m.round.ID }

// LastActivity is when the round last accepted a guess.
func (m *Match) LastActivity() time.Time { return m.round.LastActivity() }

// Submit plays one player turn.
//
// The player's lock is taken before scoring and released after the reveal, so
// a second submission during the reveal fails with game.ErrSideLocked.
// Validation failures release the lock immediately, emit an alert event and
// consume no attempt.
func (m *Match) Submit(ctx context.Context, letters string) (Turn, error) {
	if err := m.round.Begin(game.SidePlayer); err != nil {
		return Turn{}, err
	}
	res, err := m.round.Submit(game.SidePlayer, letters)
	if err != nil {
		m.round.End(game.SidePlayer)
		if ve, ok := game.IsValidation(err); ok {
			metrics.Rejections.WithLabelValues(string(ve.Kind)).Inc()
			m.feed.Play(ctx, []reveal.Event{reveal.Alert(game.SidePlayer, ve.Message())}, nil)
		}
		return Turn{}, err
	}
	metrics.Guesses.WithLabelValues(string(game.SidePlayer)).Inc()

	turn := Turn{Player: res}
	steps := []reveal.Step{{Result: res, Row: m.round.Attempts(game.SidePlayer) - 1}}
	computerLocked := false

	if m.round.Mode == game.ModeVersus && m.opp != nil && m.round.Status() == game.StatusPlaying {
		if err := m.round.Begin(game.SideComputer); err == nil {
			computerLocked = true
			if cres, pick, ok := m.computerTurn(); ok {
				turn.Computer, turn.Pick = &cres, &pick
				steps = append(steps, reveal.Step{Result: cres, Row: m.round.Attempts(game.SideComputer) - 1})
			}
		}
	}

	turn.View = m.round.Snapshot()
	turn.Events = reveal.Sequence(steps, turn.View)
	if turn.View.Status.Finished() {
		metrics.RoundsFinished.WithLabelValues(
			string(m.round.Mode), string(turn.View.Status), metrics.Winner(string(turn.View.Winner)),
		).Inc()
		log.Info().
			Str("round", m.round.ID).
			Str("status", string(turn.View.Status)).
			Str("winner", string(turn.View.Winner)).
			Msg("round finished")
	}

	m.feed.Play(context.WithoutCancel(ctx), turn.Events, func() {
		if computerLocked {
			m.round.End(game.SideComputer)
		}
		m.round.End(game.SidePlayer)
	})
	return turn, nil
}

// computerTurn picks and submits the computer's guess from what it knows.
func (m *Match) computerTurn() (game.GuessResult, game.Pick, bool) {
	pick, ok := m.opp.Next(m.round.Knowledge(game.SideComputer))
	if !ok {
		log.Warn().Str("round", m.round.ID).Msg("computer has no word to guess")
		return game.GuessResult{}, game.Pick{}, false
	}
	metrics.CandidatePool.Observe(float64(pick.Pool))
	if pick.Fallback {
		metrics.Fallbacks.Inc()
	}
	res, err := m.round.Submit(game.SideComputer, pick.Guess)
	if err != nil {
		log.Warn().Err(err).Str("round", m.round.ID).Str("guess", pick.Guess).Msg("computer guess rejected")
		return game.GuessResult{}, game.Pick{}, false
	}
	metrics.Guesses.WithLabelValues(string(game.SideComputer)).Inc()
	log.Debug().
		Str("round", m.round.ID).
		Str("guess", pick.Guess).
		Int("pool", pick.Pool).
		Bool("fallback", pick.Fallback).
		Msg("computer guessed")
	return res, pick, true
}

// Factory starts matches that share one dictionary, selector and opponent.
type Factory struct {
	dict     *words.Dictionary
	sel      *game.Selector
	opp      *game.Opponent
	delay    time.Duration
	defaults game.Options
}

// NewFactory returns a Factory. defaults supplies MaxAttempts, DistinctTarget
// and ShareFeedback for every match it starts.
func NewFactory(dict *words.Dictionary, sel *game.Selector, delay time.Duration, defaults game.Options) *Factory {
	return &Factory{
		dict:     dict,
		sel:      sel,
		opp:      game.NewOpponent(dict.Words(), sel),
		delay:    delay,
		defaults: defaults,
	}
}

// Dictionary is the shared dictionary.
func (f *Factory) Dictionary() *words.Dictionary { return f.dict }

// Opponent is the shared computer opponent.
func (f *Factory) Opponent() *game.Opponent { return f.opp }

// Start creates a round in mode. A non-empty target fixes the answer.
func (f *Factory) Start(mode game.Mode, target string, src Source, obs ...reveal.Observer) (*Match, error) {
	opts := f.defaults
	opts.Mode = mode
	opts.Target = target
	if target != "" && src == SourceRandom {
		src = SourceFixed
	}
	r, err := game.NewRound(f.dict, f.sel, opts)
	if err != nil {
		return nil, err
	}
	metrics.RoundsStarted.WithLabelValues(string(r.Mode), string(src)).Inc()
	log.Debug().Str("round", r.ID).Str("mode", string(r.Mode)).Str("source", string(src)).Msg("round started")
	return New(r, f.opp, reveal.NewFeed(f.delay, obs...)), nil
}
