/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
)

// State is where a Tournament is in its round-by-round lifecycle.
type State int

const (
	StateEmpty State = iota
	StateInProgress
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateInProgress:
		return "in progress"
	case StateComplete:
		return "complete"
	default:
		return "?"
	}
}

// Tournament owns a roster and the rounds generated for it so far. It is not
// safe for concurrent use; callers must serialise Advance and RecordResult.
type Tournament struct {
	roster       *Roster
	rounds       []Round
	roundsTarget int

	pairer *Pairer
	ledger Ledger
}

// Option configures a Tournament.
type Option func(*Tournament)

// WithShuffler sets the source used to seed the opening round.
func WithShuffler(s Shuffler) Option {
	return func(t *Tournament) {
		t.pairer = NewPairer(s)
	}
}

// WithByePoints sets what a recorded bye is worth.
func WithByePoints(points float64) Option {
	return func(t *Tournament) {
		t.ledger.ByePoints = points
	}
}

// NewTournament starts a tournament with no rounds from a list of names.
func NewTournament(names []string, roundsTarget int,
	opts ...Option) (*Tournament, error) {

	if roundsTarget < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRounds, roundsTarget)
	}
	roster, err := NewRoster(names)
	if err != nil {
		return nil, err
	}

	return newTournament(roster, nil, roundsTarget, opts), nil
}

// ResumeTournament rebuilds a tournament from previously exported
// competitors and rounds. Aggregates are taken as given; opponent history and
// bye counts are rebuilt from the rounds.
func ResumeTournament(competitors []Competitor, rounds []Round,
	roundsTarget int, opts ...Option) (*Tournament, error) {

	if roundsTarget < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRounds, roundsTarget)
	}
	if len(rounds) > roundsTarget {
		return nil, fmt.Errorf("%w: %d rounds exceed target of %d",
			ErrInvalidRounds, len(rounds), roundsTarget)
	}
	if len(competitors) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 competitors, got %d",
			ErrInvalidRoster, len(competitors))
	}

	roster := &Roster{competitors: make([]Competitor, len(competitors))}
	seen := make(map[string]bool, len(competitors))
	for idx, c := range competitors {
		if c.ID != idx {
			return nil, fmt.Errorf("%w: competitor %q has id %d at position %d",
				ErrInvalidRoster, c.Name, c.ID, idx)
		}
		if c.Name == "" || seen[c.Name] {
			return nil, fmt.Errorf("%w: blank or duplicate name %q",
				ErrInvalidRoster, c.Name)
		}
		seen[c.Name] = true
		c = c.clone()
		c.Byes = 0
		c.Opponents = make(map[int]bool)
		roster.competitors[idx] = c
	}

	restored := make([]Round, len(rounds))
	for rIdx, round := range rounds {
		booked := make(map[int]bool)
		for mIdx, m := range round.Matches {
			if err := validateMatch(roster, m, booked); err != nil {
				return nil, fmt.Errorf("round %d match %d: %w", rIdx, mIdx, err)
			}
			if m.IsBye() {
				roster.get(m.PlayerOne).Byes++
			} else {
				roster.markPlayed(m.PlayerOne, m.PlayerTwo)
			}
		}
		restored[rIdx] = round.clone()
		restored[rIdx].Number = rIdx + 1
	}

	return newTournament(roster, restored, roundsTarget, opts), nil
}

func validateMatch(r *Roster, m Match, booked map[int]bool) error {
	ids := []int{m.PlayerOne}
	if !m.IsBye() {
		ids = append(ids, m.PlayerTwo)
	}
	for _, id := range ids {
		if id < 0 || id >= r.Len() {
			return fmt.Errorf("%w: player %d not on roster", ErrInvalidIndex, id)
		}
		if booked[id] {
			return fmt.Errorf("%w: %v booked twice", ErrInvalidRoster,
				r.Name(id))
		}
		booked[id] = true
	}
	if m.Result != nil && (m.Result.ScoreOne < 0 || m.Result.ScoreTwo < 0) {
		return ErrInvalidScore
	}
	return nil
}

func newTournament(roster *Roster, rounds []Round, roundsTarget int,
	opts []Option) *Tournament {

	t := &Tournament{
		roster:       roster,
		rounds:       rounds,
		roundsTarget: roundsTarget,
		ledger:       Ledger{ByePoints: DefaultByePoints},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.pairer == nil {
		t.pairer = NewPairer(nil)
	}

	return t
}

// State reports the tournament's lifecycle state.
func (t *Tournament) State() State {
	if len(t.rounds) == 0 {
		return StateEmpty
	}
	if len(t.rounds) == t.roundsTarget && t.rounds[len(t.rounds)-1].IsComplete() {
		return StateComplete
	}
	return StateInProgress
}

// Advance generates the next round. The latest round must be fully scored
// first, and no round is generated beyond the round target.
func (t *Tournament) Advance() (*Round, []Warning, error) {
	opening := len(t.rounds) == 0
	if !opening {
		latest := t.rounds[len(t.rounds)-1]
		if !latest.IsComplete() {
			return nil, nil, fmt.Errorf("%w: round %d", ErrRoundNotComplete,
				latest.Number)
		}
		if len(t.rounds) >= t.roundsTarget {
			return nil, nil, fmt.Errorf("%w: %d of %d rounds played",
				ErrTournamentComplete, len(t.rounds), t.roundsTarget)
		}
	}

	round, warnings := t.pairer.GenerateRound(t.roster, opening)
	round.Number = len(t.rounds) + 1
	t.rounds = append(t.rounds, *round)

	out := round.clone()
	return &out, warnings, nil
}

// RecordResult records or corrects the score of one match.
func (t *Tournament) RecordResult(roundIndex, matchIndex, scoreOne,
	scoreTwo int) ([]Warning, error) {

	if roundIndex < 0 || roundIndex >= len(t.rounds) {
		return nil, fmt.Errorf("%w: round %d of %d", ErrInvalidIndex,
			roundIndex, len(t.rounds))
	}
	round := &t.rounds[roundIndex]
	if matchIndex < 0 || matchIndex >= len(round.Matches) {
		return nil, fmt.Errorf("%w: match %d of %d in round %d",
			ErrInvalidIndex, matchIndex, len(round.Matches), roundIndex)
	}

	return t.ledger.Record(t.roster, &round.Matches[matchIndex], scoreOne,
		scoreTwo)
}

// Standings returns the competitors ordered best first.
func (t *Tournament) Standings() []Competitor {
	return Standings(t.roster)
}

// Competitors returns the competitors in id order.
func (t *Tournament) Competitors() []Competitor {
	return t.roster.Competitors()
}

// Roster exposes the roster for read-only helpers such as name lookup.
func (t *Tournament) Roster() *Roster {
	return t.roster
}

// Rounds returns copies of every generated round.
func (t *Tournament) Rounds() []Round {
	out := make([]Round, len(t.rounds))
	for idx, r := range t.rounds {
		out[idx] = r.clone()
	}
	return out
}

// Round returns a copy of the round at index.
func (t *Tournament) Round(index int) (Round, error) {
	if index < 0 || index >= len(t.rounds) {
		return Round{}, fmt.Errorf("%w: round %d of %d", ErrInvalidIndex,
			index, len(t.rounds))
	}
	return t.rounds[index].clone(), nil
}

// RoundsTarget is the number of rounds the organiser asked for.
func (t *Tournament) RoundsTarget() int {
	return t.roundsTarget
}

// ByePoints is what a recorded bye is worth in this tournament.
func (t *Tournament) ByePoints() float64 {
	return t.ledger.ByePoints
}

// Snapshot is the plain-data form of a tournament, suitable for persistence.
type Snapshot struct {
	RoundsTarget int          `json:"roundsTarget"`
	ByePoints    float64      `json:"byePoints"`
	Competitors  []Competitor `json:"competitors"`
	Rounds       []Round      `json:"rounds"`
}

// Snapshot exports the tournament's current state.
func (t *Tournament) Snapshot() Snapshot {
	return Snapshot{
		RoundsTarget: t.roundsTarget,
		ByePoints:    t.ledger.ByePoints,
		Competitors:  t.Competitors(),
		Rounds:       t.Rounds(),
	}
}

// Resume rebuilds a tournament from a snapshot. opts are applied after the
// snapshot's bye value, so they may override it.
func (s Snapshot) Resume(opts ...Option) (*Tournament, error) {
	all := append([]Option{WithByePoints(s.ByePoints)}, opts...)
	return ResumeTournament(s.Competitors, s.Rounds, s.RoundsTarget, all...)
}
