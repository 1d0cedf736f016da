/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"testing"
)

// inOrder leaves the opening seeding in roster order.
type inOrder struct{}

func (inOrder) Shuffle(int, func(i, j int)) {}

func mustTournament(t *testing.T, names []string, target int,
	opts ...Option) *Tournament {

	t.Helper()
	opts = append([]Option{WithShuffler(inOrder{})}, opts...)
	tourney, err := NewTournament(names, target, opts...)
	if err != nil {
		t.Fatalf("NewTournament returned error: %v", err)
	}
	return tourney
}

func mustAdvance(t *testing.T, tourney *Tournament) (*Round, []Warning) {
	t.Helper()
	round, warnings, err := tourney.Advance()
	if err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}
	return round, warnings
}

func mustRecord(t *testing.T, tourney *Tournament, roundIdx, matchIdx, one,
	two int) []Warning {

	t.Helper()
	warnings, err := tourney.RecordResult(roundIdx, matchIdx, one, two)
	if err != nil {
		t.Fatalf("RecordResult(%d, %d, %d, %d) returned error: %v", roundIdx,
			matchIdx, one, two, err)
	}
	return warnings
}

func matchNames(t *Tournament, m Match) (string, string) {
	return t.Roster().Name(m.PlayerOne), t.Roster().Name(m.PlayerTwo)
}
