/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildPairingsOutput(t *testing.T) {
	tourney := mustTournament(t, []string{"A", "B", "C"}, 2)
	mustAdvance(t, tourney)
	mustRecord(t, tourney, 0, 0, 7, 3)

	want := "Round 1 of 2 Pairings:\n\n" +
		"Match  Player  Opponent  Result\n" +
		"0.     B       C         7-3\n" +
		"1.     A       BYE(1)\n"
	if diff := cmp.Diff(want, BuildPairingsOutput(tourney, 0)); diff != "" {
		t.Errorf("pairings mismatch (-want +got):\n%s", diff)
	}

	mustRecord(t, tourney, 0, 1, 0, 0)
	if got := BuildPairingsOutput(tourney, 0); !strings.Contains(got,
		"1.     A       BYE(1)    bye\n") {
		t.Errorf("expected scored bye, got:\n%s", got)
	}

	if got := BuildPairingsOutput(tourney, 4); got != "No pairings for round 5" {
		t.Errorf("unexpected output for missing round: %q", got)
	}
}

func TestBuildPairingsOutputForced(t *testing.T) {
	tourney := mustTournament(t, []string{"A", "B"}, 2)
	mustAdvance(t, tourney)
	mustRecord(t, tourney, 0, 0, 7, 3)
	mustAdvance(t, tourney)

	if got := BuildPairingsOutput(tourney, 1); !strings.HasSuffix(got,
		"\n* contains a forced rematch\n") {
		t.Errorf("expected forced rematch note, got:\n%s", got)
	}
}

func TestBuildStandingsOutput(t *testing.T) {
	tourney := mustTournament(t, []string{"A", "B", "C"}, 2)
	if got := BuildStandingsOutput(tourney); !strings.HasPrefix(got,
		"Standings prior to Round 1:\n") {
		t.Errorf("unexpected header:\n%s", got)
	}

	mustAdvance(t, tourney)
	mustRecord(t, tourney, 0, 0, 7, 3)

	want := "Standings after Round 1:\n\n" +
		"Place  Name  Points  Wins   For  Agst\n" +
		"1.     B     1          1     7     3\n" +
		"2.     A     0          0     0     0\n" +
		"       C     0          0     3     7\n"
	if diff := cmp.Diff(want, BuildStandingsOutput(tourney)); diff != "" {
		t.Errorf("standings mismatch (-want +got):\n%s", diff)
	}
}
