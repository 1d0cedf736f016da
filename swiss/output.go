/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"strings"

	"github.com/mikeb26/croquet-swiss/internal"
)

// BuildPairingsOutput formats one round's matches into an aligned table
func BuildPairingsOutput(t *Tournament, roundIndex int) string {
	round, err := t.Round(roundIndex)
	if err != nil {
		return fmt.Sprintf("No pairings for round %d", roundIndex+1)
	}
	roster := t.Roster()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Round %v of %v Pairings:\n\n", round.Number,
		t.RoundsTarget()))

	type row struct{ match, one, two, result string }
	var rows []row
	for idx, m := range round.Matches {
		r := row{
			match: fmt.Sprintf("%d.", idx),
			one:   roster.Name(m.PlayerOne),
		}
		if m.IsBye() {
			r.two = fmt.Sprintf("BYE(%v)", internal.ScoreToString(t.ByePoints()))
		} else {
			r.two = roster.Name(m.PlayerTwo)
		}
		if m.Result != nil && !m.IsBye() {
			r.result = fmt.Sprintf("%d-%d", m.Result.ScoreOne, m.Result.ScoreTwo)
		} else if m.Result != nil {
			r.result = "bye"
		}
		rows = append(rows, r)
	}

	// Compute column widths
	maxM, maxO, maxT, maxR := len("Match"), len("Player"), len("Opponent"),
		len("Result")
	for _, r := range rows {
		if l := len(r.match); l > maxM {
			maxM = l
		}
		if l := len(r.one); l > maxO {
			maxO = l
		}
		if l := len(r.two); l > maxT {
			maxT = l
		}
		if l := len(r.result); l > maxR {
			maxR = l
		}
	}

	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s\n", maxM, "Match", maxO,
		"Player", maxT, "Opponent", maxR, "Result"))
	for _, r := range rows {
		sb.WriteString(strings.TrimRight(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
			maxM, r.match, maxO, r.one, maxT, r.two, maxR, r.result), " "))
		sb.WriteString("\n")
	}
	if round.ForcedRematch {
		sb.WriteString("\n* contains a forced rematch\n")
	}

	return sb.String()
}

// BuildStandingsOutput formats the current standings into an aligned table.
// Competitors level on points share a place.
func BuildStandingsOutput(t *Tournament) string {
	var sb strings.Builder
	played := len(t.Rounds())
	if played == 0 {
		sb.WriteString("Standings prior to Round 1:\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("Standings after Round %v:\n\n", played))
	}

	type row struct{ rank, player, points, wins, scored, conceded string }
	var rows []row
	priorPoints := -1.0
	for idx, c := range t.Standings() {
		var rank string
		if idx != 0 && c.Points == priorPoints {
			rank = ""
		} else {
			rank = fmt.Sprintf("%v.", idx+1)
			priorPoints = c.Points
		}
		rows = append(rows, row{
			rank:     rank,
			player:   c.Name,
			points:   internal.ScoreToString(c.Points),
			wins:     fmt.Sprintf("%d", c.Wins),
			scored:   fmt.Sprintf("%d", c.HoopsScored),
			conceded: fmt.Sprintf("%d", c.HoopsConceded),
		})
	}

	maxP, maxN, maxS := len("Place"), len("Name"), len("Points")
	for _, r := range rows {
		if l := len(r.rank); l > maxP {
			maxP = l
		}
		if l := len(r.player); l > maxN {
			maxN = l
		}
		if l := len(r.points); l > maxS {
			maxS = l
		}
	}

	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %4s  %4s  %4s\n", maxP,
		"Place", maxN, "Name", maxS, "Points", "Wins", "For", "Agst"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %4s  %4s  %4s\n", maxP,
			r.rank, maxN, r.player, maxS, r.points, r.wins, r.scored,
			r.conceded))
	}

	return sb.String()
}
