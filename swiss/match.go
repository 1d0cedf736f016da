/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// NoOpponent is the PlayerTwo value of a bye match.
const NoOpponent = -1

// Result holds the hoops each side scored.
type Result struct {
	ScoreOne int `json:"scoreOne"`
	ScoreTwo int `json:"scoreTwo"`
}

// Match is a single pairing within a round. Matches refer to competitors by
// id only; their aggregates are changed through a Ledger.
type Match struct {
	PlayerOne int     `json:"playerOne"`
	PlayerTwo int     `json:"playerTwo"`
	Result    *Result `json:"result,omitempty"`
}

// IsBye reports whether PlayerOne has no opponent in this match.
func (m Match) IsBye() bool {
	return m.PlayerTwo == NoOpponent
}

// IsScored reports whether a result has been recorded.
func (m Match) IsScored() bool {
	return m.Result != nil
}

// Involves reports whether id plays in this match.
func (m Match) Involves(id int) bool {
	return m.PlayerOne == id || (!m.IsBye() && m.PlayerTwo == id)
}

func (m Match) clone() Match {
	if m.Result != nil {
		res := *m.Result
		m.Result = &res
	}
	return m
}

// Round is the set of matches produced by one pairing pass.
type Round struct {
	Number  int     `json:"number"`
	Matches []Match `json:"matches"`

	// ForcedRematch is set when at least one pairing repeats an earlier one.
	ForcedRematch bool `json:"forcedRematch,omitempty"`
	// Unpaired lists competitors the pairing pass could not place.
	Unpaired []int `json:"unpaired,omitempty"`
}

// IsComplete reports whether every non-bye match has a result.
func (r Round) IsComplete() bool {
	for _, m := range r.Matches {
		if !m.IsBye() && !m.IsScored() {
			return false
		}
	}
	return true
}

// Bye returns the bye match of the round, if there is one.
func (r Round) Bye() (Match, bool) {
	for _, m := range r.Matches {
		if m.IsBye() {
			return m, true
		}
	}
	return Match{}, false
}

func (r Round) clone() Round {
	out := r
	out.Matches = make([]Match, len(r.Matches))
	for idx, m := range r.Matches {
		out.Matches[idx] = m.clone()
	}
	out.Unpaired = append([]int(nil), r.Unpaired...)
	return out
}
