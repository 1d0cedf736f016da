/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
)

// DefaultByePoints is what a bye is worth unless configured otherwise.
const DefaultByePoints = 1.0

// Ledger is the only path through which match results change competitor
// aggregates.
type Ledger struct {
	ByePoints float64
}

// Record stores a result on m and applies it to the roster. If m already
// has a result, that result's contribution is reversed first, so recording
// the same score twice leaves the aggregates unchanged. Opponent history is
// never touched.
//
// For a bye the scores are kept on the match but only ByePoints is credited,
// once, to PlayerOne. Equal non-zero scores are accepted as a draw that awards
// no points; an ErrDrawRecorded warning is returned.
func (l Ledger) Record(r *Roster, m *Match, scoreOne, scoreTwo int) ([]Warning,
	error) {

	if scoreOne < 0 || scoreTwo < 0 {
		return nil, fmt.Errorf("%w: got %d-%d", ErrInvalidScore, scoreOne,
			scoreTwo)
	}
	if err := l.check(r, m); err != nil {
		return nil, err
	}

	if m.Result != nil {
		l.apply(r, m, *m.Result, -1)
	}
	res := Result{ScoreOne: scoreOne, ScoreTwo: scoreTwo}
	l.apply(r, m, res, 1)
	m.Result = &res

	if !m.IsBye() && scoreOne == scoreTwo && scoreOne != 0 {
		return []Warning{{
			Kind: ErrDrawRecorded,
			Detail: fmt.Sprintf("%v %d-%d %v; no points awarded",
				r.Name(m.PlayerOne), scoreOne, scoreTwo, r.Name(m.PlayerTwo)),
			Count: 2,
		}}, nil
	}

	return nil, nil
}

func (l Ledger) check(r *Roster, m *Match) error {
	if m.PlayerOne < 0 || m.PlayerOne >= r.Len() {
		return fmt.Errorf("%w: player %d not on roster", ErrInvalidIndex,
			m.PlayerOne)
	}
	if !m.IsBye() && (m.PlayerTwo < 0 || m.PlayerTwo >= r.Len()) {
		return fmt.Errorf("%w: player %d not on roster", ErrInvalidIndex,
			m.PlayerTwo)
	}
	return nil
}

// apply adds (sign=1) or removes (sign=-1) the contribution of res.
func (l Ledger) apply(r *Roster, m *Match, res Result, sign int) {
	one := r.get(m.PlayerOne)
	if m.IsBye() {
		one.Points += float64(sign) * l.ByePoints
		return
	}
	two := r.get(m.PlayerTwo)

	one.HoopsScored += sign * res.ScoreOne
	one.HoopsConceded += sign * res.ScoreTwo
	two.HoopsScored += sign * res.ScoreTwo
	two.HoopsConceded += sign * res.ScoreOne

	switch {
	case res.ScoreOne > res.ScoreTwo:
		one.Wins += sign
		one.Points += float64(sign)
	case res.ScoreTwo > res.ScoreOne:
		two.Wins += sign
		two.Points += float64(sign)
	}
}
