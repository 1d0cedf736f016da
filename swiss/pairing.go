/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"math/rand/v2"
)

// Shuffler randomises the opening-round seeding. *rand.Rand satisfies it, so
// tests can pass a seeded source to get reproducible pairings.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Pairer produces one round of matches at a time.
type Pairer struct {
	shuffler Shuffler
}

// NewPairer returns a Pairer that seeds the opening round with s. A nil s
// uses a randomly seeded PCG source.
func NewPairer(s Shuffler) *Pairer {
	if s == nil {
		s = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Pairer{shuffler: s}
}

// GenerateRound pairs the roster for one round. The opening round is seeded
// by shuffling; later rounds follow the current standings. Each competitor is
// paired with the highest-seeded unassigned competitor it has not yet played;
// when no such competitor exists the pairing falls back to a rematch and a
// ErrForcedRematch warning is returned. With an odd roster one competitor
// receives a bye, chosen before pairing by fewest byes, then lowest points,
// then lowest id.
//
// GenerateRound records the new opponents and bye on the roster.
func (p *Pairer) GenerateRound(r *Roster, opening bool) (*Round, []Warning) {
	order := p.seedingOrder(r, opening)
	round := &Round{Matches: make([]Match, 0, (len(order)+1)/2)}
	var warnings []Warning

	byeID := NoOpponent
	if len(order)%2 == 1 {
		byeID = pickBye(r, order)
		order = removeID(order, byeID)
	}

	assigned := make(map[int]bool, len(order))
	for idx, p1 := range order {
		if assigned[p1] {
			continue
		}
		p2 := firstUnassigned(order[idx+1:], assigned, func(cand int) bool {
			return !r.get(p1).HasPlayed(cand)
		})
		if p2 == NoOpponent {
			p2 = firstUnassigned(order[idx+1:], assigned, nil)
			if p2 == NoOpponent {
				continue
			}
			round.ForcedRematch = true
			warnings = append(warnings, Warning{
				Kind:   ErrForcedRematch,
				Detail: fmt.Sprintf("%v vs %v", r.Name(p1), r.Name(p2)),
				Count:  2,
			})
		}

		assigned[p1] = true
		assigned[p2] = true
		r.markPlayed(p1, p2)
		round.Matches = append(round.Matches, Match{PlayerOne: p1,
			PlayerTwo: p2})
	}

	for _, id := range order {
		if !assigned[id] {
			round.Unpaired = append(round.Unpaired, id)
		}
	}
	if len(round.Unpaired) > 0 {
		warnings = append(warnings, Warning{
			Kind:   ErrPairingShortfall,
			Detail: fmt.Sprintf("%d competitors left unpaired", len(round.Unpaired)),
			Count:  len(round.Unpaired),
		})
	}

	if byeID != NoOpponent {
		r.get(byeID).Byes++
		round.Matches = append(round.Matches, Match{PlayerOne: byeID,
			PlayerTwo: NoOpponent})
	}

	return round, warnings
}

func (p *Pairer) seedingOrder(r *Roster, opening bool) []int {
	order := make([]int, 0, r.Len())
	if opening {
		for id := 0; id < r.Len(); id++ {
			order = append(order, id)
		}
		p.shuffler.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		return order
	}

	for _, c := range Standings(r) {
		order = append(order, c.ID)
	}
	return order
}

// pickBye selects the competitor with the fewest byes so far; ties go to the
// lowest points, then the lowest id.
func pickBye(r *Roster, order []int) int {
	best := NoOpponent
	for _, id := range order {
		if best == NoOpponent {
			best = id
			continue
		}
		c, b := r.get(id), r.get(best)
		switch {
		case c.Byes != b.Byes:
			if c.Byes < b.Byes {
				best = id
			}
		case c.Points != b.Points:
			if c.Points < b.Points {
				best = id
			}
		case id < best:
			best = id
		}
	}
	return best
}

func firstUnassigned(cands []int, assigned map[int]bool,
	ok func(int) bool) int {

	for _, cand := range cands {
		if assigned[cand] {
			continue
		}
		if ok == nil || ok(cand) {
			return cand
		}
	}
	return NoOpponent
}

func removeID(order []int, id int) []int {
	out := make([]int, 0, len(order))
	for _, v := range order {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
