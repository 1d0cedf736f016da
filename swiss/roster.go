/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"maps"
	"strings"
)

// Competitor is one entrant together with its running totals. ID is the
// competitor's position in the original name list and never changes.
type Competitor struct {
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	Points        float64      `json:"points"`
	Wins          int          `json:"wins"`
	HoopsScored   int          `json:"hoopsScored"`
	HoopsConceded int          `json:"hoopsConceded"`
	Byes          int          `json:"byes"`
	Opponents     map[int]bool `json:"opponents,omitempty"`
}

// HasPlayed reports whether c has already been paired against id.
func (c Competitor) HasPlayed(id int) bool {
	return c.Opponents[id]
}

// HoopDifference is hoops scored minus hoops conceded.
func (c Competitor) HoopDifference() int {
	return c.HoopsScored - c.HoopsConceded
}

func (c Competitor) clone() Competitor {
	c.Opponents = maps.Clone(c.Opponents)
	if c.Opponents == nil {
		c.Opponents = make(map[int]bool)
	}
	return c
}

// Roster is the arena of competitors for one tournament, indexed by id.
type Roster struct {
	competitors []Competitor
}

// NewRoster creates a roster from an ordered list of unique display names.
func NewRoster(names []string) (*Roster, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 names, got %d",
			ErrInvalidRoster, len(names))
	}

	seen := make(map[string]bool, len(names))
	r := &Roster{competitors: make([]Competitor, 0, len(names))}
	for idx, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: name %d is blank", ErrInvalidRoster,
				idx)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidRoster,
				name)
		}
		seen[name] = true
		r.competitors = append(r.competitors, Competitor{
			ID:        idx,
			Name:      name,
			Opponents: make(map[int]bool),
		})
	}

	return r, nil
}

// Len returns the number of competitors.
func (r *Roster) Len() int {
	return len(r.competitors)
}

// Competitor returns a copy of the competitor with the given id.
func (r *Roster) Competitor(id int) (Competitor, bool) {
	if id < 0 || id >= len(r.competitors) {
		return Competitor{}, false
	}
	return r.competitors[id].clone(), true
}

// Competitors returns copies of every competitor in id order.
func (r *Roster) Competitors() []Competitor {
	out := make([]Competitor, len(r.competitors))
	for idx, c := range r.competitors {
		out[idx] = c.clone()
	}
	return out
}

// Name returns the display name for id, or "BYE" for NoOpponent.
func (r *Roster) Name(id int) string {
	if id < 0 || id >= len(r.competitors) {
		return "BYE"
	}
	return r.competitors[id].Name
}

func (r *Roster) get(id int) *Competitor {
	return &r.competitors[id]
}

func (r *Roster) markPlayed(a, b int) {
	r.competitors[a].Opponents[b] = true
	r.competitors[b].Opponents[a] = true
}
