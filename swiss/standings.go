/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"sort"
)

// Standings returns copies of the roster's competitors ordered best first by
// points, hoop difference, hoops scored and finally lowest id. No two
// competitors compare equal, so the order is fully deterministic.
func Standings(r *Roster) []Competitor {
	out := r.Competitors()
	sort.Slice(out, func(i, j int) bool {
		return ranksAbove(out[i], out[j])
	})

	return out
}

func ranksAbove(a, b Competitor) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.HoopDifference() != b.HoopDifference() {
		return a.HoopDifference() > b.HoopDifference()
	}
	if a.HoopsScored != b.HoopsScored {
		return a.HoopsScored > b.HoopsScored
	}
	return a.ID < b.ID
}
