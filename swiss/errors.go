/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"errors"
	"fmt"
)

// Structural errors. An operation returning one of these made no change.
var (
	ErrInvalidRoster      = errors.New("invalid roster")
	ErrInvalidRounds      = errors.New("round count must be positive")
	ErrInvalidScore       = errors.New("scores must be non-negative")
	ErrInvalidIndex       = errors.New("round or match index out of range")
	ErrRoundNotComplete   = errors.New("current round has unscored matches")
	ErrTournamentComplete = errors.New("tournament has reached its round target")
)

// Warning kinds. These never abort an operation; they are returned next to
// its result so a human operator can be alerted.
var (
	ErrForcedRematch    = errors.New("forced rematch")
	ErrPairingShortfall = errors.New("pairing shortfall")
	ErrDrawRecorded     = errors.New("draw recorded")
)

// Warning describes a non-fatal condition raised while pairing or scoring.
type Warning struct {
	Kind   error
	Detail string
	// Count is the number of competitors affected, where that applies.
	Count int
}

func (w Warning) Error() string {
	if w.Detail == "" {
		return w.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", w.Kind, w.Detail)
}

func (w Warning) Unwrap() error {
	return w.Kind
}
