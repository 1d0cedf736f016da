/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/mikeb26/croquet-swiss/swiss"
)

func TestPredictPairings(t *testing.T) {
	names := []string{"Ann", "Ben", "Cat", "Dan", "Eve"}
	seeded := func() swiss.Shuffler { return rand.New(rand.NewPCG(3, 3)) }

	out, err := predictPairings(names, 3, seeded())
	if err != nil {
		t.Fatalf("predictPairings returned error: %v", err)
	}
	if !strings.HasPrefix(out, "Predicted Round 1 of 3 Pairings:") {
		t.Errorf("unexpected header:\n%v", out)
	}
	if !strings.Contains(out, "BYE(1)") {
		t.Errorf("expected a bye with five players:\n%v", out)
	}
	for _, n := range names {
		if !strings.Contains(out, n) {
			t.Errorf("expected %v in output:\n%v", n, out)
		}
	}

	again, _ := predictPairings(names, 3, seeded())
	if again != out {
		t.Errorf("same seed gave different pairings:\n%v\n%v", out, again)
	}

	if _, err := predictPairings(names[:1], 3, nil); !errors.Is(err,
		swiss.ErrInvalidRoster) {
		t.Errorf("expected ErrInvalidRoster, got %v", err)
	}
}
