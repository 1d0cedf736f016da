/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/mikeb26/croquet-swiss/entries"
	"github.com/mikeb26/croquet-swiss/internal"
	"github.com/mikeb26/croquet-swiss/swiss"
)

// pairings previews round 1 of a tournament straight from its registration
// pages without touching the store.
func main() {
	args := parseArgs()
	ctx := context.Background()

	client := internal.NewCachedHttpClient(ctx, "", time.Hour)
	names, err := entries.FetchAll(ctx, client, args.urls)
	if err != nil {
		log.Fatalf("%v: Failed to retrieve entries: %v", os.Args[0], err)
	}

	out, err := predictPairings(names, args.rounds, args.shuffler())
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	os.Stdout.WriteString(out)
}

// predictPairings pairs the opening round for names.
func predictPairings(names []string, rounds int,
	shuffler swiss.Shuffler) (string, error) {

	tourney, err := swiss.NewTournament(names, rounds,
		swiss.WithShuffler(shuffler))
	if err != nil {
		return "", err
	}
	if _, _, err := tourney.Advance(); err != nil {
		return "", err
	}

	return "Predicted " + swiss.BuildPairingsOutput(tourney, 0), nil
}
