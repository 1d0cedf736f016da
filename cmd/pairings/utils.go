/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/mikeb26/croquet-swiss/swiss"
)

type cmdArgs struct {
	urls   []string
	rounds int
	seed   uint64
}

func parseArgs() cmdArgs {
	var args cmdArgs
	flag.Usage = usage
	flag.IntVar(&args.rounds, "rounds", 3, "Number of rounds planned")
	flag.Uint64Var(&args.seed, "seed", 0, "Shuffle seed (default is random)")
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	args.urls = flag.Args()

	return args
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage:\n\n%v [--rounds N] [--seed N] <url> [url...]\n\nFetch tournament registration <url>s and predict first round pairings.\n",
		os.Args[0])
}

// shuffler returns a seeded shuffle source, or nil for a random one.
func (a cmdArgs) shuffler() swiss.Shuffler {
	if a.seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(a.seed, a.seed))
}
