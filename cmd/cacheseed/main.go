/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mikeb26/croquet-swiss/config"
	"github.com/mikeb26/croquet-swiss/entries"
	"github.com/mikeb26/croquet-swiss/internal"
)

// this program exists just to seed the http cache with registration pages
// ahead of an event, so `swisstd new --url` works even if the club site is
// slow or down on the day

func main() {
	cfgPath := flag.String("config", config.DefaultFile, "Path to config file")
	maxAge := flag.Duration("maxage", 24*time.Hour, "How long pages stay cached")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %v [--maxage 24h] <url> [url...]\n",
			os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("cacheseed: failed to load config: %v", err)
	}
	ctx := context.Background()
	client := internal.NewCachedHttpClient(ctx, cfg.CacheBucket, *maxAge)

	for idx, url := range flag.Args() {
		if idx > 0 {
			time.Sleep(2 * time.Second) // avoid pegging the club site
		}
		names, err := entries.Fetch(ctx, client, url)
		if err != nil {
			// best effort
			log.Printf("cacheseed: skipping %v: %v", url, err)
			continue
		}

		fmt.Printf("seeded %v (%d entries)\n", url, len(names))
	}
}
