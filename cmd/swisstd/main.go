/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/mikeb26/croquet-swiss/config"
	"github.com/mikeb26/croquet-swiss/entries"
	"github.com/mikeb26/croquet-swiss/export"
	"github.com/mikeb26/croquet-swiss/internal"
	"github.com/mikeb26/croquet-swiss/s3archive"
	"github.com/mikeb26/croquet-swiss/store"
	"github.com/mikeb26/croquet-swiss/swiss"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":      handleHelp,
	"new":       handleNew,
	"list":      handleList,
	"pairings":  handlePairings,
	"record":    handleRecord,
	"advance":   handleAdvance,
	"standings": handleStandings,
	"export":    handleExport,
	"archive":   handleArchive,
	"restore":   handleRestore,
	"delete":    handleDelete,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// cmdFlags holds the flags every tournament command accepts.
type cmdFlags struct {
	fs     *flag.FlagSet
	config *string
	name   *string
	id     *int64
}

func newCmdFlags(cmd string) *cmdFlags {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	return &cmdFlags{
		fs:     fs,
		config: fs.String("config", config.DefaultFile, "Path to config file"),
		name:   fs.String("name", "", "Tournament name"),
		id:     fs.Int64("id", 0, "Tournament id (as returned by list)"),
	}
}

func (cf *cmdFlags) parse(args []string) *config.Config {
	if err := cf.fs.Parse(args); err != nil {
		os.Exit(1)
	}
	cfg, err := config.LoadConfig(*cf.config)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	return cfg
}

func openStore(ctx context.Context, cfg *config.Config) *store.Store {
	st, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		log.Fatalf("Error opening store %v: %v", cfg.StorePath, err)
	}
	return st
}

// tournamentID resolves --id or --name to a stored tournament id.
func (cf *cmdFlags) tournamentID(ctx context.Context, st *store.Store) int64 {
	if *cf.id > 0 {
		return *cf.id
	}
	if *cf.name == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --name or --id.")
		cf.fs.Usage()
		os.Exit(1)
	}
	id, err := st.FindByName(ctx, *cf.name)
	if err != nil {
		log.Fatalf("Error finding tournament: %v", err)
	}
	return id
}

func seedOpts(seed uint64) []swiss.Option {
	if seed == 0 {
		return nil
	}
	return []swiss.Option{swiss.WithShuffler(rand.New(rand.NewPCG(seed,
		seed)))}
}

func printWarnings(warnings []swiss.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %v\n", w)
	}
}

func handleNew(ctx context.Context, args []string) {
	cf := newCmdFlags("new")
	dateStr := cf.fs.String("date", "", "Tournament date (e.g. 2026-05-16)")
	rounds := cf.fs.Int("rounds", 3, "Number of rounds to play")
	urls := cf.fs.String("url", "",
		"Comma separated registration page URLs to read entrants from")
	cfg := cf.parse(args)

	if *cf.name == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --name.")
		cf.fs.Usage()
		os.Exit(1)
	}
	date, err := internal.ParseDateOrZero(*dateStr)
	if err != nil {
		log.Fatalf("Error parsing --date %q: %v", *dateStr, err)
	}

	names := cf.fs.Args()
	if *urls != "" {
		client := internal.NewCachedHttpClient(ctx, cfg.CacheBucket,
			time.Hour)
		fetched, err := entries.FetchAll(ctx, client,
			strings.Split(*urls, ","))
		if err != nil {
			log.Fatalf("Error fetching entries: %v", err)
		}
		names = append(names, fetched...)
	}

	tourney, err := swiss.NewTournament(names, *rounds,
		swiss.WithByePoints(cfg.ByePoints))
	if err != nil {
		log.Fatalf("Error creating tournament: %v", err)
	}

	st := openStore(ctx, cfg)
	defer st.Close()
	id, err := st.Create(ctx, *cf.name, date, tourney)
	if err != nil {
		log.Fatalf("Error saving tournament: %v", err)
	}

	fmt.Printf("Created %v (id:%d) with %d players over %d rounds\n",
		*cf.name, id, len(tourney.Competitors()), *rounds)
	fmt.Printf("\nRun '%s advance --id %d' to pair round 1\n", os.Args[0], id)
}

func handleList(ctx context.Context, args []string) {
	cf := newCmdFlags("list")
	cfg := cf.parse(args)

	st := openStore(ctx, cfg)
	defer st.Close()
	list, err := st.List(ctx)
	if err != nil {
		log.Fatalf("Error listing tournaments: %v", err)
	}
	if len(list) == 0 {
		fmt.Println("No tournaments found.")
		return
	}
	for _, sum := range list {
		date := "undated"
		if !sum.Date.IsZero() {
			date = sum.Date.Format("2006-01-02")
		}
		fmt.Printf("  - %s %s (id:%d) round %d of %d\n", date, sum.Name,
			sum.ID, sum.RoundsPlayed, sum.RoundsTarget)
	}
}

func handlePairings(ctx context.Context, args []string) {
	cf := newCmdFlags("pairings")
	round := cf.fs.Int("round", 0, "Round number (default is the latest)")
	cfg := cf.parse(args)

	st := openStore(ctx, cfg)
	defer st.Close()
	rec, err := st.Load(ctx, cf.tournamentID(ctx, st))
	if err != nil {
		log.Fatalf("Error loading tournament: %v", err)
	}
	idx := *round - 1
	if *round == 0 {
		idx = len(rec.Tournament.Rounds()) - 1
	}
	fmt.Print(swiss.BuildPairingsOutput(rec.Tournament, idx))
}

func handleRecord(ctx context.Context, args []string) {
	cf := newCmdFlags("record")
	round := cf.fs.Int("round", 0, "Round number (default is the latest)")
	match := cf.fs.Int("match", -1, "Match number as shown by pairings")
	score := cf.fs.String("score", "", "Hoops scored, player first (e.g. 7-3)")
	cfg := cf.parse(args)

	var one, two int
	if _, err := fmt.Sscanf(*score, "%d-%d", &one, &two); err != nil {
		fmt.Fprintln(os.Stderr, "Please provide a valid --score such as 7-3.")
		cf.fs.Usage()
		os.Exit(1)
	}

	st := openStore(ctx, cfg)
	defer st.Close()
	var warnings []swiss.Warning
	rec, err := st.Update(ctx, cf.tournamentID(ctx, st),
		func(t *swiss.Tournament) error {
			idx := *round - 1
			if *round == 0 {
				idx = len(t.Rounds()) - 1
			}
			var err error
			warnings, err = t.RecordResult(idx, *match, one, two)
			return err
		})
	if err != nil {
		log.Fatalf("Error recording result: %v", err)
	}
	printWarnings(warnings)
	fmt.Printf("Recorded %d-%d in %v\n", one, two, rec.Name)
}

func handleAdvance(ctx context.Context, args []string) {
	cf := newCmdFlags("advance")
	seed := cf.fs.Uint64("seed", 0,
		"Seed for the round 1 shuffle (default is random)")
	cfg := cf.parse(args)

	st := openStore(ctx, cfg)
	defer st.Close()
	var warnings []swiss.Warning
	rec, err := st.Update(ctx, cf.tournamentID(ctx, st),
		func(t *swiss.Tournament) error {
			var err error
			_, warnings, err = t.Advance()
			return err
		}, seedOpts(*seed)...)
	if errors.Is(err, swiss.ErrRoundNotComplete) {
		log.Fatalf("Error advancing: %v; record the remaining results first",
			err)
	} else if err != nil {
		log.Fatalf("Error advancing: %v", err)
	}
	printWarnings(warnings)
	fmt.Print(swiss.BuildPairingsOutput(rec.Tournament,
		len(rec.Tournament.Rounds())-1))
}

func handleStandings(ctx context.Context, args []string) {
	cf := newCmdFlags("standings")
	cfg := cf.parse(args)

	st := openStore(ctx, cfg)
	defer st.Close()
	rec, err := st.Load(ctx, cf.tournamentID(ctx, st))
	if err != nil {
		log.Fatalf("Error loading tournament: %v", err)
	}
	fmt.Print(swiss.BuildStandingsOutput(rec.Tournament))
}

func handleExport(ctx context.Context, args []string) {
	cf := newCmdFlags("export")
	out := cf.fs.String("out", "", "Output file (default is <name>.xlsx)")
	cfg := cf.parse(args)

	st := openStore(ctx, cfg)
	defer st.Close()
	rec, err := st.Load(ctx, cf.tournamentID(ctx, st))
	if err != nil {
		log.Fatalf("Error loading tournament: %v", err)
	}
	if *out == "" {
		*out = rec.Name + ".xlsx"
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Error creating %v: %v", *out, err)
	}
	if err := export.WriteWorkbook(f, rec.Name, rec.Tournament); err != nil {
		f.Close()
		log.Fatalf("Error exporting %v: %v", rec.Name, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Error closing %v: %v", *out, err)
	}
	fmt.Printf("Wrote %v\n", *out)
}

// archivedTournament is the document stored in the archive bucket.
type archivedTournament struct {
	Name     string         `json:"name"`
	Date     string         `json:"date,omitempty"`
	Snapshot swiss.Snapshot `json:"snapshot"`
}

func openArchive(ctx context.Context, cfg *config.Config) *s3archive.Archive {
	archive := s3archive.New(ctx, cfg.ArchiveBucket, true, true)
	if err := archive.Init(); err != nil {
		log.Fatalf("Error opening archive: %v", err)
	}
	return archive
}

func handleArchive(ctx context.Context, args []string) {
	cf := newCmdFlags("archive")
	cfg := cf.parse(args)

	st := openStore(ctx, cfg)
	defer st.Close()
	rec, err := st.Load(ctx, cf.tournamentID(ctx, st))
	if err != nil {
		log.Fatalf("Error loading tournament: %v", err)
	}

	doc := archivedTournament{
		Name:     rec.Name,
		Snapshot: rec.Tournament.Snapshot(),
	}
	if !rec.Date.IsZero() {
		doc.Date = rec.Date.Format("2006-01-02")
	}
	archive := openArchive(ctx, cfg)
	if err := archive.PutJSON(ctx, rec.Name, doc); err != nil {
		log.Fatalf("Error archiving %v: %v", rec.Name, err)
	}
	fmt.Printf("Archived %v to s3://%v/%v\n", rec.Name, cfg.ArchiveBucket,
		archive.SnapshotKey(rec.Name))
}

func handleRestore(ctx context.Context, args []string) {
	cf := newCmdFlags("restore")
	as := cf.fs.String("as", "", "Store under a different name")
	cfg := cf.parse(args)

	if *cf.name == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --name.")
		cf.fs.Usage()
		os.Exit(1)
	}
	archive := openArchive(ctx, cfg)
	var doc archivedTournament
	err := archive.GetJSON(ctx, *cf.name, &doc)
	if errors.Is(err, s3archive.ErrNotFound) {
		log.Fatalf("No archived tournament named %v", *cf.name)
	} else if err != nil {
		log.Fatalf("Error restoring %v: %v", *cf.name, err)
	}

	tourney, err := doc.Snapshot.Resume()
	if err != nil {
		log.Fatalf("Error resuming %v: %v", doc.Name, err)
	}
	date, err := internal.ParseDateOrZero(doc.Date)
	if err != nil {
		log.Fatalf("Error parsing archived date %q: %v", doc.Date, err)
	}
	name := doc.Name
	if *as != "" {
		name = *as
	}

	st := openStore(ctx, cfg)
	defer st.Close()
	id, err := st.Create(ctx, name, date, tourney)
	if err != nil {
		log.Fatalf("Error saving %v: %v", name, err)
	}
	fmt.Printf("Restored %v (id:%d)\n", name, id)
}

func handleDelete(ctx context.Context, args []string) {
	cf := newCmdFlags("delete")
	cfg := cf.parse(args)

	st := openStore(ctx, cfg)
	defer st.Close()
	id := cf.tournamentID(ctx, st)
	if err := st.Delete(ctx, id); err != nil {
		log.Fatalf("Error deleting tournament: %v", err)
	}
	fmt.Printf("Deleted tournament id:%d\n", id)
}
