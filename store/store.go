/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package store persists tournaments in a SQLite database.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mikeb26/croquet-swiss/internal"
	"github.com/mikeb26/croquet-swiss/swiss"
)

//go:embed schema.sql
var schema string

const dateLayout = "2006-01-02"

var (
	ErrNotFound  = errors.New("tournament not found")
	ErrNameInUse = errors.New("tournament name already in use")
)

// Record is a stored tournament together with its metadata.
type Record struct {
	ID         int64
	Name       string
	Date       time.Time
	Tournament *swiss.Tournament
}

// Summary is a listing entry.
type Summary struct {
	ID           int64
	Name         string
	Date         time.Time
	RoundsTarget int
	RoundsPlayed int
}

// Store is a SQLite-backed tournament store. It holds a single connection, so
// writers are serialised.
type Store struct {
	db *sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create stores a new tournament and returns its id.
func (s *Store) Create(ctx context.Context, name string, date time.Time,
	t *swiss.Tournament) (int64, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("tournament name is required")
	}

	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var dateStr string
		if !date.IsZero() {
			dateStr = date.Format(dateLayout)
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO tournaments (name, date, rounds_target, bye_points) VALUES (?,?,?,?)`,
			name, dateStr, t.RoundsTarget(), t.ByePoints())
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique") {
				return fmt.Errorf("%w: %q", ErrNameInUse, name)
			}
			return fmt.Errorf("insert tournament: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert tournament: %w", err)
		}
		return saveState(ctx, tx, id, t)
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Save replaces the stored state of tournament id with t.
func (s *Store) Save(ctx context.Context, id int64, t *swiss.Tournament) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, id); err != nil {
			return err
		}
		return saveState(ctx, tx, id, t)
	})
}

// Load reads tournament id. opts are applied when the tournament is resumed,
// e.g. to inject a seeded shuffler.
func (s *Store) Load(ctx context.Context, id int64,
	opts ...swiss.Option) (*Record, error) {

	return load(ctx, s.db, id, opts)
}

// Update loads tournament id, passes it to fn and saves the result, all in
// one transaction. Nothing is saved if fn returns an error.
func (s *Store) Update(ctx context.Context, id int64,
	fn func(*swiss.Tournament) error, opts ...swiss.Option) (*Record, error) {

	var rec *Record
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		rec, err = load(ctx, tx, id, opts)
		if err != nil {
			return err
		}
		if err := fn(rec.Tournament); err != nil {
			return err
		}
		return saveState(ctx, tx, id, rec.Tournament)
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// FindByName returns the id of the tournament called name.
func (s *Store) FindByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM tournaments WHERE name = ?`,
		strings.TrimSpace(name)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("find tournament %q: %w", name, err)
	}
	return id, nil
}

// List returns every stored tournament, newest first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT t.id, t.name, t.date, t.rounds_target,
       (SELECT COUNT(*) FROM rounds r WHERE r.tournament_id = t.id)
FROM tournaments t ORDER BY t.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var dateStr string
		if err := rows.Scan(&sum.ID, &sum.Name, &dateStr, &sum.RoundsTarget,
			&sum.RoundsPlayed); err != nil {
			return nil, fmt.Errorf("list tournaments: %w", err)
		}
		sum.Date, err = internal.ParseDateOrZero(dateStr)
		if err != nil {
			return nil, fmt.Errorf("tournament %d date %q: %w", sum.ID,
				dateStr, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes tournament id and everything stored under it.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tournament %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func exists(ctx context.Context, q querier, id int64) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM tournaments WHERE id = ?`,
		id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return err
}

func saveState(ctx context.Context, q querier, id int64,
	t *swiss.Tournament) error {

	if _, err := q.ExecContext(ctx,
		`UPDATE tournaments SET rounds_target = ?, bye_points = ? WHERE id = ?`,
		t.RoundsTarget(), t.ByePoints(), id); err != nil {
		return fmt.Errorf("update tournament %d: %w", id, err)
	}
	for _, table := range []string{"players", "rounds", "matches"} {
		if _, err := q.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE tournament_id = ?`, id); err != nil {
			return fmt.Errorf("clear %v for tournament %d: %w", table, id, err)
		}
	}

	for _, c := range t.Competitors() {
		if _, err := q.ExecContext(ctx, `
INSERT INTO players (tournament_id, player_id, name, points, wins, hoops_scored, hoops_conceded)
VALUES (?,?,?,?,?,?,?)`,
			id, c.ID, c.Name, c.Points, c.Wins, c.HoopsScored,
			c.HoopsConceded); err != nil {
			return fmt.Errorf("insert player %v: %w", c.Name, err)
		}
	}

	for rIdx, round := range t.Rounds() {
		if _, err := q.ExecContext(ctx, `
INSERT INTO rounds (tournament_id, round_num, forced_rematch) VALUES (?,?,?)`,
			id, rIdx, round.ForcedRematch); err != nil {
			return fmt.Errorf("insert round %d: %w", rIdx, err)
		}
		for mIdx, m := range round.Matches {
			var p2, h1, h2 sql.NullInt64
			if !m.IsBye() {
				p2 = sql.NullInt64{Int64: int64(m.PlayerTwo), Valid: true}
			}
			if m.Result != nil {
				h1 = sql.NullInt64{Int64: int64(m.Result.ScoreOne), Valid: true}
				h2 = sql.NullInt64{Int64: int64(m.Result.ScoreTwo), Valid: true}
			}
			if _, err := q.ExecContext(ctx, `
INSERT INTO matches (tournament_id, round_num, match_num, player1_id, player2_id, hoops1, hoops2)
VALUES (?,?,?,?,?,?,?)`,
				id, rIdx, mIdx, m.PlayerOne, p2, h1, h2); err != nil {
				return fmt.Errorf("insert round %d match %d: %w", rIdx, mIdx,
					err)
			}
		}
	}

	return nil
}

func load(ctx context.Context, q querier, id int64,
	opts []swiss.Option) (*Record, error) {

	rec := &Record{ID: id}
	var dateStr string
	var roundsTarget int
	var byePoints float64
	err := q.QueryRowContext(ctx,
		`SELECT name, date, rounds_target, bye_points FROM tournaments WHERE id = ?`,
		id).Scan(&rec.Name, &dateStr, &roundsTarget, &byePoints)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load tournament %d: %w", id, err)
	}
	rec.Date, err = internal.ParseDateOrZero(dateStr)
	if err != nil {
		return nil, fmt.Errorf("tournament %d date %q: %w", id, dateStr, err)
	}

	competitors, err := loadPlayers(ctx, q, id)
	if err != nil {
		return nil, err
	}
	rounds, err := loadRounds(ctx, q, id)
	if err != nil {
		return nil, err
	}

	all := append([]swiss.Option{swiss.WithByePoints(byePoints)}, opts...)
	rec.Tournament, err = swiss.ResumeTournament(competitors, rounds,
		roundsTarget, all...)
	if err != nil {
		return nil, fmt.Errorf("resume tournament %d: %w", id, err)
	}

	return rec, nil
}

func loadPlayers(ctx context.Context, q querier,
	id int64) ([]swiss.Competitor, error) {

	rows, err := q.QueryContext(ctx, `
SELECT player_id, name, points, wins, hoops_scored, hoops_conceded
FROM players WHERE tournament_id = ? ORDER BY player_id`, id)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	defer rows.Close()

	var out []swiss.Competitor
	for rows.Next() {
		var c swiss.Competitor
		if err := rows.Scan(&c.ID, &c.Name, &c.Points, &c.Wins,
			&c.HoopsScored, &c.HoopsConceded); err != nil {
			return nil, fmt.Errorf("load players: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func loadRounds(ctx context.Context, q querier, id int64) ([]swiss.Round,
	error) {

	rows, err := q.QueryContext(ctx, `
SELECT round_num, forced_rematch FROM rounds
WHERE tournament_id = ? ORDER BY round_num`, id)
	if err != nil {
		return nil, fmt.Errorf("load rounds: %w", err)
	}
	var rounds []swiss.Round
	for rows.Next() {
		var num int
		var forced bool
		if err := rows.Scan(&num, &forced); err != nil {
			rows.Close()
			return nil, fmt.Errorf("load rounds: %w", err)
		}
		if num != len(rounds) {
			rows.Close()
			return nil, fmt.Errorf("load rounds: round %d missing", len(rounds))
		}
		rounds = append(rounds, swiss.Round{Number: num + 1,
			ForcedRematch: forced})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("load rounds: %w", err)
	}
	rows.Close()

	mrows, err := q.QueryContext(ctx, `
SELECT round_num, player1_id, player2_id, hoops1, hoops2 FROM matches
WHERE tournament_id = ? ORDER BY round_num, match_num`, id)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	defer mrows.Close()

	for mrows.Next() {
		var num int
		var m swiss.Match
		var p2, h1, h2 sql.NullInt64
		if err := mrows.Scan(&num, &m.PlayerOne, &p2, &h1, &h2); err != nil {
			return nil, fmt.Errorf("load matches: %w", err)
		}
		if num < 0 || num >= len(rounds) {
			return nil, fmt.Errorf("load matches: unknown round %d", num)
		}
		m.PlayerTwo = swiss.NoOpponent
		if p2.Valid {
			m.PlayerTwo = int(p2.Int64)
		}
		if h1.Valid && h2.Valid {
			m.Result = &swiss.Result{ScoreOne: int(h1.Int64),
				ScoreTwo: int(h2.Int64)}
		}
		rounds[num].Matches = append(rounds[num].Matches, m)
	}

	return rounds, mrows.Err()
}
