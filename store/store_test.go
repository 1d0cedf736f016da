/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mikeb26/croquet-swiss/swiss"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(),
		filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestTournament(t *testing.T, names ...string) *swiss.Tournament {
	t.Helper()
	tourney, err := swiss.NewTournament(names, 3,
		swiss.WithShuffler(rand.New(rand.NewPCG(1, 2))),
		swiss.WithByePoints(0.5))
	if err != nil {
		t.Fatalf("NewTournament returned error: %v", err)
	}
	return tourney
}

func TestCreateLoad(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	tourney := newTestTournament(t, "Ann", "Ben", "Cat", "Dan", "Eve")

	if _, _, err := tourney.Advance(); err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}
	round, _ := tourney.Round(0)
	for idx, m := range round.Matches {
		if m.IsBye() {
			continue
		}
		if _, err := tourney.RecordResult(0, idx, 7, idx); err != nil {
			t.Fatalf("RecordResult returned error: %v", err)
		}
	}

	date := time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC)
	id, err := s.Create(ctx, "Spring Open", date, tourney)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	rec, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if rec.Name != "Spring Open" {
		t.Errorf("expected name Spring Open, got %q", rec.Name)
	}
	if !rec.Date.Equal(date) {
		t.Errorf("expected date %v, got %v", date, rec.Date)
	}
	if diff := cmp.Diff(tourney.Snapshot(), rec.Tournament.Snapshot()); diff != "" {
		t.Errorf("loaded tournament mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.Create(ctx, "Club Night", time.Time{},
		newTestTournament(t, "Ann", "Ben")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	_, err := s.Create(ctx, "Club Night", time.Time{},
		newTestTournament(t, "Cat", "Dan"))
	if !errors.Is(err, ErrNameInUse) {
		t.Errorf("expected ErrNameInUse, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	id, err := s.Create(ctx, "Club Night", time.Time{},
		newTestTournament(t, "Ann", "Ben", "Cat", "Dan"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	rec, err := s.Update(ctx, id, func(tourney *swiss.Tournament) error {
		_, _, err := tourney.Advance()
		return err
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got := len(rec.Tournament.Rounds()); got != 1 {
		t.Fatalf("expected 1 round after update, got %d", got)
	}

	// a failed mutation must leave the stored state untouched
	_, err = s.Update(ctx, id, func(tourney *swiss.Tournament) error {
		if _, err := tourney.RecordResult(0, 0, 7, 2); err != nil {
			return err
		}
		_, _, err := tourney.Advance()
		return err
	})
	if !errors.Is(err, swiss.ErrRoundNotComplete) {
		t.Fatalf("expected ErrRoundNotComplete, got %v", err)
	}

	rec, err = s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	round, _ := rec.Tournament.Round(0)
	if round.Matches[0].IsScored() {
		t.Errorf("expected rolled back result, got %+v", round.Matches[0].Result)
	}
	for _, c := range rec.Tournament.Competitors() {
		if c.Points != 0 || c.HoopsScored != 0 {
			t.Errorf("expected %v untouched, got %+v", c.Name, c)
		}
	}
}

func TestListFindDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first, err := s.Create(ctx, "First", time.Time{},
		newTestTournament(t, "Ann", "Ben"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := s.Create(ctx, "Second", time.Time{},
		newTestTournament(t, "Ann", "Ben", "Cat"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := s.Update(ctx, second, func(tourney *swiss.Tournament) error {
		_, _, err := tourney.Advance()
		return err
	}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	want := []Summary{
		{ID: second, Name: "Second", RoundsTarget: 3, RoundsPlayed: 1},
		{ID: first, Name: "First", RoundsTarget: 3, RoundsPlayed: 0},
	}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	id, err := s.FindByName(ctx, " First ")
	if err != nil || id != first {
		t.Errorf("FindByName = %d, %v; want %d", id, err, first)
	}

	if err := s.Delete(ctx, first); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := s.Load(ctx, first); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, first); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
