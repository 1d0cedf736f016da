/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package export renders a tournament as an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mikeb26/croquet-swiss/swiss"
)

const StandingsSheet = "Standings"

var standingsHeader = []any{"Place", "Name", "Points", "Wins", "Hoops For",
	"Hoops Against", "Difference"}

var roundHeader = []any{"Match", "Player", "Opponent", "Player Hoops",
	"Opponent Hoops"}

// RoundSheet is the sheet name used for the round at index.
func RoundSheet(index int) string {
	return fmt.Sprintf("Round %d", index+1)
}

// WriteWorkbook writes a workbook with a standings sheet followed by one
// sheet per generated round.
func WriteWorkbook(w io.Writer, name string, t *swiss.Tournament) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), StandingsSheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: name,
		Creator: "croquet-swiss"}); err != nil {
		return fmt.Errorf("export: doc props: %w", err)
	}
	if err := writeStandings(f, t); err != nil {
		return err
	}

	roster := t.Roster()
	for idx, round := range t.Rounds() {
		sheet := RoundSheet(idx)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("export: new sheet %v: %w", sheet, err)
		}
		rows := [][]any{roundHeader}
		for mIdx, m := range round.Matches {
			row := []any{mIdx, roster.Name(m.PlayerOne), roster.Name(m.PlayerTwo)}
			if m.Result != nil && !m.IsBye() {
				row = append(row, m.Result.ScoreOne, m.Result.ScoreTwo)
			}
			rows = append(rows, row)
		}
		if err := setRows(f, sheet, rows); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func writeStandings(f *excelize.File, t *swiss.Tournament) error {
	rows := [][]any{standingsHeader}
	priorPoints := -1.0
	for idx, c := range t.Standings() {
		var place any = ""
		if idx == 0 || c.Points != priorPoints {
			place = idx + 1
			priorPoints = c.Points
		}
		rows = append(rows, []any{place, c.Name, c.Points, c.Wins,
			c.HoopsScored, c.HoopsConceded, c.HoopDifference()})
	}
	return setRows(f, StandingsSheet, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return fmt.Errorf("export: %v row %d: %w", sheet, idx, err)
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("export: %v row %d: %w", sheet, idx, err)
		}
	}
	return nil
}
