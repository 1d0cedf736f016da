/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package entries builds a tournament roster from a published registration
// page: the first table whose header has a "Name" column.
package entries

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/croquet-swiss/internal"
)

var ErrNoEntries = errors.New("no entries table found")

// Parse extracts competitor names from a registration page. Names are
// normalised, and repeats after the first are dropped so the result is
// usable as a roster.
func Parse(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse entries page: %w", err)
	}

	var names []string
	found := false
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		nameIdx := nameColumn(table)
		if nameIdx < 0 {
			return true
		}
		found = true
		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() <= nameIdx {
				return
			}
			name := internal.NormalizeName(cells.Eq(nameIdx).Text())
			if name != "" {
				names = append(names, name)
			}
		})
		return false
	})
	if !found {
		return nil, ErrNoEntries
	}

	return dedupe(names), nil
}

// nameColumn returns the index of the "Name" header cell, or -1.
func nameColumn(table *goquery.Selection) int {
	idx := -1
	table.Find("thead th, tr:first-child th").EachWithBreak(
		func(i int, th *goquery.Selection) bool {
			col := strings.ToLower(strings.TrimSpace(th.Text()))
			if col == "name" || col == "player" || col == "competitor" {
				idx = i
				return false
			}
			return true
		})
	return idx
}

// Fetch retrieves url with client and parses it.
func Fetch(ctx context.Context, client *http.Client, url string) ([]string,
	error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch entries (new): %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch entries (do): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	names, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", url, err)
	}
	return names, nil
}

// FetchAll fetches every url concurrently and merges the names in url order.
// Any failed fetch fails the whole call.
func FetchAll(ctx context.Context, client *http.Client,
	urls []string) ([]string, error) {

	perURL := make([][]string, len(urls))
	g, gCtx := errgroup.WithContext(ctx)
	for idx, url := range urls {
		g.Go(func() error {
			names, err := Fetch(gCtx, client, url)
			if err != nil {
				return err
			}
			perURL[idx] = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []string
	for _, names := range perURL {
		all = append(all, names...)
	}
	return dedupe(all), nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
