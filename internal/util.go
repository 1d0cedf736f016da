/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// ScoreToString renders points with a ½ glyph for half points, e.g. 2.5 as
// "2½" and 0.5 as "½". Other fractions fall back to decimal form.
func ScoreToString(score float64) string {
	whole, frac := math.Modf(score)
	switch {
	case frac == 0:
		return strconv.Itoa(int(whole))
	case math.Abs(frac) == 0.5 && whole == 0:
		if score < 0 {
			return "-½"
		}
		return "½"
	case math.Abs(frac) == 0.5:
		return strconv.Itoa(int(whole)) + "½"
	default:
		return strconv.FormatFloat(score, 'f', -1, 64)
	}
}

// NormalizeName collapses whitespace and title-cases each word of a name
// scraped from a registration page.
func NormalizeName(s string) string {
	parts := strings.Fields(s)
	for idx, p := range parts {
		runes := []rune(strings.ToLower(p))
		runes[0] = unicode.ToUpper(runes[0])
		parts[idx] = string(runes)
	}
	return strings.Join(parts, " ")
}
