// Package pipeline implements the referee/team discipline pipeline:
// allow-list filtering, referee selection, home/away row expansion,
// (Referee, Team) aggregation, Cartesian reindexing, and standardization.
package pipeline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CanonicalReferee maps a raw referee name to its canonical grouping key:
// periods stripped, whitespace trimmed, Title Case. The same function must be
// used everywhere a referee name acts as a key, or distinct spellings split
// one referee into several identities.
//
// "wilkes" → "Clive Wilkes" is the single special case carried over from the
// source data; the mapping is known to be incomplete and is deliberately
// not extended by guesswork.
func CanonicalReferee(name string) string {
	clean := strings.ToLower(strings.ReplaceAll(name, ".", ""))
	clean = strings.TrimSpace(clean)
	if strings.Contains(clean, "wilkes") {
		return "Clive Wilkes"
	}
	return cases.Title(language.English).String(clean)
}

// CanonicalTeam resolves a raw team name against the allow-list: trimmed,
// case-insensitive match, returning the allow-list spelling. The second
// return is false when the team is not allow-listed.
func CanonicalTeam(name string, allow []string) (string, bool) {
	clean := strings.TrimSpace(name)
	for _, team := range allow {
		if strings.EqualFold(clean, team) {
			return team, true
		}
	}
	return "", false
}
