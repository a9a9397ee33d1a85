package pipeline

import "github.com/refwatch/refmetrics/internal/model"

// FilterAllowList keeps only matches where at least one side is on the team
// allow-list. Input order is preserved.
func FilterAllowList(matches []model.MatchRecord, allow []string) []model.MatchRecord {
	out := make([]model.MatchRecord, 0, len(matches))
	for _, m := range matches {
		_, homeOK := CanonicalTeam(m.HomeTeam, allow)
		_, awayOK := CanonicalTeam(m.AwayTeam, allow)
		if homeOK || awayOK {
			out = append(out, m)
		}
	}
	return out
}

// Expand derives up to two (Referee, Team) rows per match: the home side
// first, then the away side, each only when that side's team is on the
// allow-list. A match involving no allow-listed team contributes nothing.
// Emission order is deterministic: input match order, home before away.
func Expand(matches []model.MatchRecord, allow []string) []model.RefereeTeamStat {
	rows := make([]model.RefereeTeamStat, 0, 2*len(matches))
	for _, m := range matches {
		referee := CanonicalReferee(m.Referee)
		if team, ok := CanonicalTeam(m.HomeTeam, allow); ok {
			rows = append(rows, model.RefereeTeamStat{
				Referee:     referee,
				Team:        team,
				Fouls:       m.HomeFouls,
				YellowCards: m.HomeYellowCards,
				RedCards:    m.HomeRedCards,
			})
		}
		if team, ok := CanonicalTeam(m.AwayTeam, allow); ok {
			rows = append(rows, model.RefereeTeamStat{
				Referee:     referee,
				Team:        team,
				Fouls:       m.AwayFouls,
				YellowCards: m.AwayYellowCards,
				RedCards:    m.AwayRedCards,
			})
		}
	}
	return rows
}
