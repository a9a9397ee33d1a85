package pipeline

import (
	"sort"

	"github.com/refwatch/refmetrics/internal/model"
)

// SelectTopReferees ranks canonical referee names by distinct MatchID count
// over the given (already allow-list-filtered) matches and returns the top K
// in rank order. Ties break by referee name ascending so the retained set is
// deterministic. topK <= 0 retains every referee seen.
func SelectTopReferees(matches []model.MatchRecord, topK int) []model.RefereeActivity {
	seen := make(map[string]map[string]struct{})
	for _, m := range matches {
		ref := CanonicalReferee(m.Referee)
		if seen[ref] == nil {
			seen[ref] = make(map[string]struct{})
		}
		seen[ref][m.MatchID] = struct{}{}
	}

	ranked := make([]model.RefereeActivity, 0, len(seen))
	for ref, ids := range seen {
		ranked = append(ranked, model.RefereeActivity{Referee: ref, Matches: len(ids)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Matches != ranked[j].Matches {
			return ranked[i].Matches > ranked[j].Matches
		}
		return ranked[i].Referee < ranked[j].Referee
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// FilterReferees keeps only matches officiated by one of the retained
// referees (canonical-name comparison).
func FilterReferees(matches []model.MatchRecord, retained []model.RefereeActivity) []model.MatchRecord {
	keep := make(map[string]struct{}, len(retained))
	for _, r := range retained {
		keep[r.Referee] = struct{}{}
	}
	out := make([]model.MatchRecord, 0, len(matches))
	for _, m := range matches {
		if _, ok := keep[CanonicalReferee(m.Referee)]; ok {
			out = append(out, m)
		}
	}
	return out
}

type refTeamKey struct {
	referee string
	team    string
}

// Aggregate groups expanded rows by (Referee, Team) and sums the numeric
// fields. Rows come back sorted by referee then team; Reindex imposes the
// final presentation order.
func Aggregate(rows []model.RefereeTeamStat) []model.RefereeTeamStat {
	sums := make(map[refTeamKey]*model.RefereeTeamStat)
	for _, r := range rows {
		k := refTeamKey{r.Referee, r.Team}
		acc := sums[k]
		if acc == nil {
			acc = &model.RefereeTeamStat{Referee: r.Referee, Team: r.Team}
			sums[k] = acc
		}
		acc.Fouls += r.Fouls
		acc.YellowCards += r.YellowCards
		acc.RedCards += r.RedCards
	}

	out := make([]model.RefereeTeamStat, 0, len(sums))
	for _, acc := range sums {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Referee != out[j].Referee {
			return out[i].Referee < out[j].Referee
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// Reindex completes the aggregated table over the Cartesian product of the
// retained referees and the allow-list: exactly one row per pair, referees in
// rank order, teams in allow-list order, missing pairs zero-filled. Output
// row count is always len(referees) × len(teams).
func Reindex(aggregated []model.RefereeTeamStat, referees []model.RefereeActivity, teams []string) []model.RefereeTeamStat {
	byKey := make(map[refTeamKey]model.RefereeTeamStat, len(aggregated))
	for _, s := range aggregated {
		byKey[refTeamKey{s.Referee, s.Team}] = s
	}

	out := make([]model.RefereeTeamStat, 0, len(referees)*len(teams))
	for _, ref := range referees {
		for _, team := range teams {
			if s, ok := byKey[refTeamKey{ref.Referee, team}]; ok {
				out = append(out, s)
				continue
			}
			out = append(out, model.RefereeTeamStat{Referee: ref.Referee, Team: team})
		}
	}
	return out
}
