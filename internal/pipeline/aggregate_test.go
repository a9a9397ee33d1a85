package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/refwatch/refmetrics/internal/model"
)

func TestSelectTopRefereesRanksByDistinctMatches(t *testing.T) {
	matches := []model.MatchRecord{
		{MatchID: "m1", Referee: "M Oliver"},
		{MatchID: "m2", Referee: "M Oliver"},
		{MatchID: "m2", Referee: "M Oliver"}, // duplicate row, same match
		{MatchID: "m3", Referee: "A Taylor"},
		{MatchID: "m4", Referee: "P Tierney"},
		{MatchID: "m5", Referee: "P Tierney"},
	}

	got := SelectTopReferees(matches, 2)
	require.Equal(t, []model.RefereeActivity{
		{Referee: "M Oliver", Matches: 2},
		{Referee: "P Tierney", Matches: 2},
	}, got)
}

func TestSelectTopRefereesTieBreaksByName(t *testing.T) {
	matches := []model.MatchRecord{
		{MatchID: "m1", Referee: "Z Last"},
		{MatchID: "m2", Referee: "A First"},
	}

	got := SelectTopReferees(matches, 1)
	require.Equal(t, "A First", got[0].Referee)
}

func TestSelectTopRefereesZeroKeepsAll(t *testing.T) {
	matches := []model.MatchRecord{
		{MatchID: "m1", Referee: "M Oliver"},
		{MatchID: "m2", Referee: "A Taylor"},
	}
	require.Len(t, SelectTopReferees(matches, 0), 2)
}

func TestFilterReferees(t *testing.T) {
	matches := []model.MatchRecord{
		{MatchID: "m1", Referee: "M. Oliver"},
		{MatchID: "m2", Referee: "A Taylor"},
	}
	retained := []model.RefereeActivity{{Referee: "M Oliver", Matches: 1}}

	got := FilterReferees(matches, retained)
	require.Len(t, got, 1)
	require.Equal(t, "m1", got[0].MatchID)
}

func TestAggregateSumsByRefereeTeam(t *testing.T) {
	rows := []model.RefereeTeamStat{
		{Referee: "M Oliver", Team: "Arsenal", Fouls: 10, YellowCards: 2},
		{Referee: "M Oliver", Team: "Arsenal", Fouls: 7, YellowCards: 3, RedCards: 1},
		{Referee: "M Oliver", Team: "Chelsea", Fouls: 5, YellowCards: 1},
	}

	got := Aggregate(rows)
	require.Equal(t, []model.RefereeTeamStat{
		{Referee: "M Oliver", Team: "Arsenal", Fouls: 17, YellowCards: 5, RedCards: 1},
		{Referee: "M Oliver", Team: "Chelsea", Fouls: 5, YellowCards: 1},
	}, got)
}

func TestAggregateDeterministicOrder(t *testing.T) {
	rows := []model.RefereeTeamStat{
		{Referee: "Z Ref", Team: "Chelsea", Fouls: 1},
		{Referee: "A Ref", Team: "Arsenal", Fouls: 2},
		{Referee: "A Ref", Team: "Chelsea", Fouls: 3},
	}
	for i := 0; i < 5; i++ {
		got := Aggregate(rows)
		require.Equal(t, "A Ref", got[0].Referee)
		require.Equal(t, "Arsenal", got[0].Team)
		require.Equal(t, "Z Ref", got[2].Referee)
	}
}

func TestReindexCartesianZeroFill(t *testing.T) {
	aggregated := []model.RefereeTeamStat{
		{Referee: "M Oliver", Team: "Arsenal", Fouls: 17, YellowCards: 5, RedCards: 1},
		{Referee: "M Oliver", Team: "Chelsea", Fouls: 5, YellowCards: 1},
	}
	referees := []model.RefereeActivity{
		{Referee: "M Oliver", Matches: 2},
		{Referee: "A Taylor", Matches: 1},
	}
	teams := []string{"Arsenal", "Chelsea", "Liverpool"}

	got := Reindex(aggregated, referees, teams)
	require.Len(t, got, len(referees)*len(teams))

	// rank-major order: all of Oliver's teams first, in allow-list order
	require.Equal(t, "M Oliver", got[0].Referee)
	require.Equal(t, "Arsenal", got[0].Team)
	require.Equal(t, 17, got[0].Fouls)
	require.Equal(t, "Liverpool", got[2].Team)
	require.Zero(t, got[2].Fouls) // pair never seen, zero-filled

	for _, row := range got[3:] {
		require.Equal(t, "A Taylor", row.Referee)
		require.Zero(t, row.Fouls)
		require.Zero(t, row.YellowCards)
		require.Zero(t, row.RedCards)
	}
}
