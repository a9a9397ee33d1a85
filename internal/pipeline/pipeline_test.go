package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/refwatch/refmetrics/internal/config"
	"github.com/refwatch/refmetrics/internal/model"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.TeamAllowList = []string{"Arsenal", "Chelsea"}
	cfg.TopReferees = 0
	return cfg
}

func TestRunEndToEnd(t *testing.T) {
	matches := []model.MatchRecord{
		{
			MatchID: "m1", HomeTeam: "Arsenal", AwayTeam: "Everton", Referee: "M. Oliver",
			HomeFouls: 8,
		},
		{
			MatchID: "m2", HomeTeam: "Chelsea", AwayTeam: "Arsenal", Referee: "M. Oliver",
			HomeFouls: 6, AwayFouls: 9,
		},
		{
			MatchID: "m3", HomeTeam: "Everton", AwayTeam: "Spurs", Referee: "A Taylor",
			HomeFouls: 11, AwayFouls: 14,
		},
	}

	res, err := Run(zap.NewNop().Sugar(), testConfig(), matches)
	require.NoError(t, err)

	// m3 involves no allow-listed team, so A Taylor never qualifies.
	require.Equal(t, []model.RefereeActivity{
		{Referee: "M Oliver", Matches: 2},
	}, res.Referees)

	// Expansion yields 3 rows (Arsenal/8, Chelsea/6, Arsenal/9); aggregation
	// sums Arsenal to 17; reindexing 1 referee x 2 teams adds no zero rows.
	require.Equal(t, []model.RefereeTeamStat{
		{Referee: "M Oliver", Team: "Arsenal", Fouls: 17},
		{Referee: "M Oliver", Team: "Chelsea", Fouls: 6},
	}, res.Stats)

	require.Len(t, res.Scaled, 2)
	require.Equal(t, "Arsenal", res.Scaled[0].Team)
	// two rows standardize to +1/-1 on the varying column
	require.InDelta(t, 1, res.Scaled[0].Fouls, 1e-9)
	require.InDelta(t, -1, res.Scaled[1].Fouls, 1e-9)
	// card columns never vary here, so they scale to zero
	require.Zero(t, res.Scaled[0].YellowCards)
	require.Zero(t, res.Scaled[0].RedCards)
}

func TestRunRespectsTopReferees(t *testing.T) {
	matches := []model.MatchRecord{
		{MatchID: "m1", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Referee: "M Oliver"},
		{MatchID: "m2", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Referee: "M Oliver"},
		{MatchID: "m3", HomeTeam: "Chelsea", AwayTeam: "Arsenal", Referee: "A Taylor"},
	}
	cfg := testConfig()
	cfg.TopReferees = 1

	res, err := Run(zap.NewNop().Sugar(), cfg, matches)
	require.NoError(t, err)
	require.Len(t, res.Referees, 1)
	require.Equal(t, "M Oliver", res.Referees[0].Referee)
	require.Len(t, res.Stats, 2)
}

func TestRunDeterministic(t *testing.T) {
	matches := []model.MatchRecord{
		{MatchID: "m1", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Referee: "M Oliver", HomeFouls: 9, AwayFouls: 4},
		{MatchID: "m2", HomeTeam: "Chelsea", AwayTeam: "Arsenal", Referee: "A Taylor", HomeFouls: 3, AwayFouls: 8},
	}

	first, err := Run(zap.NewNop().Sugar(), testConfig(), matches)
	require.NoError(t, err)
	second, err := Run(zap.NewNop().Sugar(), testConfig(), matches)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRunEmptyStages(t *testing.T) {
	var emptyErr *EmptyResultError

	_, err := Run(zap.NewNop().Sugar(), testConfig(), nil)
	require.ErrorAs(t, err, &emptyErr)
	require.Equal(t, "load", emptyErr.Stage)

	matches := []model.MatchRecord{
		{MatchID: "m1", HomeTeam: "Everton", AwayTeam: "Spurs", Referee: "A Taylor"},
	}
	_, err = Run(zap.NewNop().Sugar(), testConfig(), matches)
	require.True(t, errors.As(err, &emptyErr))
	require.Equal(t, "allow-list filter", emptyErr.Stage)
}
