package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/refwatch/refmetrics/internal/config"
	"github.com/refwatch/refmetrics/internal/model"
	"github.com/refwatch/refmetrics/internal/pipeline"
)

func TestScaledRoundTrip(t *testing.T) {
	stats := []model.ScaledStat{
		{Referee: "Michael Oliver", Team: "Arsenal", Fouls: 1.25, YellowCards: -0.5, RedCards: 0},
		{Referee: "Michael Oliver", Team: "Chelsea", Fouls: -1.25, YellowCards: 0.5, RedCards: 0},
	}

	path := filepath.Join(t.TempDir(), "scaled.csv")
	require.NoError(t, WriteScaled(path, stats))

	got, err := ReadScaled(path)
	require.NoError(t, err)
	require.Equal(t, stats, got)
}

func TestScaledOutputBytesDeterministic(t *testing.T) {
	cfg := config.Default()
	cfg.TeamAllowList = []string{"Arsenal", "Chelsea"}
	cfg.TopReferees = 0

	matches := []model.MatchRecord{
		{MatchID: "m1", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Referee: "M. Oliver",
			HomeFouls: 9, AwayFouls: 4, HomeYellowCards: 2},
		{MatchID: "m2", HomeTeam: "Chelsea", AwayTeam: "Arsenal", Referee: "A Taylor",
			HomeFouls: 3, AwayFouls: 8, AwayRedCards: 1},
	}

	dir := t.TempDir()
	paths := [2]string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}
	for i, path := range paths {
		res, err := pipeline.Run(zap.NewNop().Sugar(), cfg, matches)
		require.NoError(t, err, "run %d", i)
		require.NoError(t, WriteScaled(path, res.Scaled))
	}

	a, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	b, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestReadScaledMissingFile(t *testing.T) {
	_, err := ReadScaled(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
