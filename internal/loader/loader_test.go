package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"

	"github.com/refwatch/refmetrics/internal/pipeline"
)

const rawCSV = `MatchID,Date,HomeTeam,AwayTeam,Referee,HomeTeamFouls,AwayTeamFouls,HomeTeamYellowCards,AwayTeamYellowCards,HomeTeamRedCards,AwayTeamRedCards,Attendance
m1,2023-08-12,Arsenal,Everton,M Oliver,10,12,2,1,0,0,60000
m2,2023-08-19,Chelsea,Arsenal,M Oliver,8,9,1,3,0,1,40000
m3,2023-08-26,Liverpool,Spurs,A Taylor,11,14,3,2,1,0,
`

func readTestCSV(t *testing.T, data string) dataframe.DataFrame {
	t.Helper()
	df := dataframe.ReadCSV(strings.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{"", "NA", "NaN"}),
	)
	require.NoError(t, df.Error())
	return df
}

func TestPruneDropsListedColumns(t *testing.T) {
	df := readTestCSV(t, rawCSV)

	pruned, err := Prune(df, []string{"Attendance"})
	require.NoError(t, err)
	require.NotContains(t, pruned.Names(), "Attendance")
	require.Contains(t, pruned.Names(), ColReferee)
	require.Equal(t, df.Nrow(), pruned.Nrow())
}

func TestPruneMissingDropColumn(t *testing.T) {
	df := readTestCSV(t, rawCSV)

	_, err := Prune(df, []string{"NoSuchColumn"})
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "NoSuchColumn", missing.Column)
}

func TestPruneMissingRequiredColumn(t *testing.T) {
	df := readTestCSV(t, "MatchID,Date,HomeTeam,AwayTeam\nm1,2023-08-12,Arsenal,Everton\n")

	_, err := Prune(df, nil)
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, ColReferee, missing.Column)
}

func TestDropNARemovesIncompleteRows(t *testing.T) {
	df := readTestCSV(t, rawCSV)

	got := DropNA(df)
	require.Equal(t, 2, got.Nrow()) // m3 has an empty Attendance cell

	ids := got.Col(ColMatchID).Records()
	require.Equal(t, []string{"m1", "m2"}, ids)
}

func TestDropNAIdempotent(t *testing.T) {
	df := readTestCSV(t, rawCSV)

	once := DropNA(df)
	twice := DropNA(once)
	require.Equal(t, once.Records(), twice.Records())
}

func TestCleanDeterministic(t *testing.T) {
	df := readTestCSV(t, rawCSV)

	a, err := Clean(df, []string{"Attendance"})
	require.NoError(t, err)
	b, err := Clean(readTestCSV(t, rawCSV), []string{"Attendance"})
	require.NoError(t, err)
	require.Equal(t, a.Records(), b.Records())
	require.Equal(t, 3, a.Nrow()) // dropping Attendance removes the only NaN
}

func TestCleanAllRowsDroppedIsError(t *testing.T) {
	// every data row carries a missing value, so DropNA empties the table
	df := readTestCSV(t, "MatchID,Date,HomeTeam,AwayTeam,Referee\nm1,,Arsenal,Everton,M Oliver\nm2,,Chelsea,Arsenal,M Oliver\n")

	_, err := Clean(df, nil)
	var empty *pipeline.EmptyResultError
	require.ErrorAs(t, err, &empty)
	require.Equal(t, "clean", empty.Stage)
}

func TestToMatchRecords(t *testing.T) {
	df := readTestCSV(t, rawCSV)
	cleaned, err := Clean(df, []string{"Attendance"})
	require.NoError(t, err)

	matches, err := ToMatchRecords(cleaned)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	m := matches[0]
	require.Equal(t, "m1", m.MatchID)
	require.Equal(t, "Arsenal", m.HomeTeam)
	require.Equal(t, "Everton", m.AwayTeam)
	require.Equal(t, "M Oliver", m.Referee)
	require.Equal(t, 10, m.HomeFouls)
	require.Equal(t, 12, m.AwayFouls)
	require.Equal(t, 2, m.HomeYellowCards)
	require.Equal(t, 1, m.AwayYellowCards)
	require.Equal(t, 0, m.HomeRedCards)
	require.Equal(t, 0, m.AwayRedCards)
}

func TestToMatchRecordsMissingStatColumnsDefaultZero(t *testing.T) {
	df := readTestCSV(t, "MatchID,Date,HomeTeam,AwayTeam,Referee\nm1,2023-08-12,Arsenal,Everton,M Oliver\n")

	matches, err := ToMatchRecords(df)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Zero(t, matches[0].HomeFouls)
	require.Zero(t, matches[0].AwayRedCards)
}

func TestToMatchRecordsFloatFormattedStats(t *testing.T) {
	df := readTestCSV(t, "MatchID,Date,HomeTeam,AwayTeam,Referee,HomeTeamFouls,AwayTeamFouls,HomeTeamYellowCards,AwayTeamYellowCards,HomeTeamRedCards,AwayTeamRedCards\nm1,2023-08-12,Arsenal,Everton,M Oliver,10.0,12.0,2.0,1.0,0.0,0.0\n")

	matches, err := ToMatchRecords(df)
	require.NoError(t, err)
	require.Equal(t, 10, matches[0].HomeFouls)
	require.Equal(t, 1, matches[0].AwayYellowCards)
}

func TestToMatchRecordsBadStat(t *testing.T) {
	df := readTestCSV(t, "MatchID,Date,HomeTeam,AwayTeam,Referee,HomeTeamFouls,AwayTeamFouls,HomeTeamYellowCards,AwayTeamYellowCards,HomeTeamRedCards,AwayTeamRedCards\nm1,2023-08-12,Arsenal,Everton,M Oliver,lots,12,2,1,0,0\n")

	_, err := ToMatchRecords(df)
	require.Error(t, err)
	require.Contains(t, err.Error(), "HomeTeamFouls")
}

func TestLoadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw.csv")
	require.NoError(t, os.WriteFile(in, []byte(rawCSV), 0644))

	df, err := Load(in)
	require.NoError(t, err)
	require.Equal(t, 3, df.Nrow())

	out := filepath.Join(dir, "processed.csv")
	cleaned, err := Clean(df, []string{"Attendance"})
	require.NoError(t, err)
	require.NoError(t, WriteCSV(out, cleaned))

	again, err := Load(out)
	require.NoError(t, err)
	require.Equal(t, cleaned.Records(), again.Records())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}
