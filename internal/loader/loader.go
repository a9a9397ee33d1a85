// Package loader reads the raw per-match CSV into a gota dataframe, prunes
// the irrelevant columns, and converts the surviving rows into MatchRecords.
package loader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/refwatch/refmetrics/internal/model"
	"github.com/refwatch/refmetrics/internal/pipeline"
)

// Column names of the raw dataset. Per-side discipline stats follow the
// HomeTeamFouls/AwayTeamFouls convention of the source CSV.
const (
	ColMatchID  = "MatchID"
	ColDate     = "Date"
	ColHomeTeam = "HomeTeam"
	ColAwayTeam = "AwayTeam"
	ColReferee  = "Referee"

	ColHomeFouls  = "HomeTeamFouls"
	ColAwayFouls  = "AwayTeamFouls"
	ColHomeYellow = "HomeTeamYellowCards"
	ColAwayYellow = "AwayTeamYellowCards"
	ColHomeRed    = "HomeTeamRedCards"
	ColAwayRed    = "AwayTeamRedCards"
)

// requiredColumns must survive pruning for the pipeline to run at all.
var requiredColumns = []string{ColMatchID, ColHomeTeam, ColAwayTeam, ColReferee}

// MissingColumnError reports an expected column absent from the input table.
// It is a configuration error (wrong file or wrong drop-list), not a crash.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("input is missing expected column %q", e.Column)
}

// Load reads a CSV file into a string-typed dataframe. Empty and NA cells
// become NaN elements so DropNA can see them; numeric parsing happens later
// in ToMatchRecords.
func Load(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{"", "NA", "NaN"}),
	)
	if df.Error() != nil {
		return df, fmt.Errorf("read %s: %w", path, df.Error())
	}
	return df, nil
}

// Prune removes the configured drop-list columns. Every listed column must
// be present; a typo'd or stale drop-list is reported, not skipped.
func Prune(df dataframe.DataFrame, drop []string) (dataframe.DataFrame, error) {
	have := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		have[name] = true
	}
	for _, name := range drop {
		if !have[name] {
			return df, &MissingColumnError{Column: name}
		}
	}
	for _, name := range requiredColumns {
		if !have[name] {
			return df, &MissingColumnError{Column: name}
		}
	}
	out := df.Drop(drop)
	if out.Error() != nil {
		return out, fmt.Errorf("drop columns: %w", out.Error())
	}
	return out, nil
}

// DropNA removes every row containing at least one missing value,
// preserving the order of the surviving rows. Idempotent.
func DropNA(df dataframe.DataFrame) dataframe.DataFrame {
	n := df.Nrow()
	bad := make([]bool, n)
	for _, name := range df.Names() {
		for i, isNaN := range df.Col(name).IsNaN() {
			if isNaN {
				bad[i] = true
			}
		}
	}
	keep := make([]int, 0, n)
	for i := range bad {
		if !bad[i] {
			keep = append(keep, i)
		}
	}
	return df.Subset(keep)
}

// Clean is Prune followed by DropNA. Dropping every row is an error, not a
// silent empty table: downstream stages would only fail obscurely on it.
func Clean(df dataframe.DataFrame, drop []string) (dataframe.DataFrame, error) {
	pruned, err := Prune(df, drop)
	if err != nil {
		return pruned, err
	}
	out := DropNA(pruned)
	if out.Nrow() == 0 {
		return out, &pipeline.EmptyResultError{Stage: "clean"}
	}
	return out, nil
}

// ToMatchRecords converts a cleaned dataframe into typed match records.
// A stat column absent from the table contributes 0 for every match.
func ToMatchRecords(df dataframe.DataFrame) ([]model.MatchRecord, error) {
	idx := make(map[string]int, df.Ncol())
	for i, name := range df.Names() {
		idx[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, &MissingColumnError{Column: name}
		}
	}

	records := df.Records()
	if len(records) > 0 {
		records = records[1:] // header
	}

	cell := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	out := make([]model.MatchRecord, 0, len(records))
	for _, row := range records {
		m := model.MatchRecord{
			MatchID:  cell(row, ColMatchID),
			Date:     cell(row, ColDate),
			HomeTeam: cell(row, ColHomeTeam),
			AwayTeam: cell(row, ColAwayTeam),
			Referee:  cell(row, ColReferee),
		}
		var err error
		if m.HomeFouls, err = parseStat(cell(row, ColHomeFouls)); err != nil {
			return nil, fmt.Errorf("match %s %s: %w", m.MatchID, ColHomeFouls, err)
		}
		if m.AwayFouls, err = parseStat(cell(row, ColAwayFouls)); err != nil {
			return nil, fmt.Errorf("match %s %s: %w", m.MatchID, ColAwayFouls, err)
		}
		if m.HomeYellowCards, err = parseStat(cell(row, ColHomeYellow)); err != nil {
			return nil, fmt.Errorf("match %s %s: %w", m.MatchID, ColHomeYellow, err)
		}
		if m.AwayYellowCards, err = parseStat(cell(row, ColAwayYellow)); err != nil {
			return nil, fmt.Errorf("match %s %s: %w", m.MatchID, ColAwayYellow, err)
		}
		if m.HomeRedCards, err = parseStat(cell(row, ColHomeRed)); err != nil {
			return nil, fmt.Errorf("match %s %s: %w", m.MatchID, ColHomeRed, err)
		}
		if m.AwayRedCards, err = parseStat(cell(row, ColAwayRed)); err != nil {
			return nil, fmt.Errorf("match %s %s: %w", m.MatchID, ColAwayRed, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// parseStat reads a non-negative count that may be formatted as "12" or "12.0".
func parseStat(s string) (int, error) {
	if s == "" || s == "NaN" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse stat %q: %w", s, err)
	}
	return int(f), nil
}

// WriteCSV persists a dataframe, creating or truncating the file.
func WriteCSV(path string, df dataframe.DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
