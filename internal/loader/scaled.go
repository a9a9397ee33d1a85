package loader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/refwatch/refmetrics/internal/model"
)

// scaledHeader is the column contract of the clustering-ready CSV.
var scaledHeader = []string{"Referee", "Team", "Fouls", "YellowCards", "RedCards"}

// WriteScaled writes the scaled (Referee, Team) table in row order.
func WriteScaled(path string, stats []model.ScaledStat) error {
	records := make([][]string, 0, len(stats)+1)
	records = append(records, scaledHeader)
	for _, s := range stats {
		records = append(records, []string{
			s.Referee,
			s.Team,
			formatFloat(s.Fouls),
			formatFloat(s.YellowCards),
			formatFloat(s.RedCards),
		})
	}
	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return fmt.Errorf("build scaled table: %w", df.Error())
	}
	return WriteCSV(path, df)
}

// ReadScaled loads a clustering-ready CSV previously produced by WriteScaled
// (or any file honoring the same header).
func ReadScaled(path string) ([]model.ScaledStat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return nil, fmt.Errorf("read %s: %w", path, df.Error())
	}

	idx := make(map[string]int, df.Ncol())
	for i, name := range df.Names() {
		idx[name] = i
	}
	for _, name := range scaledHeader {
		if _, ok := idx[name]; !ok {
			return nil, &MissingColumnError{Column: name}
		}
	}

	records := df.Records()[1:]
	out := make([]model.ScaledStat, 0, len(records))
	for _, row := range records {
		s := model.ScaledStat{
			Referee: row[idx["Referee"]],
			Team:    row[idx["Team"]],
		}
		if s.Fouls, err = strconv.ParseFloat(row[idx["Fouls"]], 64); err != nil {
			return nil, fmt.Errorf("%s: parse Fouls for %s/%s: %w", path, s.Referee, s.Team, err)
		}
		if s.YellowCards, err = strconv.ParseFloat(row[idx["YellowCards"]], 64); err != nil {
			return nil, fmt.Errorf("%s: parse YellowCards for %s/%s: %w", path, s.Referee, s.Team, err)
		}
		if s.RedCards, err = strconv.ParseFloat(row[idx["RedCards"]], 64); err != nil {
			return nil, fmt.Errorf("%s: parse RedCards for %s/%s: %w", path, s.Referee, s.Team, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
