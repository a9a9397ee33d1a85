package pipeline

import (
	"gonum.org/v1/gonum/stat"

	"github.com/refwatch/refmetrics/internal/model"
)

// Standardize replaces each numeric column with its z-score over the whole
// table: (value - mean) / population standard deviation, the same convention
// as the scaler the original analysis used. A zero-variance column scales to
// all zeros rather than propagating NaN or Inf.
func Standardize(stats []model.RefereeTeamStat) []model.ScaledStat {
	n := len(stats)
	cols := [3][]float64{}
	for i := range cols {
		cols[i] = make([]float64, n)
	}
	for i, s := range stats {
		cols[0][i] = float64(s.Fouls)
		cols[1][i] = float64(s.YellowCards)
		cols[2][i] = float64(s.RedCards)
	}
	for _, col := range cols {
		scaleColumn(col)
	}

	out := make([]model.ScaledStat, n)
	for i, s := range stats {
		out[i] = model.ScaledStat{
			Referee:     s.Referee,
			Team:        s.Team,
			Fouls:       cols[0][i],
			YellowCards: cols[1][i],
			RedCards:    cols[2][i],
		}
	}
	return out
}

// scaleColumn standardizes one column in place. Degenerate columns
// (no rows, or zero variance) become all zeros.
func scaleColumn(col []float64) {
	if len(col) == 0 {
		return
	}
	mean := stat.Mean(col, nil)
	std := stat.PopStdDev(col, nil)
	for i := range col {
		if std == 0 {
			col[i] = 0
			continue
		}
		col[i] = (col[i] - mean) / std
	}
}
