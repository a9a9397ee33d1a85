// Package plot renders the clustered (Referee, Team) table as an interactive
// HTML scatter chart: PCA coordinates on the axes, one series (color) per
// cluster, marker symbol per team, identity and stats in the tooltip.
package plot

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/refwatch/refmetrics/internal/cluster"
	"github.com/refwatch/refmetrics/internal/model"
)

// teamSymbols are cycled per allow-list team so every team keeps a stable
// marker shape across clusters.
var teamSymbols = []string{"circle", "rect", "triangle", "diamond", "roundRect", "pin", "arrow"}

// Scatter writes an HTML page with the cluster scatter plot to path.
func Scatter(path string, assignments []model.ClusterAssignment, teams []string) error {
	if len(assignments) == 0 {
		return fmt.Errorf("nothing to plot")
	}

	symbolFor := make(map[string]string, len(teams))
	for i, team := range teams {
		symbolFor[team] = teamSymbols[i%len(teamSymbols)]
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Referee/Team DBSCAN clusters",
			Width:     "1200px",
			Height:    "720px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "DBSCAN clustering on (Referee, Team) discipline stats",
			Subtitle: "axes: first two principal components (visualization only)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "PC1", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "PC2", Type: "value"}),
	)

	for _, label := range cluster.Labels(assignments) {
		var points []opts.ScatterData
		for _, a := range assignments {
			if a.Cluster != label {
				continue
			}
			symbol := symbolFor[a.Team]
			if symbol == "" {
				symbol = "circle"
			}
			points = append(points, opts.ScatterData{
				Name: fmt.Sprintf("%s / %s (fouls %.2f, yellow %.2f, red %.2f)",
					a.Referee, a.Team, a.Fouls, a.YellowCards, a.RedCards),
				Value:      []interface{}{a.PC1, a.PC2},
				Symbol:     symbol,
				SymbolSize: 12,
			})
		}
		sc.AddSeries(seriesName(label), points)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := sc.Render(f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

func seriesName(label int) string {
	if label == model.NoiseCluster {
		return "noise"
	}
	return fmt.Sprintf("cluster %d", label)
}
