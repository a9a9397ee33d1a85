package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/refwatch/refmetrics/internal/cluster"
	"github.com/refwatch/refmetrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintRefereeTable prints one row per retained referee: rank, distinct
// matches, and discipline totals summed over the allow-listed teams.
func PrintRefereeTable(w io.Writer, referees []model.RefereeActivity, stats []model.RefereeTeamStat) {
	totals := make(map[string]*model.RefereeTeamStat, len(referees))
	for _, s := range stats {
		acc := totals[s.Referee]
		if acc == nil {
			acc = &model.RefereeTeamStat{Referee: s.Referee}
			totals[s.Referee] = acc
		}
		acc.Fouls += s.Fouls
		acc.YellowCards += s.YellowCards
		acc.RedCards += s.RedCards
	}

	table := newTable(w)
	table.Header("#", "REFEREE", "MATCHES", "FOULS", "YELLOW", "RED", "FOULS/MATCH")
	for i, r := range referees {
		t := totals[r.Referee]
		if t == nil {
			t = &model.RefereeTeamStat{Referee: r.Referee}
		}
		table.Append(
			strconv.Itoa(i+1),
			r.Referee,
			strconv.Itoa(r.Matches),
			strconv.Itoa(t.Fouls),
			strconv.Itoa(t.YellowCards),
			strconv.Itoa(t.RedCards),
			fmt.Sprintf("%.1f", t.FoulsPerMatch(r.Matches)),
		)
	}
	table.Render()
}

// PrintStatsTable prints aggregated (Referee, Team) rows. If focusReferee is
// non-empty, that referee's rows are marked with ">".
func PrintStatsTable(w io.Writer, stats []model.RefereeTeamStat, focusReferee string) {
	table := newTable(w)
	table.Header(" ", "REFEREE", "TEAM", "FOULS", "YELLOW", "RED", "CARDS")
	for _, s := range stats {
		marker := " "
		if focusReferee != "" && s.Referee == focusReferee {
			marker = ">"
		}
		table.Append(
			marker,
			s.Referee,
			s.Team,
			strconv.Itoa(s.Fouls),
			strconv.Itoa(s.YellowCards),
			strconv.Itoa(s.RedCards),
			strconv.Itoa(s.Cards()),
		)
	}
	table.Render()
}

// PrintTrendTable prints one referee's matches chronologically with the
// total discipline counts for each.
func PrintTrendTable(w io.Writer, matches []model.MatchRecord) {
	table := newTable(w)
	table.Header("DATE", "HOME", "AWAY", "FOULS", "YELLOW", "RED")
	for _, m := range matches {
		table.Append(
			m.Date,
			m.HomeTeam,
			m.AwayTeam,
			strconv.Itoa(m.HomeFouls+m.AwayFouls),
			strconv.Itoa(m.HomeYellowCards+m.AwayYellowCards),
			strconv.Itoa(m.HomeRedCards+m.AwayRedCards),
		)
	}
	table.Render()
}

// PrintClusterSummary prints one row per cluster label: member count,
// distinct referees and teams, and a short membership sample.
func PrintClusterSummary(w io.Writer, assignments []model.ClusterAssignment) {
	table := newTable(w)
	table.Header("CLUSTER", "ROWS", "REFEREES", "TEAMS", "SAMPLE")

	for _, label := range cluster.Labels(assignments) {
		refs := make(map[string]struct{})
		teams := make(map[string]struct{})
		var members []string
		for _, a := range assignments {
			if a.Cluster != label {
				continue
			}
			refs[a.Referee] = struct{}{}
			teams[a.Team] = struct{}{}
			members = append(members, fmt.Sprintf("%s/%s", a.Referee, a.Team))
		}
		sort.Strings(members)
		sample := strings.Join(members, ", ")
		if len(members) > 3 {
			sample = strings.Join(members[:3], ", ") + ", …"
		}

		name := strconv.Itoa(label)
		if label == model.NoiseCluster {
			name = "noise"
		}
		table.Append(name, strconv.Itoa(len(members)), strconv.Itoa(len(refs)), strconv.Itoa(len(teams)), sample)
	}
	table.Render()
}
