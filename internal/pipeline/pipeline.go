package pipeline

import (
	"go.uber.org/zap"

	"github.com/refwatch/refmetrics/internal/config"
	"github.com/refwatch/refmetrics/internal/model"
)

// Result carries everything the prepare stage produces in one pass.
type Result struct {
	// Referees retained for the run, in rank order.
	Referees []model.RefereeActivity
	// Stats is the reindexed pre-scale table, one row per (referee, team)
	// pair in the Cartesian product.
	Stats []model.RefereeTeamStat
	// Scaled is Stats after column-wise standardization, same row order.
	Scaled []model.ScaledStat
}

// Run executes the full prepare pipeline over cleaned match records, from
// allow-list filtering through standardization. Stages producing zero rows
// abort the run with an EmptyResultError naming the stage.
func Run(log *zap.SugaredLogger, cfg config.Config, matches []model.MatchRecord) (*Result, error) {
	if len(matches) == 0 {
		return nil, &EmptyResultError{Stage: "load"}
	}
	log.Infow("pipeline start", "matches", len(matches), "teams", len(cfg.TeamAllowList))

	filtered := FilterAllowList(matches, cfg.TeamAllowList)
	log.Infow("allow-list filter", "in", len(matches), "out", len(filtered))
	if len(filtered) == 0 {
		return nil, &EmptyResultError{Stage: "allow-list filter"}
	}

	referees := SelectTopReferees(filtered, cfg.TopReferees)
	log.Infow("referee selection", "retained", len(referees), "top", cfg.TopReferees)
	if len(referees) == 0 {
		return nil, &EmptyResultError{Stage: "referee selection"}
	}

	retained := FilterReferees(filtered, referees)
	expanded := Expand(retained, cfg.TeamAllowList)
	log.Infow("expansion", "matches", len(retained), "rows", len(expanded))
	if len(expanded) == 0 {
		return nil, &EmptyResultError{Stage: "expansion"}
	}

	aggregated := Aggregate(expanded)
	reindexed := Reindex(aggregated, referees, cfg.TeamAllowList)
	log.Infow("aggregation", "groups", len(aggregated), "reindexed", len(reindexed))

	scaled := Standardize(reindexed)

	return &Result{
		Referees: referees,
		Stats:    reindexed,
		Scaled:   scaled,
	}, nil
}
