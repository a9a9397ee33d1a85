package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every knob the original scripts hard-coded as literals:
// file locations, the pruned column list, the team allow-list, the referee
// retention count, and the DBSCAN parameters. All fields can be set from a
// YAML file and overridden by flags.
type Config struct {
	InputPath     string `yaml:"input_path"`
	ProcessedPath string `yaml:"processed_path"`
	OutputPath    string `yaml:"output_path"`
	PlotPath      string `yaml:"plot_path"`

	// DropColumns are removed from the raw table before anything else.
	DropColumns []string `yaml:"drop_columns"`

	// TeamAllowList is the ordered set of teams retained for analysis.
	// Reindexed output rows follow this order.
	TeamAllowList []string `yaml:"team_allow_list"`

	// TopReferees ranks referees by distinct-match count and keeps the
	// top N. 0 keeps every referee seen.
	TopReferees int `yaml:"top_referees"`

	Eps        float64 `yaml:"eps"`
	MinSamples int     `yaml:"min_samples"`
}

// Default returns the configuration matching the original analysis:
// top-6 clubs, top-30 referees, DBSCAN eps=0.5 minSamples=5.
func Default() Config {
	return Config{
		InputPath:     "PremierLeague.csv",
		ProcessedPath: "processed.csv",
		OutputPath:    "dbscan_ready.csv",
		PlotPath:      "clusters.html",
		DropColumns: []string{
			"Time",
			"HalfTimeHomeTeamGoals", "HalfTimeAwayTeamGoals", "HalfTimeResult",
			"HomeTeamShots", "AwayTeamShots",
			"HomeTeamShotsOnTarget", "AwayTeamShotsOnTarget",
			"B365HomeTeam", "B365AwayTeam", "B365Draw",
			"B365Over2.5Goals", "B365Under2.5Goals",
			"MarketMaxHomeTeam", "MarketMaxDraw", "MarketMaxAwayTeam",
			"MarketAvgHomeTeam", "MarketAvgDraw", "MarketAvgAwayTeam",
			"MarketMaxOver2.5Goals", "MarketMaxUnder2.5Goals",
			"MarketAvgOver2.5Goals", "MarketAvgUnder2.5Goals",
			"HomeTeamPoints", "AwayTeamPoints",
		},
		TeamAllowList: []string{
			"Arsenal", "Chelsea", "Liverpool", "Man City", "Man United", "Tottenham",
		},
		TopReferees: 30,
		Eps:         0.5,
		MinSamples:  5,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations no pipeline stage can work with.
func (c Config) Validate() error {
	if len(c.TeamAllowList) == 0 {
		return fmt.Errorf("team_allow_list must not be empty")
	}
	if c.TopReferees < 0 {
		return fmt.Errorf("top_referees must be >= 0, got %d", c.TopReferees)
	}
	if c.Eps <= 0 {
		return fmt.Errorf("eps must be > 0, got %g", c.Eps)
	}
	if c.MinSamples < 1 {
		return fmt.Errorf("min_samples must be >= 1, got %d", c.MinSamples)
	}
	return nil
}
