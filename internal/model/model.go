package model

// MatchRecord is one cleaned row of the raw per-match dataset.
// Column naming follows the dataset itself: per-side discipline stats are
// HomeTeamFouls/AwayTeamFouls, HomeTeamYellowCards/..., HomeTeamRedCards/...
type MatchRecord struct {
	MatchID  string
	Date     string
	HomeTeam string
	AwayTeam string
	Referee  string

	HomeFouls       int
	AwayFouls       int
	HomeYellowCards int
	AwayYellowCards int
	HomeRedCards    int
	AwayRedCards    int
}

// RefereeTeamStat is one (Referee, Team) row: either a single expanded side
// of a match, or the field-wise sum over all sides in the group.
// Referee names are canonical (see pipeline.CanonicalReferee); Team is the
// allow-list spelling.
type RefereeTeamStat struct {
	Referee     string
	Team        string
	Fouls       int
	YellowCards int
	RedCards    int
}

// ScaledStat is a RefereeTeamStat after column-wise standardization
// (zero mean, unit variance over the retained table).
type ScaledStat struct {
	Referee     string
	Team        string
	Fouls       float64
	YellowCards float64
	RedCards    float64
}

// NoiseCluster is the label DBSCAN assigns to rows that belong to no cluster.
const NoiseCluster = -1

// ClusterAssignment pairs a (Referee, Team) row with its DBSCAN cluster label
// and a 2-D PCA projection used only for plotting.
type ClusterAssignment struct {
	Referee string
	Team    string
	Cluster int
	PC1     float64
	PC2     float64

	// Scaled stats carried along as hover metadata.
	Fouls       float64
	YellowCards float64
	RedCards    float64
}

func (a ClusterAssignment) IsNoise() bool { return a.Cluster == NoiseCluster }

// RefereeActivity is a canonical referee name with its distinct-match count
// over the allow-list-involving matches. Used to rank referees.
type RefereeActivity struct {
	Referee string
	Matches int
}

func (s *RefereeTeamStat) Cards() int { return s.YellowCards + s.RedCards }

// FoulsPerMatch returns fouls normalized by a match count, 0 when unknown.
func (s *RefereeTeamStat) FoulsPerMatch(matches int) float64 {
	if matches == 0 {
		return 0
	}
	return float64(s.Fouls) / float64(matches)
}
