package storage

import (
	"database/sql"
	"fmt"

	"github.com/refwatch/refmetrics/internal/model"
)

// InsertMatches bulk-inserts cleaned match rows in a transaction.
// Uses INSERT OR REPLACE so re-running clean on the same file is idempotent.
func (db *DB) InsertMatches(matches []model.MatchRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO matches(
			match_id, match_date, home_team, away_team, referee,
			home_fouls, away_fouls,
			home_yellow_cards, away_yellow_cards,
			home_red_cards, away_red_cards
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range matches {
		_, err = stmt.Exec(
			m.MatchID, m.Date, m.HomeTeam, m.AwayTeam, m.Referee,
			m.HomeFouls, m.AwayFouls,
			m.HomeYellowCards, m.AwayYellowCards,
			m.HomeRedCards, m.AwayRedCards,
		)
		if err != nil {
			return fmt.Errorf("insert match %s: %w", m.MatchID, err)
		}
	}
	return tx.Commit()
}

// MatchCount returns the number of stored matches.
func (db *DB) MatchCount() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches").Scan(&n)
	return n, err
}

// DateRange returns the earliest and latest stored match dates
// (empty strings when no matches are stored).
func (db *DB) DateRange() (first, last string, err error) {
	err = db.conn.QueryRow(
		"SELECT COALESCE(MIN(match_date), ''), COALESCE(MAX(match_date), '') FROM matches").
		Scan(&first, &last)
	return
}

// TeamAppearance is a team with its total number of stored matches
// (home plus away).
type TeamAppearance struct {
	Team    string
	Matches int
}

// TeamAppearances returns appearance counts per team across both sides,
// most active first, ties by name.
func (db *DB) TeamAppearances() ([]TeamAppearance, error) {
	rows, err := db.conn.Query(`
		SELECT team, COUNT(1) AS n FROM (
			SELECT home_team AS team FROM matches
			UNION ALL
			SELECT away_team AS team FROM matches
		) GROUP BY team ORDER BY n DESC, team ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TeamAppearance
	for rows.Next() {
		var t TeamAppearance
		if err := rows.Scan(&t.Team, &t.Matches); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ReplaceRefereeStats replaces the retained referee set and their
// (referee, team) stats in one transaction. stats and scaled must be
// parallel slices in the same row order, as produced by the pipeline.
func (db *DB) ReplaceRefereeStats(referees []model.RefereeActivity, stats []model.RefereeTeamStat, scaled []model.ScaledStat) error {
	if len(stats) != len(scaled) {
		return fmt.Errorf("stats/scaled length mismatch: %d vs %d", len(stats), len(scaled))
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM referees"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM referee_team_stats"); err != nil {
		return err
	}

	refStmt, err := tx.Prepare("INSERT INTO referees(referee, ref_rank, match_count) VALUES (?,?,?)")
	if err != nil {
		return err
	}
	defer refStmt.Close()
	for i, r := range referees {
		if _, err := refStmt.Exec(r.Referee, i+1, r.Matches); err != nil {
			return fmt.Errorf("insert referee %s: %w", r.Referee, err)
		}
	}

	statStmt, err := tx.Prepare(`
		INSERT INTO referee_team_stats(
			referee, team, fouls, yellow_cards, red_cards,
			fouls_scaled, yellow_cards_scaled, red_cards_scaled
		) VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer statStmt.Close()
	for i, s := range stats {
		z := scaled[i]
		_, err := statStmt.Exec(
			s.Referee, s.Team, s.Fouls, s.YellowCards, s.RedCards,
			z.Fouls, z.YellowCards, z.RedCards,
		)
		if err != nil {
			return fmt.Errorf("insert stats %s/%s: %w", s.Referee, s.Team, err)
		}
	}
	return tx.Commit()
}

// ListReferees returns the retained referees in rank order.
func (db *DB) ListReferees() ([]model.RefereeActivity, error) {
	rows, err := db.conn.Query(
		"SELECT referee, match_count FROM referees ORDER BY ref_rank ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RefereeActivity
	for rows.Next() {
		var r model.RefereeActivity
		if err := rows.Scan(&r.Referee, &r.Matches); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRefereeByPrefix finds the first retained referee whose canonical name
// starts with the given prefix (case-insensitive). Returns "" when none match.
func (db *DB) GetRefereeByPrefix(prefix string) (string, error) {
	var name string
	err := db.conn.QueryRow(`
		SELECT referee FROM referees
		WHERE referee LIKE ? COLLATE NOCASE
		ORDER BY ref_rank ASC LIMIT 1`, prefix+"%").Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// GetRefereeTeamStats returns one referee's aggregated rows, teams in
// stored order.
func (db *DB) GetRefereeTeamStats(referee string) ([]model.RefereeTeamStat, error) {
	rows, err := db.conn.Query(`
		SELECT referee, team, fouls, yellow_cards, red_cards
		FROM referee_team_stats WHERE referee = ? ORDER BY rowid`, referee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RefereeTeamStat
	for rows.Next() {
		var s model.RefereeTeamStat
		if err := rows.Scan(&s.Referee, &s.Team, &s.Fouls, &s.YellowCards, &s.RedCards); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AllRefereeTeamStats returns every aggregated row in stored (rank-major)
// order.
func (db *DB) AllRefereeTeamStats() ([]model.RefereeTeamStat, error) {
	rows, err := db.conn.Query(`
		SELECT referee, team, fouls, yellow_cards, red_cards
		FROM referee_team_stats ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RefereeTeamStat
	for rows.Next() {
		var s model.RefereeTeamStat
		if err := rows.Scan(&s.Referee, &s.Team, &s.Fouls, &s.YellowCards, &s.RedCards); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ReplaceClusterAssignments replaces all stored cluster assignments.
func (db *DB) ReplaceClusterAssignments(assignments []model.ClusterAssignment) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cluster_assignments"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO cluster_assignments(referee, team, cluster, pc1, pc2)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range assignments {
		if _, err := stmt.Exec(a.Referee, a.Team, a.Cluster, a.PC1, a.PC2); err != nil {
			return fmt.Errorf("insert assignment %s/%s: %w", a.Referee, a.Team, err)
		}
	}
	return tx.Commit()
}

// GetClusterAssignments returns the stored cluster labels for one referee,
// keyed by team. Empty map when clustering has not been run.
func (db *DB) GetClusterAssignments(referee string) (map[string]int, error) {
	rows, err := db.conn.Query(
		"SELECT team, cluster FROM cluster_assignments WHERE referee = ?", referee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var team string
		var label int
		if err := rows.Scan(&team, &label); err != nil {
			return nil, err
		}
		out[team] = label
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns column names plus rows with
// every value rendered as a string. NULLs come back as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprintf("%v", x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

// AllMatches returns every stored match in chronological order.
func (db *DB) AllMatches() ([]model.MatchRecord, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, match_date, home_team, away_team, referee,
			home_fouls, away_fouls,
			home_yellow_cards, away_yellow_cards,
			home_red_cards, away_red_cards
		FROM matches ORDER BY match_date ASC, match_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchRecord
	for rows.Next() {
		var m model.MatchRecord
		err := rows.Scan(
			&m.MatchID, &m.Date, &m.HomeTeam, &m.AwayTeam, &m.Referee,
			&m.HomeFouls, &m.AwayFouls,
			&m.HomeYellowCards, &m.AwayYellowCards,
			&m.HomeRedCards, &m.AwayRedCards,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
