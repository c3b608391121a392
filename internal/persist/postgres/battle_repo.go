package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// BattleRecord is one completed battle's persisted outcome, grounded on
// internal/repository/postgres/game_repo.go's GameRepo.
type BattleRecord struct {
	ID              string
	GeneralA        string
	GeneralB        string
	ScenarioName    string
	Seed            int64
	Ticks           int
	Winner          string
	TeamASurvivors  int
	TeamBSurvivors  int
	TeamACasualties int
	TeamBCasualties int
	CreatedAt       time.Time
}

// BattleRepo handles the battles table's CRUD operations.
type BattleRepo struct {
	db *sql.DB
}

// NewBattleRepo constructs a BattleRepo over an open connection pool.
func NewBattleRepo(db *sql.DB) *BattleRepo {
	return &BattleRepo{db: db}
}

// Create inserts one completed battle's outcome and returns its assigned id.
func (r *BattleRepo) Create(ctx context.Context, b BattleRecord) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO battles (general_a, general_b, scenario_name, seed, ticks, winner,
		                       team_a_survivors, team_b_survivors, team_a_casualties, team_b_casualties)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		b.GeneralA, b.GeneralB, b.ScenarioName, b.Seed, b.Ticks, b.Winner,
		b.TeamASurvivors, b.TeamBSurvivors, b.TeamACasualties, b.TeamBCasualties,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create battle: %w", err)
	}
	return id, nil
}

// FindByID returns a battle record by id, or nil if not found.
func (r *BattleRepo) FindByID(ctx context.Context, id string) (*BattleRecord, error) {
	var b BattleRecord
	b.ID = id
	err := r.db.QueryRowContext(ctx,
		`SELECT general_a, general_b, scenario_name, seed, ticks, winner,
		        team_a_survivors, team_b_survivors, team_a_casualties, team_b_casualties, created_at
		 FROM battles WHERE id = $1`, id,
	).Scan(&b.GeneralA, &b.GeneralB, &b.ScenarioName, &b.Seed, &b.Ticks, &b.Winner,
		&b.TeamASurvivors, &b.TeamBSurvivors, &b.TeamACasualties, &b.TeamBCasualties, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find battle: %w", err)
	}
	return &b, nil
}

// ListRecent returns the most recent battles, most recent first.
func (r *BattleRepo) ListRecent(ctx context.Context, limit int) ([]BattleRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, general_a, general_b, scenario_name, seed, ticks, winner,
		        team_a_survivors, team_b_survivors, team_a_casualties, team_b_casualties, created_at
		 FROM battles ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list battles: %w", err)
	}
	defer rows.Close()

	var battles []BattleRecord
	for rows.Next() {
		var b BattleRecord
		if err := rows.Scan(&b.ID, &b.GeneralA, &b.GeneralB, &b.ScenarioName, &b.Seed, &b.Ticks, &b.Winner,
			&b.TeamASurvivors, &b.TeamBSurvivors, &b.TeamACasualties, &b.TeamBCasualties, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan battle: %w", err)
		}
		battles = append(battles, b)
	}
	return battles, rows.Err()
}
