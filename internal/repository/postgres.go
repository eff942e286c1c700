// Package repository implements the narrow read-only Repository interface
// the simulation core consumes as an external collaborator, backed by
// Postgres. None of this package is imported by the core packages
// themselves; it is wiring for an embedding application.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baseball-sim/atbat-core/stats"
)

// Repository is the interface the simulation core's embedders depend on.
// Results are expected to be cached by the caller; repeated queries for the
// same key should return the same values within a run.
type Repository interface {
	GetBatterSeason(ctx context.Context, playerID string, year int) (*stats.BattingStatLine, error)
	GetPitcherSeason(ctx context.Context, playerID string, year int) (*stats.PitchingStatLine, error)
	GetTeamRoster(ctx context.Context, teamID string, year int) ([]string, error)
	GetTeamParkFactor(ctx context.Context, teamID string, year int) (int, error)
}

// Postgres is a pgx-backed Repository implementation.
type Postgres struct {
	pool *pgxpool.Pool
}

// New wraps an already-configured pgxpool.Pool.
func New(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// GetBatterSeason returns the batting line for player/year, or nil if no
// row exists.
func (p *Postgres) GetBatterSeason(ctx context.Context, playerID string, year int) (*stats.BattingStatLine, error) {
	const query = `
		SELECT at_bats, walks, hit_by_pitch, sacrifice_flies,
		       hits, doubles, triples, home_runs, strikeouts
		FROM batting_stats
		WHERE player_id = $1 AND season = $2
	`
	var line stats.BattingStatLine
	err := p.pool.QueryRow(ctx, query, playerID, year).Scan(
		&line.AtBats, &line.Walks, &line.HitByPitch, &line.SacrificeFlies,
		&line.Hits, &line.Doubles, &line.Triples, &line.HomeRuns, &line.Strikeouts,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: load batter season %s/%d: %w", playerID, year, err)
	}
	return &line, nil
}

// GetPitcherSeason returns the pitching line for player/year, or nil if no
// row exists. HasExtraBaseBreakdown is set when doubles_allowed and
// triples_allowed are both non-null in the source row.
func (p *Postgres) GetPitcherSeason(ctx context.Context, playerID string, year int) (*stats.PitchingStatLine, error) {
	const query = `
		SELECT batters_faced, walks_allowed, hit_by_pitch_allowed,
		       hits_allowed, doubles_allowed, triples_allowed,
		       home_runs_allowed, strikeouts_thrown
		FROM pitching_stats
		WHERE player_id = $1 AND season = $2
	`
	var line stats.PitchingStatLine
	var doubles, triples *int
	err := p.pool.QueryRow(ctx, query, playerID, year).Scan(
		&line.BattersFaced, &line.WalksAllowed, &line.HitByPitchAllowed,
		&line.HitsAllowed, &doubles, &triples,
		&line.HomeRunsAllowed, &line.StrikeoutsThrown,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: load pitcher season %s/%d: %w", playerID, year, err)
	}
	if doubles != nil && triples != nil {
		line.DoublesAllowed = *doubles
		line.TriplesAllowed = *triples
		line.HasExtraBaseBreakdown = true
	}
	return &line, nil
}

// GetTeamRoster returns the player IDs on a team's active roster for a
// given season.
func (p *Postgres) GetTeamRoster(ctx context.Context, teamID string, year int) ([]string, error) {
	const query = `
		SELECT player_id
		FROM roster_entries
		WHERE team_id = $1 AND season = $2
		ORDER BY player_id
	`
	rows, err := p.pool.Query(ctx, query, teamID, year)
	if err != nil {
		return nil, fmt.Errorf("repository: load roster %s/%d: %w", teamID, year, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repository: scan roster row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: iterate roster rows: %w", err)
	}
	return ids, nil
}

// GetTeamParkFactor returns a team's park factor for a given season,
// defaulting to 100 (neutral) when no row exists.
func (p *Postgres) GetTeamParkFactor(ctx context.Context, teamID string, year int) (int, error) {
	const query = `
		SELECT park_factor
		FROM stadiums
		WHERE team_id = $1 AND season = $2
	`
	var factor int
	err := p.pool.QueryRow(ctx, query, teamID, year).Scan(&factor)
	if errors.Is(err, pgx.ErrNoRows) {
		return 100, nil
	}
	if err != nil {
		return 0, fmt.Errorf("repository: load park factor %s/%d: %w", teamID, year, err)
	}
	return factor, nil
}
