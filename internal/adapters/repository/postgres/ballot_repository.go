package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
)

type ballotRepository struct {
	db *sql.DB
}

func NewBallotRepository(db *sql.DB) ports.BallotRepository {
	return &ballotRepository{
		db: db,
	}
}

func (r *ballotRepository) Load(ctx context.Context) (*domain.StoreState, error) {
	query := `
		SELECT id, ts, voter_name, voter_phone, choices, note
		FROM ballots
		ORDER BY seq
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer rows.Close()

	state := &domain.StoreState{}
	for rows.Next() {
		var b domain.Ballot
		var choices []byte
		if err := rows.Scan(&b.ID, &b.Timestamp, &b.Voter.Name, &b.Voter.Phone, &choices, &b.Note); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		if err := json.Unmarshal(choices, &b.Choices); err != nil {
			return nil, fmt.Errorf("failed to decode choices of ballot %s: %w", b.ID, err)
		}
		state.Ballots = append(state.Ballots, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ballots: %w", err)
	}

	query = `SELECT has_voted, receipt FROM device_state WHERE singleton`
	err = r.db.QueryRowContext(ctx, query).Scan(&state.Device.HasVoted, &state.Device.Receipt)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get device state: %w", err)
	}

	return state, nil
}

func (r *ballotRepository) Save(ctx context.Context, state *domain.StoreState) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ballots`); err != nil {
		return fmt.Errorf("failed to clear ballots: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ballots (seq, id, ts, voter_name, voter_phone, choices, note)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare ballot statement: %w", err)
	}
	defer stmt.Close()

	for i, b := range state.Ballots {
		choices, err := json.Marshal(b.Choices)
		if err != nil {
			return fmt.Errorf("failed to encode choices of ballot %s: %w", b.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, i, b.ID, b.Timestamp, b.Voter.Name, b.Voter.Phone, string(choices), b.Note); err != nil {
			return fmt.Errorf("failed to insert ballot: %w", err)
		}
	}

	query := `
		INSERT INTO device_state (singleton, has_voted, receipt)
		VALUES (TRUE, $1, $2)
		ON CONFLICT (singleton) DO UPDATE SET
			has_voted = EXCLUDED.has_voted,
			receipt = EXCLUDED.receipt
	`
	if _, err := tx.ExecContext(ctx, query, state.Device.HasVoted, state.Device.Receipt); err != nil {
		return fmt.Errorf("failed to save device state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
