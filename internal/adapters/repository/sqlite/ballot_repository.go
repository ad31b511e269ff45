// Package sqlite persists the device's ballot store in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
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
	state := &domain.StoreState{}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ts, voter_name, voter_phone, choices, note
		FROM ballots
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b domain.Ballot
		var choices string
		if err := rows.Scan(&b.ID, &b.Timestamp, &b.Voter.Name, &b.Voter.Phone, &choices, &b.Note); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		if err := json.Unmarshal([]byte(choices), &b.Choices); err != nil {
			return nil, fmt.Errorf("failed to decode choices of ballot %s: %w", b.ID, err)
		}
		state.Ballots = append(state.Ballots, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ballots: %w", err)
	}

	var hasVoted int
	err = r.db.QueryRowContext(ctx, `SELECT has_voted, receipt FROM device_state WHERE singleton = 1`).
		Scan(&hasVoted, &state.Device.Receipt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get device state: %w", err)
	}
	state.Device.HasVoted = hasVoted != 0

	return state, nil
}

// Save replaces the stored state in one transaction.
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
		VALUES (?, ?, ?, ?, ?, ?, ?)
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
		_, err = stmt.ExecContext(ctx, i, b.ID, b.Timestamp, b.Voter.Name, b.Voter.Phone, string(choices), b.Note)
		if err != nil {
			return fmt.Errorf("failed to insert ballot: %w", err)
		}
	}

	hasVoted := 0
	if state.Device.HasVoted {
		hasVoted = 1
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO device_state (singleton, has_voted, receipt)
		VALUES (1, ?, ?)
		ON CONFLICT (singleton) DO UPDATE SET
			has_voted = excluded.has_voted,
			receipt = excluded.receipt
	`, hasVoted, state.Device.Receipt)
	if err != nil {
		return fmt.Errorf("failed to save device state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
