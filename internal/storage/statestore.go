// Package storage persists per-user vault state in PostgreSQL. One row per
// user holds the full serialized state; writes are upserts so the
// save-after-each-mutation contract stays a single round trip.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/MockingJay-dev/BrainVault/core/logger"
	"github.com/MockingJay-dev/BrainVault/internal/vault"
	"log/slog"
)

// StateStore implements vault.StateRepository on top of sqlx.
type StateStore struct {
	db *sqlx.DB
}

// NewStateStore wires the store to an open database handle.
func NewStateStore(db *sqlx.DB) *StateStore {
	return &StateStore{db: db}
}

type stateRow struct {
	UserID    int64     `db:"user_id"`
	State     []byte    `db:"state"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Load fetches the stored state for a user. It returns (nil, nil) when the
// user has no state yet.
func (s *StateStore) Load(ctx context.Context, userID int64) (*vault.UserState, error) {
	start := time.Now()
	var row stateRow
	err := s.db.GetContext(ctx, &row,
		`SELECT user_id, state, updated_at FROM user_states WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user state: %w", err)
	}

	var state vault.UserState
	if err := json.Unmarshal(row.State, &state); err != nil {
		return nil, fmt.Errorf("decode user state: %w", err)
	}

	logger.Debug(ctx, "service.states", "state.load",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Duration("duration", logger.Took(start)),
	)
	return &state, nil
}

// Save upserts the full state for a user.
func (s *StateStore) Save(ctx context.Context, userID int64, state *vault.UserState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode user state: %w", err)
	}

	start := time.Now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_states (user_id, state, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()`,
		userID, payload)
	if err != nil {
		return fmt.Errorf("save user state: %w", err)
	}

	logger.Debug(ctx, "service.states", "state.save",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// CountUsers returns the number of users with stored state.
func (s *StateStore) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM user_states`); err != nil {
		return 0, fmt.Errorf("count user states: %w", err)
	}
	return count, nil
}
