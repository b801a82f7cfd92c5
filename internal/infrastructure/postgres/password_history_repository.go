package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freshmarket/market-api/internal/domain/entity"
	"github.com/freshmarket/market-api/internal/domain/repository"
)

var _ repository.PasswordHistoryRepository = (*PasswordHistoryRepo)(nil)

// PasswordHistoryRepo implements the append-only password audit trail.
type PasswordHistoryRepo struct {
	pool *pgxpool.Pool
}

// NewPasswordHistoryRepository builds the adapter.
func NewPasswordHistoryRepository(pool *pgxpool.Pool) *PasswordHistoryRepo {
	return &PasswordHistoryRepo{pool: pool}
}

// Append inserts one snapshot. Rows are never updated or deleted.
func (r *PasswordHistoryRepo) Append(ctx context.Context, entry *entity.PasswordHistory) error {
	query := `
		INSERT INTO password_history (id, user_id, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, entry.ID, entry.UserID, entry.PasswordHash, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert password history: %w", err)
	}
	return nil
}

// ListByUser returns the most recent snapshots for a user, newest first.
func (r *PasswordHistoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.PasswordHistory, error) {
	query := `
		SELECT id, user_id, password_hash, created_at
		FROM password_history WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list password history: %w", err)
	}
	defer rows.Close()
	var list []*entity.PasswordHistory
	for rows.Next() {
		var e entity.PasswordHistory
		if err := rows.Scan(&e.ID, &e.UserID, &e.PasswordHash, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan password history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
