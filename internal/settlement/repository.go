package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mzahrani/splitledger/pkg/money"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new settlement into the database
func (r *Repository) Create(ctx context.Context, groupID, fromUserID, toUserID int64, amount money.Cents, note *string) (*Settlement, error) {
	query := `
		INSERT INTO settlements (group_id, from_user_id, to_user_id, amount, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, from_user_id, to_user_id, amount, note, created_at
	`

	settlement := &Settlement{}
	var amt decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, groupID, fromUserID, toUserID, amount.Decimal(), note).Scan(
		&settlement.ID,
		&settlement.GroupID,
		&settlement.FromUserID,
		&settlement.ToUserID,
		&amt,
		&settlement.Note,
		&settlement.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}
	settlement.Amount = money.FromDecimal(amt)

	return settlement, nil
}

// GetByID retrieves a settlement by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	query := `
		SELECT s.id, s.group_id, s.from_user_id, s.to_user_id, s.amount, s.note, s.created_at,
		       f.username AS from_username, t.username AS to_username
		FROM settlements s
		JOIN users f ON s.from_user_id = f.id
		JOIN users t ON s.to_user_id = t.id
		WHERE s.id = $1
	`

	settlement := &Settlement{}
	var amt decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&settlement.ID,
		&settlement.GroupID,
		&settlement.FromUserID,
		&settlement.ToUserID,
		&amt,
		&settlement.Note,
		&settlement.CreatedAt,
		&settlement.FromUsername,
		&settlement.ToUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	settlement.Amount = money.FromDecimal(amt)

	return settlement, nil
}

// ListByGroupID retrieves all settlements for a group
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Settlement, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM settlements WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT s.id, s.group_id, s.from_user_id, s.to_user_id, s.amount, s.note, s.created_at,
		       f.username AS from_username, t.username AS to_username
		FROM settlements s
		JOIN users f ON s.from_user_id = f.id
		JOIN users t ON s.to_user_id = t.id
		WHERE s.group_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		settlement := &Settlement{}
		var amt decimal.Decimal
		if err := rows.Scan(
			&settlement.ID,
			&settlement.GroupID,
			&settlement.FromUserID,
			&settlement.ToUserID,
			&amt,
			&settlement.Note,
			&settlement.CreatedAt,
			&settlement.FromUsername,
			&settlement.ToUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlement.Amount = money.FromDecimal(amt)
		settlements = append(settlements, settlement)
	}

	return settlements, total, nil
}
