package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mzahrani/splitledger/internal/expense/split"
	"github.com/mzahrani/splitledger/pkg/money"
)

// Repository handles expense and share data persistence. Amounts are stored
// as decimal major units and converted to cents when rows are scanned.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts a new expense into the database
func (r *Repository) CreateExpense(ctx context.Context, groupID, payerID int64, description string, amount money.Cents, splitType split.Type, spentAt time.Time) (*Expense, error) {
	query := `
		INSERT INTO expenses (group_id, payer_id, description, amount, split_type, spent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, group_id, payer_id, description, amount, split_type, spent_at, created_at
	`

	expense := &Expense{}
	var amt decimal.Decimal
	err := r.db.QueryRowContext(ctx, query,
		groupID,
		payerID,
		description,
		amount.Decimal(),
		string(splitType),
		spentAt,
	).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&amt,
		&expense.SplitType,
		&expense.SpentAt,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	expense.Amount = money.FromDecimal(amt)

	return expense, nil
}

// CreateShare inserts a new expense share into the database
func (r *Repository) CreateShare(ctx context.Context, expenseID, participantID int64, amount money.Cents, percentage float64) (*ExpenseShare, error) {
	query := `
		INSERT INTO expense_shares (expense_id, participant_id, amount, percentage)
		VALUES ($1, $2, $3, $4)
		RETURNING id, expense_id, participant_id, amount, percentage
	`

	share := &ExpenseShare{}
	var amt decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, expenseID, participantID, amount.Decimal(), percentage).Scan(
		&share.ID,
		&share.ExpenseID,
		&share.ParticipantID,
		&amt,
		&share.Percentage,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create share: %w", err)
	}
	share.Amount = money.FromDecimal(amt)

	return share, nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.spent_at, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	var amt decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Description,
		&amt,
		&expense.SplitType,
		&expense.SpentAt,
		&expense.CreatedAt,
		&expense.PayerUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Amount = money.FromDecimal(amt)

	return expense, nil
}

// GetSharesByExpenseID retrieves all shares for an expense
func (r *Repository) GetSharesByExpenseID(ctx context.Context, expenseID int64) ([]*ExpenseShare, error) {
	query := `
		SELECT s.id, s.expense_id, s.participant_id, s.amount, s.percentage, u.username
		FROM expense_shares s
		JOIN users u ON s.participant_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares []*ExpenseShare
	for rows.Next() {
		share := &ExpenseShare{}
		var amt decimal.Decimal
		if err := rows.Scan(
			&share.ID,
			&share.ExpenseID,
			&share.ParticipantID,
			&amt,
			&share.Percentage,
			&share.ParticipantUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		share.Amount = money.FromDecimal(amt)
		shares = append(shares, share)
	}

	return shares, nil
}

// ListByGroupID retrieves all expenses for a group
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	// Get total count
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	// Get expenses
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.split_type, e.spent_at, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.spent_at DESC, e.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		var amt decimal.Decimal
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Description,
			&amt,
			&expense.SplitType,
			&expense.SpentAt,
			&expense.CreatedAt,
			&expense.PayerUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount = money.FromDecimal(amt)
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// DeleteExpense deletes an expense and its shares
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	// Delete shares first (foreign key constraint)
	_, err := r.db.ExecContext(ctx, `DELETE FROM expense_shares WHERE expense_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shares: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("expense not found")
	}

	return nil
}
