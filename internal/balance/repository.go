package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mzahrani/splitledger/pkg/money"
)

// Repository implements LedgerStore against Postgres. Every query is
// read-only; failures are wrapped with ErrLedgerRead and enough context to
// identify the group and query that failed.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GroupByID retrieves the group fields the balance core needs, or nil when
// the group does not exist
func (r *Repository) GroupByID(ctx context.Context, groupID int64) (*Group, error) {
	query := `
		SELECT id, name, currency_code
		FROM groups
		WHERE id = $1
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, groupID).Scan(
		&group.ID,
		&group.Name,
		&group.CurrencyCode,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get group %d: %v", ErrLedgerRead, groupID, err)
	}

	return group, nil
}

// Members retrieves all members of a group
func (r *Repository) Members(ctx context.Context, groupID int64) ([]Member, error) {
	query := `
		SELECT gm.user_id, u.username, u.email
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("%w: list members for group %d: %v", ErrLedgerRead, groupID, err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.Username, &m.Email); err != nil {
			return nil, fmt.Errorf("%w: scan member for group %d: %v", ErrLedgerRead, groupID, err)
		}
		members = append(members, m)
	}

	return members, nil
}

// Expenses retrieves all expenses for a group
func (r *Repository) Expenses(ctx context.Context, groupID int64) ([]Expense, error) {
	query := `
		SELECT id, payer_id, amount, spent_at
		FROM expenses
		WHERE group_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("%w: list expenses for group %d: %v", ErrLedgerRead, groupID, err)
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		var amt decimal.Decimal
		if err := rows.Scan(&e.ID, &e.PayerID, &amt, &e.SpentAt); err != nil {
			return nil, fmt.Errorf("%w: scan expense for group %d: %v", ErrLedgerRead, groupID, err)
		}
		e.Amount = money.FromDecimal(amt)
		expenses = append(expenses, e)
	}

	return expenses, nil
}

// Shares retrieves all expense shares for a group
func (r *Repository) Shares(ctx context.Context, groupID int64) ([]Share, error) {
	query := `
		SELECT s.expense_id, s.participant_id, s.amount
		FROM expense_shares s
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.group_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("%w: list shares for group %d: %v", ErrLedgerRead, groupID, err)
	}
	defer rows.Close()

	var shares []Share
	for rows.Next() {
		var s Share
		var amt decimal.Decimal
		if err := rows.Scan(&s.ExpenseID, &s.ParticipantID, &amt); err != nil {
			return nil, fmt.Errorf("%w: scan share for group %d: %v", ErrLedgerRead, groupID, err)
		}
		s.Amount = money.FromDecimal(amt)
		shares = append(shares, s)
	}

	return shares, nil
}

// Settlements retrieves all settlements for a group
func (r *Repository) Settlements(ctx context.Context, groupID int64) ([]Settlement, error) {
	query := `
		SELECT from_user_id, to_user_id, amount, created_at
		FROM settlements
		WHERE group_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("%w: list settlements for group %d: %v", ErrLedgerRead, groupID, err)
	}
	defer rows.Close()

	var settlements []Settlement
	for rows.Next() {
		var s Settlement
		var amt decimal.Decimal
		if err := rows.Scan(&s.FromUserID, &s.ToUserID, &amt, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan settlement for group %d: %v", ErrLedgerRead, groupID, err)
		}
		s.Amount = money.FromDecimal(amt)
		settlements = append(settlements, s)
	}

	return settlements, nil
}

// GroupIDsForUser retrieves the IDs of all groups the user belongs to
func (r *Repository) GroupIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT group_id
		FROM group_members
		WHERE user_id = $1
		ORDER BY group_id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list groups for user %d: %v", ErrLedgerRead, userID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan group id for user %d: %v", ErrLedgerRead, userID, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
