package balance

import "context"

// LedgerStore provides read-only access to a group's ledger rows. The
// balance core works only on what the store returns, so a test double can
// stand in for the database without any global state.
//
// GroupByID returns nil (no error) when the group does not exist; the
// service translates that into ErrGroupNotFound.
type LedgerStore interface {
	GroupByID(ctx context.Context, groupID int64) (*Group, error)
	Members(ctx context.Context, groupID int64) ([]Member, error)
	Expenses(ctx context.Context, groupID int64) ([]Expense, error)
	Shares(ctx context.Context, groupID int64) ([]Share, error)
	Settlements(ctx context.Context, groupID int64) ([]Settlement, error)
	GroupIDsForUser(ctx context.Context, userID int64) ([]int64, error)
}
