package expense

import (
	"time"

	"github.com/mzahrani/splitledger/internal/expense/split"
	"github.com/mzahrani/splitledger/pkg/money"
)

// Expense represents a shared expense in a group. Amounts are held in
// integer cents; conversion to and from decimal major units happens only at
// the API and database boundaries. Expenses are immutable once created.
type Expense struct {
	ID          int64       `json:"id"`
	GroupID     int64       `json:"group_id"`
	PayerID     int64       `json:"payer_id"`
	Description string      `json:"description"`
	Amount      money.Cents `json:"amount_cents"`
	SplitType   split.Type  `json:"split_type"`
	SpentAt     time.Time   `json:"spent_at"`
	CreatedAt   time.Time   `json:"created_at"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
}

// ExpenseShare is one participant's portion of an expense. Shares for an
// expense always sum exactly to the expense amount.
type ExpenseShare struct {
	ID            int64       `json:"id"`
	ExpenseID     int64       `json:"expense_id"`
	ParticipantID int64       `json:"participant_id"`
	Amount        money.Cents `json:"amount_cents"`
	Percentage    float64     `json:"percentage"`

	// Populated via JOIN
	ParticipantUsername string `json:"participant_username,omitempty"`
}

// ExpenseWithShares combines an expense with its computed shares
type ExpenseWithShares struct {
	Expense *Expense
	Shares  []*ExpenseShare
}
