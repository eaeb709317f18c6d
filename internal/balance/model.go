// Package balance derives member balances, settlement suggestions and
// balance history from a group's ledger. Every result is recomputed from
// the current ledger snapshot on each call; nothing here is persisted.
package balance

import (
	"time"

	"github.com/mzahrani/splitledger/pkg/money"
)

// Group is the slice of group state the balance core needs.
type Group struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currency_code"`
}

// Member is one group member as read from the ledger store.
type Member struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Expense is one ledger expense row: who paid how much, and when.
type Expense struct {
	ID      int64       `json:"id"`
	PayerID int64       `json:"payer_id"`
	Amount  money.Cents `json:"amount_cents"`
	SpentAt time.Time   `json:"spent_at"`
}

// Share is one participant's portion of an expense.
type Share struct {
	ExpenseID     int64       `json:"expense_id"`
	ParticipantID int64       `json:"participant_id"`
	Amount        money.Cents `json:"amount_cents"`
}

// Settlement is one recorded direct payment between two members.
type Settlement struct {
	FromUserID int64       `json:"from_user_id"`
	ToUserID   int64       `json:"to_user_id"`
	Amount     money.Cents `json:"amount_cents"`
	CreatedAt  time.Time   `json:"created_at"`
}

// UserBalance is a member's derived position in a group. Net is
// credits - debits - settlements in + settlements out; positive means the
// member is owed money, negative means they owe. Settlements move the net
// toward zero on both sides of the payment.
type UserBalance struct {
	UserID         int64       `json:"user_id"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	Credits        money.Cents `json:"credits_cents"`
	Debits         money.Cents `json:"debits_cents"`
	SettlementsIn  money.Cents `json:"settlements_in_cents"`
	SettlementsOut money.Cents `json:"settlements_out_cents"`
	Net            money.Cents `json:"net_cents"`
}

// GroupBalanceSummary is the full derived balance set of a group.
// Balances are ordered by username ascending. TotalSettlements counts each
// settlement once, not once per side.
type GroupBalanceSummary struct {
	GroupID          int64         `json:"group_id"`
	GroupName        string        `json:"group_name"`
	CurrencyCode     string        `json:"currency_code"`
	Balances         []UserBalance `json:"balances"`
	TotalExpenses    money.Cents   `json:"total_expenses_cents"`
	TotalSettlements money.Cents   `json:"total_settlements_cents"`
}

// GroupMemberBalance is one member's balance in one group, used when
// reporting a user's position across all their groups.
type GroupMemberBalance struct {
	GroupID      int64       `json:"group_id"`
	GroupName    string      `json:"group_name"`
	CurrencyCode string      `json:"currency_code"`
	Balance      UserBalance `json:"balance"`
}

// Suggestion is one proposed transfer that moves the group toward settled.
type Suggestion struct {
	FromUserID  int64       `json:"from_user_id"`
	FromName    string      `json:"from_name"`
	ToUserID    int64       `json:"to_user_id"`
	ToName      string      `json:"to_name"`
	Amount      money.Cents `json:"amount_cents"`
	Description string      `json:"description"`
}

// ValidationResult reports whether a group's balances net to zero within
// tolerance. Failures are surfaced, never silently corrected.
type ValidationResult struct {
	IsValid  bool        `json:"is_valid"`
	TotalNet money.Cents `json:"total_net_cents"`
	Message  string      `json:"message"`
}

// DayBalance is one day of a member's balance history. Net is cumulative;
// Credits and Debits are that day's activity only.
type DayBalance struct {
	Date    time.Time   `json:"date"`
	Net     money.Cents `json:"net_cents"`
	Credits money.Cents `json:"credits_cents"`
	Debits  money.Cents `json:"debits_cents"`
}
