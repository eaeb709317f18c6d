package settlement

import (
	"time"

	"github.com/mzahrani/splitledger/pkg/money"
)

// Settlement represents a direct payment between two group members. It
// reduces the mutual debt between them independently of any expense.
type Settlement struct {
	ID         int64       `json:"id"`
	GroupID    int64       `json:"group_id"`
	FromUserID int64       `json:"from_user_id"` // who paid
	ToUserID   int64       `json:"to_user_id"`   // who received
	Amount     money.Cents `json:"amount_cents"`
	Note       *string     `json:"note,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`

	// Populated via JOIN
	FromUsername string `json:"from_username,omitempty"`
	ToUsername   string `json:"to_username,omitempty"`
}
