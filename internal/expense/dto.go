package expense

// ShareInput describes one participant in an expense split. Amount,
// Percent and Weight are required for UNEQUAL, PERCENT and SHARES splits
// respectively; EQUAL needs only the user ID.
type ShareInput struct {
	UserID  int64    `json:"user_id" validate:"required"`
	Amount  *float64 `json:"amount,omitempty"`
	Percent *float64 `json:"percent,omitempty"`
	Weight  *float64 `json:"weight,omitempty"`
}

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	GroupID      int64         `json:"group_id" validate:"required"`
	Description  string        `json:"description" validate:"required,min=1,max=255"`
	Amount       float64       `json:"amount" validate:"required,gt=0"`
	SplitType    string        `json:"split_type" validate:"required,oneof=EQUAL UNEQUAL PERCENT SHARES"`
	SpentAt      *string       `json:"spent_at,omitempty"` // YYYY-MM-DD, defaults to today
	Participants []*ShareInput `json:"participants" validate:"required,min=1"`
}

// PreviewSplitRequest represents the request to compute a split without
// persisting anything
type PreviewSplitRequest struct {
	Amount       float64       `json:"amount" validate:"required"`
	SplitType    string        `json:"split_type" validate:"required"`
	Participants []*ShareInput `json:"participants" validate:"required,min=1"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID            int64            `json:"id"`
	GroupID       int64            `json:"group_id"`
	PayerID       int64            `json:"payer_id"`
	PayerUsername string           `json:"payer_username,omitempty"`
	Description   string           `json:"description"`
	Amount        float64          `json:"amount"`
	SplitType     string           `json:"split_type"`
	SpentAt       string           `json:"spent_at"`
	CreatedAt     string           `json:"created_at"`
	Shares        []*ShareResponse `json:"shares,omitempty"`
}

// ShareResponse represents one participant's share in a response
type ShareResponse struct {
	UserID     int64   `json:"user_id"`
	Username   string  `json:"username,omitempty"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		GroupID:       e.GroupID,
		PayerID:       e.PayerID,
		PayerUsername: e.PayerUsername,
		Description:   e.Description,
		Amount:        e.Amount.Float(),
		SplitType:     string(e.SplitType),
		SpentAt:       e.SpentAt.Format("2006-01-02"),
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts an ExpenseShare model to a ShareResponse DTO
func (s *ExpenseShare) ToResponse() *ShareResponse {
	return &ShareResponse{
		UserID:     s.ParticipantID,
		Username:   s.ParticipantUsername,
		Amount:     s.Amount.Float(),
		Percentage: s.Percentage,
	}
}
