package balance

// UserBalanceResponse represents one member's balance with amounts in
// major currency units
type UserBalanceResponse struct {
	UserID         int64   `json:"user_id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Credits        float64 `json:"credits"`
	Debits         float64 `json:"debits"`
	SettlementsIn  float64 `json:"settlements_in"`
	SettlementsOut float64 `json:"settlements_out"`
	Net            float64 `json:"net"`
}

// GroupBalancesResponse represents the full balance summary of a group
type GroupBalancesResponse struct {
	GroupID          int64                 `json:"group_id"`
	GroupName        string                `json:"group_name"`
	CurrencyCode     string                `json:"currency_code"`
	Balances         []UserBalanceResponse `json:"balances"`
	TotalExpenses    float64               `json:"total_expenses"`
	TotalSettlements float64               `json:"total_settlements"`
}

// GroupMemberBalanceResponse represents a user's balance in one of their groups
type GroupMemberBalanceResponse struct {
	GroupID      int64               `json:"group_id"`
	GroupName    string              `json:"group_name"`
	CurrencyCode string              `json:"currency_code"`
	Balance      UserBalanceResponse `json:"balance"`
}

// SuggestionResponse represents one proposed settling transfer
type SuggestionResponse struct {
	FromUserID  int64   `json:"from_user_id"`
	FromName    string  `json:"from_name"`
	ToUserID    int64   `json:"to_user_id"`
	ToName      string  `json:"to_name"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// ValidationResponse represents the outcome of a balance consistency check
type ValidationResponse struct {
	IsValid  bool    `json:"is_valid"`
	TotalNet float64 `json:"total_net"`
	Message  string  `json:"message"`
}

// DayBalanceResponse represents one day of balance history
type DayBalanceResponse struct {
	Date    string  `json:"date"`
	Net     float64 `json:"net"`
	Credits float64 `json:"credits"`
	Debits  float64 `json:"debits"`
}

// ToResponse converts a UserBalance model to a UserBalanceResponse DTO
func (b *UserBalance) ToResponse() UserBalanceResponse {
	return UserBalanceResponse{
		UserID:         b.UserID,
		Username:       b.Username,
		Email:          b.Email,
		Credits:        b.Credits.Float(),
		Debits:         b.Debits.Float(),
		SettlementsIn:  b.SettlementsIn.Float(),
		SettlementsOut: b.SettlementsOut.Float(),
		Net:            b.Net.Float(),
	}
}

// ToResponse converts a GroupBalanceSummary model to a GroupBalancesResponse DTO
func (s *GroupBalanceSummary) ToResponse() *GroupBalancesResponse {
	balances := make([]UserBalanceResponse, len(s.Balances))
	for i := range s.Balances {
		balances[i] = s.Balances[i].ToResponse()
	}
	return &GroupBalancesResponse{
		GroupID:          s.GroupID,
		GroupName:        s.GroupName,
		CurrencyCode:     s.CurrencyCode,
		Balances:         balances,
		TotalExpenses:    s.TotalExpenses.Float(),
		TotalSettlements: s.TotalSettlements.Float(),
	}
}

// ToResponse converts a GroupMemberBalance model to a GroupMemberBalanceResponse DTO
func (g *GroupMemberBalance) ToResponse() *GroupMemberBalanceResponse {
	return &GroupMemberBalanceResponse{
		GroupID:      g.GroupID,
		GroupName:    g.GroupName,
		CurrencyCode: g.CurrencyCode,
		Balance:      g.Balance.ToResponse(),
	}
}

// ToResponse converts a Suggestion model to a SuggestionResponse DTO
func (s *Suggestion) ToResponse() *SuggestionResponse {
	return &SuggestionResponse{
		FromUserID:  s.FromUserID,
		FromName:    s.FromName,
		ToUserID:    s.ToUserID,
		ToName:      s.ToName,
		Amount:      s.Amount.Float(),
		Description: s.Description,
	}
}

// ToResponse converts a ValidationResult model to a ValidationResponse DTO
func (v *ValidationResult) ToResponse() *ValidationResponse {
	return &ValidationResponse{
		IsValid:  v.IsValid,
		TotalNet: v.TotalNet.Float(),
		Message:  v.Message,
	}
}

// ToResponse converts a DayBalance model to a DayBalanceResponse DTO
func (d *DayBalance) ToResponse() DayBalanceResponse {
	return DayBalanceResponse{
		Date:    d.Date.Format("2006-01-02"),
		Net:     d.Net.Float(),
		Credits: d.Credits.Float(),
		Debits:  d.Debits.Float(),
	}
}
