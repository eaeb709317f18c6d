package balance

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mzahrani/splitledger/pkg/money"
)

// Common errors
var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrMemberNotFound = errors.New("member not found in group")

	// ErrLedgerRead marks a failed read from the ledger store. The core
	// never retries; callers decide on retry policy.
	ErrLedgerRead = errors.New("ledger read failed")
)

// Service derives balances, suggestions, validation results and history
// from a LedgerStore. It holds no state of its own; concurrent calls need
// no coordination.
type Service struct {
	store LedgerStore
}

// NewService creates a new balance service with the ledger store injected
func NewService(store LedgerStore) *Service {
	return &Service{store: store}
}

// GroupBalances computes every member's position in the group from the
// current ledger snapshot. Members with no activity appear with all-zero
// fields; the result is ordered by username ascending.
func (s *Service) GroupBalances(ctx context.Context, groupID int64) (*GroupBalanceSummary, error) {
	group, err := s.store.GroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	members, err := s.store.Members(ctx, groupID)
	if err != nil {
		return nil, err
	}

	summary := &GroupBalanceSummary{
		GroupID:      group.ID,
		GroupName:    group.Name,
		CurrencyCode: group.CurrencyCode,
		Balances:     []UserBalance{},
	}
	if len(members) == 0 {
		return summary, nil
	}

	byID := make(map[int64]*UserBalance, len(members))
	for _, m := range members {
		byID[m.UserID] = &UserBalance{
			UserID:   m.UserID,
			Username: m.Username,
			Email:    m.Email,
		}
	}

	expenses, err := s.store.Expenses(ctx, groupID)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		summary.TotalExpenses += e.Amount
		if bal, ok := byID[e.PayerID]; ok {
			bal.Credits += e.Amount
		}
	}

	shares, err := s.store.Shares(ctx, groupID)
	if err != nil {
		return nil, err
	}
	for _, sh := range shares {
		if bal, ok := byID[sh.ParticipantID]; ok {
			bal.Debits += sh.Amount
		}
	}

	settlements, err := s.store.Settlements(ctx, groupID)
	if err != nil {
		return nil, err
	}
	for _, st := range settlements {
		// Each settlement counts once in the group total
		summary.TotalSettlements += st.Amount
		if bal, ok := byID[st.ToUserID]; ok {
			bal.SettlementsIn += st.Amount
		}
		if bal, ok := byID[st.FromUserID]; ok {
			bal.SettlementsOut += st.Amount
		}
	}

	balances := make([]UserBalance, 0, len(byID))
	for _, bal := range byID {
		bal.Net = bal.Credits - bal.Debits - bal.SettlementsIn + bal.SettlementsOut
		balances = append(balances, *bal)
	}
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Username != balances[j].Username {
			return balances[i].Username < balances[j].Username
		}
		return balances[i].UserID < balances[j].UserID
	})
	summary.Balances = balances

	return summary, nil
}

// MemberBalance returns one member's position in a group
func (s *Service) MemberBalance(ctx context.Context, groupID, userID int64) (*UserBalance, error) {
	summary, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	for i := range summary.Balances {
		if summary.Balances[i].UserID == userID {
			return &summary.Balances[i], nil
		}
	}
	return nil, ErrMemberNotFound
}

// MemberBalances returns a user's position in every group they belong to
func (s *Service) MemberBalances(ctx context.Context, userID int64) ([]GroupMemberBalance, error) {
	groupIDs, err := s.store.GroupIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]GroupMemberBalance, 0, len(groupIDs))
	for _, groupID := range groupIDs {
		summary, err := s.GroupBalances(ctx, groupID)
		if err != nil {
			return nil, err
		}
		for i := range summary.Balances {
			if summary.Balances[i].UserID == userID {
				results = append(results, GroupMemberBalance{
					GroupID:      summary.GroupID,
					GroupName:    summary.GroupName,
					CurrencyCode: summary.CurrencyCode,
					Balance:      summary.Balances[i],
				})
				break
			}
		}
	}

	return results, nil
}

// Suggestions computes transfers that would settle the group
func (s *Service) Suggestions(ctx context.Context, groupID int64) ([]Suggestion, error) {
	summary, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return SuggestSettlements(summary.Balances), nil
}

// Validate checks that the group's net balances sum to zero within
// tolerance: one cent of rounding slack per member. A failure indicates
// inconsistent ledger data, not bad caller input.
func (s *Service) Validate(ctx context.Context, groupID int64) (*ValidationResult, error) {
	summary, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var totalNet money.Cents
	for _, bal := range summary.Balances {
		totalNet += bal.Net
	}

	tolerance := money.Cents(len(summary.Balances))
	result := &ValidationResult{TotalNet: totalNet}
	if totalNet.Abs() <= tolerance {
		result.IsValid = true
		result.Message = "balances are consistent"
	} else {
		result.Message = fmt.Sprintf("balances are off by %s across %d members", totalNet.Format(), len(summary.Balances))
	}

	return result, nil
}
