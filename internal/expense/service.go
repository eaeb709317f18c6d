package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mzahrani/splitledger/internal/expense/split"
	"github.com/mzahrani/splitledger/internal/group"
	"github.com/mzahrani/splitledger/pkg/money"
)

// Common errors
var (
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrNotPayer          = errors.New("only the payer can delete an expense")
	ErrMissingSplitValue = errors.New("missing split value for participant")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
)

// Service handles expense business logic
type Service struct {
	repo      *Repository
	groupRepo *group.Repository
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, groupRepo *group.Repository) *Service {
	return &Service{
		repo:      repo,
		groupRepo: groupRepo,
	}
}

// CreateExpense creates a new expense and one share row per participant,
// computed by the split engine. The payer is a participant like any other;
// their share becomes a debit that offsets the credit for paying.
func (s *Service) CreateExpense(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*ExpenseWithShares, error) {
	// The group must exist and every participant (payer included) must be a member
	g, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}

	if err := s.checkMembership(ctx, req.GroupID, payerID, req.Participants); err != nil {
		return nil, err
	}

	splitReq, err := buildSplitRequest(money.FromFloat(req.Amount), req.SplitType, req.Participants)
	if err != nil {
		return nil, err
	}

	shares, err := split.Compute(splitReq)
	if err != nil {
		return nil, err
	}

	spentAt := time.Now().UTC()
	if req.SpentAt != nil {
		spentAt, err = time.Parse("2006-01-02", *req.SpentAt)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	expense, err := s.repo.CreateExpense(ctx, req.GroupID, payerID, req.Description, splitReq.Amount, splitReq.Type, spentAt)
	if err != nil {
		return nil, err
	}

	shareRows := make([]*ExpenseShare, len(shares))
	for i, sh := range shares {
		row, err := s.repo.CreateShare(ctx, expense.ID, sh.ParticipantID, sh.Amount, sh.Percentage)
		if err != nil {
			// TODO: Should rollback expense creation in a transaction
			return nil, err
		}
		shareRows[i] = row
	}

	return &ExpenseWithShares{
		Expense: expense,
		Shares:  shareRows,
	}, nil
}

// PreviewSplit computes shares for the given inputs without persisting
// anything
func (s *Service) PreviewSplit(req *PreviewSplitRequest) ([]split.Share, error) {
	splitReq, err := buildSplitRequest(money.FromFloat(req.Amount), req.SplitType, req.Participants)
	if err != nil {
		return nil, err
	}
	return split.Compute(splitReq)
}

// GetByID retrieves an expense with its shares
func (s *Service) GetByID(ctx context.Context, id int64) (*ExpenseWithShares, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	shares, err := s.repo.GetSharesByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithShares{
		Expense: expense,
		Shares:  shares,
	}, nil
}

// ListByGroupID retrieves expenses for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// Delete removes an expense; only the payer may do so
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}
	if expense.PayerID != userID {
		return ErrNotPayer
	}

	return s.repo.DeleteExpense(ctx, id)
}

// checkMembership verifies the payer and all participants belong to the group
func (s *Service) checkMembership(ctx context.Context, groupID, payerID int64, participants []*ShareInput) error {
	ids := map[int64]bool{payerID: true}
	for _, p := range participants {
		ids[p.UserID] = true
	}
	for id := range ids {
		member, err := s.groupRepo.GetMember(ctx, groupID, id)
		if err != nil {
			return err
		}
		if member == nil {
			return group.ErrMemberNotFound
		}
	}
	return nil
}

// buildSplitRequest translates API share inputs into a split engine request
func buildSplitRequest(amount money.Cents, splitType string, participants []*ShareInput) (split.Request, error) {
	req := split.Request{
		Amount: amount,
		Type:   split.Type(strings.ToUpper(splitType)),
	}

	req.Participants = make([]int64, len(participants))
	for i, p := range participants {
		req.Participants[i] = p.UserID
	}

	switch req.Type {
	case split.TypeUnequal:
		req.Amounts = make([]float64, len(participants))
		for i, p := range participants {
			if p.Amount == nil {
				return split.Request{}, ErrMissingSplitValue
			}
			req.Amounts[i] = *p.Amount
		}
	case split.TypePercent:
		req.Percents = make([]float64, len(participants))
		for i, p := range participants {
			if p.Percent == nil {
				return split.Request{}, ErrMissingSplitValue
			}
			req.Percents[i] = *p.Percent
		}
	case split.TypeShares:
		req.Weights = make([]float64, len(participants))
		for i, p := range participants {
			if p.Weight == nil {
				return split.Request{}, ErrMissingSplitValue
			}
			req.Weights[i] = *p.Weight
		}
	}
	// EQUAL needs no auxiliary values; unknown types are rejected by Compute

	return req, nil
}
