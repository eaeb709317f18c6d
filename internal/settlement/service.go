package settlement

import (
	"context"
	"errors"

	"github.com/mzahrani/splitledger/internal/group"
	"github.com/mzahrani/splitledger/pkg/money"
)

// Common errors
var (
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrCannotSettleSelf   = errors.New("cannot create settlement with yourself")
	ErrNonPositiveAmount  = errors.New("settlement amount must be greater than zero")
)

// Service handles settlement business logic
type Service struct {
	repo      *Repository
	groupRepo *group.Repository
}

// NewService creates a new settlement service
func NewService(repo *Repository, groupRepo *group.Repository) *Service {
	return &Service{
		repo:      repo,
		groupRepo: groupRepo,
	}
}

// Create records a payment from the authenticated user to another member
// of the same group
func (s *Service) Create(ctx context.Context, fromUserID int64, req *CreateSettlementRequest) (*Settlement, error) {
	if fromUserID == req.ToUserID {
		return nil, ErrCannotSettleSelf
	}

	amount := money.FromFloat(req.Amount)
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}

	g, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}

	// Both sides must be members of the group
	for _, userID := range []int64{fromUserID, req.ToUserID} {
		member, err := s.groupRepo.GetMember(ctx, req.GroupID, userID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, group.ErrMemberNotFound
		}
	}

	return s.repo.Create(ctx, req.GroupID, fromUserID, req.ToUserID, amount, req.Note)
}

// GetByID retrieves a settlement by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	settlement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, ErrSettlementNotFound
	}
	return settlement, nil
}

// ListByGroupID retrieves all settlements for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Settlement, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}
