package balance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mzahrani/splitledger/pkg/money"
)

// fakeStore is an in-memory LedgerStore for tests.
type fakeStore struct {
	groups      map[int64]*Group
	members     map[int64][]Member
	expenses    map[int64][]Expense
	shares      map[int64][]Share
	settlements map[int64][]Settlement
	err         error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups:      make(map[int64]*Group),
		members:     make(map[int64][]Member),
		expenses:    make(map[int64][]Expense),
		shares:      make(map[int64][]Share),
		settlements: make(map[int64][]Settlement),
	}
}

func (f *fakeStore) GroupByID(_ context.Context, groupID int64) (*Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.groups[groupID], nil
}

func (f *fakeStore) Members(_ context.Context, groupID int64) ([]Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.members[groupID], nil
}

func (f *fakeStore) Expenses(_ context.Context, groupID int64) ([]Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.expenses[groupID], nil
}

func (f *fakeStore) Shares(_ context.Context, groupID int64) ([]Share, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.shares[groupID], nil
}

func (f *fakeStore) Settlements(_ context.Context, groupID int64) ([]Settlement, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settlements[groupID], nil
}

func (f *fakeStore) GroupIDsForUser(_ context.Context, userID int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ids []int64
	for id, members := range f.members {
		for _, m := range members {
			if m.UserID == userID {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids, nil
}

// tripStore builds a three-member group where Alice paid $90.00 split
// equally among all three, payer included.
func tripStore() *fakeStore {
	store := newFakeStore()
	store.groups[1] = &Group{ID: 1, Name: "Trip", CurrencyCode: "USD"}
	store.members[1] = []Member{
		{UserID: 1, Username: "alice", Email: "alice@example.com"},
		{UserID: 2, Username: "bob", Email: "bob@example.com"},
		{UserID: 3, Username: "carol", Email: "carol@example.com"},
	}
	store.expenses[1] = []Expense{
		{ID: 10, PayerID: 1, Amount: 9000, SpentAt: time.Now().UTC()},
	}
	store.shares[1] = []Share{
		{ExpenseID: 10, ParticipantID: 1, Amount: 3000},
		{ExpenseID: 10, ParticipantID: 2, Amount: 3000},
		{ExpenseID: 10, ParticipantID: 3, Amount: 3000},
	}
	return store
}

func TestGroupBalancesNetting(t *testing.T) {
	svc := NewService(tripStore())

	summary, err := svc.GroupBalances(context.Background(), 1)
	if err != nil {
		t.Fatalf("GroupBalances() error = %v", err)
	}

	if summary.TotalExpenses != 9000 {
		t.Errorf("TotalExpenses = %d, want 9000", summary.TotalExpenses)
	}
	if len(summary.Balances) != 3 {
		t.Fatalf("got %d balances, want 3", len(summary.Balances))
	}

	// Ordered by username: alice, bob, carol
	alice := summary.Balances[0]
	if alice.Username != "alice" {
		t.Fatalf("first balance is %q, want alice", alice.Username)
	}
	if alice.Credits != 9000 || alice.Debits != 3000 || alice.Net != 6000 {
		t.Errorf("alice = credits %d, debits %d, net %d; want 9000, 3000, 6000",
			alice.Credits, alice.Debits, alice.Net)
	}
	for _, bal := range summary.Balances[1:] {
		if bal.Credits != 0 || bal.Debits != 3000 || bal.Net != -3000 {
			t.Errorf("%s = credits %d, debits %d, net %d; want 0, 3000, -3000",
				bal.Username, bal.Credits, bal.Debits, bal.Net)
		}
	}
}

func TestGroupBalancesSettlements(t *testing.T) {
	store := tripStore()
	store.settlements[1] = []Settlement{
		{FromUserID: 2, ToUserID: 1, Amount: 3000, CreatedAt: time.Now().UTC()},
	}
	svc := NewService(store)

	summary, err := svc.GroupBalances(context.Background(), 1)
	if err != nil {
		t.Fatalf("GroupBalances() error = %v", err)
	}

	if summary.TotalSettlements != 3000 {
		t.Errorf("TotalSettlements = %d, want 3000", summary.TotalSettlements)
	}

	// Bob repaying his $30 share settles him and reduces what Alice is owed.
	byUser := make(map[string]UserBalance)
	for _, bal := range summary.Balances {
		byUser[bal.Username] = bal
	}
	if got := byUser["alice"]; got.SettlementsIn != 3000 || got.Net != 3000 {
		t.Errorf("alice = in %d, net %d; want 3000, 3000", got.SettlementsIn, got.Net)
	}
	if got := byUser["bob"]; got.SettlementsOut != 3000 || got.Net != 0 {
		t.Errorf("bob = out %d, net %d; want 3000, 0", got.SettlementsOut, got.Net)
	}
}

func TestGroupBalancesNoActivity(t *testing.T) {
	store := newFakeStore()
	store.groups[1] = &Group{ID: 1, Name: "Quiet", CurrencyCode: "USD"}
	store.members[1] = []Member{
		{UserID: 1, Username: "alice"},
		{UserID: 2, Username: "bob"},
	}
	svc := NewService(store)

	summary, err := svc.GroupBalances(context.Background(), 1)
	if err != nil {
		t.Fatalf("GroupBalances() error = %v", err)
	}
	if len(summary.Balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(summary.Balances))
	}
	for _, bal := range summary.Balances {
		if bal.Credits != 0 || bal.Debits != 0 || bal.Net != 0 {
			t.Errorf("%s has non-zero balance: %+v", bal.Username, bal)
		}
	}
}

func TestGroupBalancesEmptyGroup(t *testing.T) {
	store := newFakeStore()
	store.groups[1] = &Group{ID: 1, Name: "Empty", CurrencyCode: "USD"}
	svc := NewService(store)

	summary, err := svc.GroupBalances(context.Background(), 1)
	if err != nil {
		t.Fatalf("GroupBalances() error = %v", err)
	}
	if len(summary.Balances) != 0 {
		t.Errorf("got %d balances, want 0", len(summary.Balances))
	}
}

func TestGroupBalancesGroupNotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.GroupBalances(context.Background(), 99)
	if !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("GroupBalances() error = %v, want ErrGroupNotFound", err)
	}
}

func TestGroupBalancesStoreError(t *testing.T) {
	store := tripStore()
	store.err = ErrLedgerRead
	svc := NewService(store)

	_, err := svc.GroupBalances(context.Background(), 1)
	if !errors.Is(err, ErrLedgerRead) {
		t.Errorf("GroupBalances() error = %v, want ErrLedgerRead", err)
	}
}

func TestMemberBalance(t *testing.T) {
	svc := NewService(tripStore())

	bal, err := svc.MemberBalance(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("MemberBalance() error = %v", err)
	}
	if bal.Username != "bob" || bal.Net != -3000 {
		t.Errorf("got %q net %d, want bob net -3000", bal.Username, bal.Net)
	}

	_, err = svc.MemberBalance(context.Background(), 1, 99)
	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("MemberBalance() error = %v, want ErrMemberNotFound", err)
	}
}

func TestMemberBalances(t *testing.T) {
	store := tripStore()
	store.groups[2] = &Group{ID: 2, Name: "Dinner", CurrencyCode: "USD"}
	store.members[2] = []Member{
		{UserID: 1, Username: "alice"},
		{UserID: 2, Username: "bob"},
	}
	store.expenses[2] = []Expense{
		{ID: 20, PayerID: 2, Amount: 4000, SpentAt: time.Now().UTC()},
	}
	store.shares[2] = []Share{
		{ExpenseID: 20, ParticipantID: 1, Amount: 2000},
		{ExpenseID: 20, ParticipantID: 2, Amount: 2000},
	}
	svc := NewService(store)

	balances, err := svc.MemberBalances(context.Background(), 1)
	if err != nil {
		t.Fatalf("MemberBalances() error = %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("got %d group balances, want 2", len(balances))
	}

	nets := make(map[int64]money.Cents)
	for _, gb := range balances {
		nets[gb.GroupID] = gb.Balance.Net
	}
	if nets[1] != 6000 {
		t.Errorf("group 1 net = %d, want 6000", nets[1])
	}
	if nets[2] != -2000 {
		t.Errorf("group 2 net = %d, want -2000", nets[2])
	}
}

func TestValidate(t *testing.T) {
	t.Run("consistent", func(t *testing.T) {
		svc := NewService(tripStore())

		result, err := svc.Validate(context.Background(), 1)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if !result.IsValid {
			t.Errorf("IsValid = false, want true (total net %d)", result.TotalNet)
		}
		if result.TotalNet != 0 {
			t.Errorf("TotalNet = %d, want 0", result.TotalNet)
		}
	})

	t.Run("within tolerance", func(t *testing.T) {
		// Three members tolerate a 3-cent drift.
		store := tripStore()
		store.shares[1] = []Share{
			{ExpenseID: 10, ParticipantID: 1, Amount: 3001},
			{ExpenseID: 10, ParticipantID: 2, Amount: 3001},
			{ExpenseID: 10, ParticipantID: 3, Amount: 3001},
		}
		svc := NewService(store)

		result, err := svc.Validate(context.Background(), 1)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if !result.IsValid {
			t.Errorf("IsValid = false for total net %d with 3 members", result.TotalNet)
		}
	})

	t.Run("beyond tolerance", func(t *testing.T) {
		store := tripStore()
		store.shares[1] = []Share{
			{ExpenseID: 10, ParticipantID: 1, Amount: 3002},
			{ExpenseID: 10, ParticipantID: 2, Amount: 3001},
			{ExpenseID: 10, ParticipantID: 3, Amount: 3001},
		}
		svc := NewService(store)

		result, err := svc.Validate(context.Background(), 1)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if result.IsValid {
			t.Errorf("IsValid = true for total net %d with 3 members", result.TotalNet)
		}
		if result.Message == "" {
			t.Error("Message is empty for invalid result")
		}
	})
}
