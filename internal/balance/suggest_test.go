package balance

import (
	"context"
	"testing"
	"time"

	"github.com/mzahrani/splitledger/pkg/money"
)

func TestSuggestSettlements(t *testing.T) {
	tests := []struct {
		name     string
		balances []UserBalance
		want     []Suggestion
	}{
		{
			name: "one creditor two debtors",
			balances: []UserBalance{
				{UserID: 1, Username: "alice", Net: 6000},
				{UserID: 2, Username: "bob", Net: -3000},
				{UserID: 3, Username: "carol", Net: -3000},
			},
			want: []Suggestion{
				{FromUserID: 2, FromName: "bob", ToUserID: 1, ToName: "alice", Amount: 3000},
				{FromUserID: 3, FromName: "carol", ToUserID: 1, ToName: "alice", Amount: 3000},
			},
		},
		{
			name: "largest debtor pays largest creditor first",
			balances: []UserBalance{
				{UserID: 1, Username: "alice", Net: 5000},
				{UserID: 2, Username: "bob", Net: 2000},
				{UserID: 3, Username: "carol", Net: -7000},
			},
			want: []Suggestion{
				{FromUserID: 3, FromName: "carol", ToUserID: 1, ToName: "alice", Amount: 5000},
				{FromUserID: 3, FromName: "carol", ToUserID: 2, ToName: "bob", Amount: 2000},
			},
		},
		{
			name: "all settled",
			balances: []UserBalance{
				{UserID: 1, Username: "alice", Net: 0},
				{UserID: 2, Username: "bob", Net: 0},
			},
			want: []Suggestion{},
		},
		{
			name: "one-cent residues are ignored",
			balances: []UserBalance{
				{UserID: 1, Username: "alice", Net: 1},
				{UserID: 2, Username: "bob", Net: -1},
			},
			want: []Suggestion{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestSettlements(tt.balances)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d suggestions, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, want := range tt.want {
				if got[i].FromUserID != want.FromUserID || got[i].ToUserID != want.ToUserID || got[i].Amount != want.Amount {
					t.Errorf("suggestion %d = %s->%s %d, want %s->%s %d",
						i, got[i].FromName, got[i].ToName, got[i].Amount,
						want.FromName, want.ToName, want.Amount)
				}
			}
		})
	}
}

// Applying all suggested transfers must bring every member within a cent of
// settled, and the suggestions must never exceed memberCount-1 transfers.
func TestSuggestSettlementsZeroesBalances(t *testing.T) {
	balances := []UserBalance{
		{UserID: 1, Username: "alice", Net: 4201},
		{UserID: 2, Username: "bob", Net: -1134},
		{UserID: 3, Username: "carol", Net: -2500},
		{UserID: 4, Username: "dave", Net: -567},
		{UserID: 5, Username: "erin", Net: 0},
	}

	suggestions := SuggestSettlements(balances)
	if len(suggestions) > len(balances)-1 {
		t.Errorf("got %d suggestions for %d members", len(suggestions), len(balances))
	}

	nets := make(map[int64]money.Cents)
	for _, bal := range balances {
		nets[bal.UserID] = bal.Net
	}
	for _, sug := range suggestions {
		if sug.Amount <= 0 {
			t.Errorf("suggestion %s->%s has non-positive amount %d", sug.FromName, sug.ToName, sug.Amount)
		}
		nets[sug.FromUserID] += sug.Amount
		nets[sug.ToUserID] -= sug.Amount
	}
	for userID, net := range nets {
		if net.Abs() > settleEpsilon {
			t.Errorf("user %d left with net %d after applying all transfers", userID, net)
		}
	}
}

func TestSuggestSettlementsDoesNotMutateInput(t *testing.T) {
	balances := []UserBalance{
		{UserID: 1, Username: "alice", Net: 3000},
		{UserID: 2, Username: "bob", Net: -3000},
	}

	SuggestSettlements(balances)

	if balances[0].Net != 3000 || balances[1].Net != -3000 {
		t.Errorf("input balances mutated: %+v", balances)
	}
}

// Recording the suggested transfers as settlements must leave the group
// with nothing left to suggest.
func TestSuggestionsEmptyAfterSettlingUp(t *testing.T) {
	store := tripStore()
	svc := NewService(store)

	suggestions, err := svc.Suggestions(context.Background(), 1)
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}

	for _, sug := range suggestions {
		store.settlements[1] = append(store.settlements[1], Settlement{
			FromUserID: sug.FromUserID,
			ToUserID:   sug.ToUserID,
			Amount:     sug.Amount,
			CreatedAt:  time.Now().UTC(),
		})
	}

	remaining, err := svc.Suggestions(context.Background(), 1)
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("got %d suggestions after settling up, want 0: %+v", len(remaining), remaining)
	}
}

func TestSuggestionsDescription(t *testing.T) {
	store := tripStore()
	svc := NewService(store)

	suggestions, err := svc.Suggestions(context.Background(), 1)
	if err != nil {
		t.Fatalf("Suggestions() error = %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	if suggestions[0].Description != "bob pays alice $30.00" {
		t.Errorf("Description = %q, want %q", suggestions[0].Description, "bob pays alice $30.00")
	}
}
