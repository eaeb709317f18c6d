package balance

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHistoryWindow(t *testing.T) {
	svc := NewService(tripStore())

	history, err := svc.History(context.Background(), 1, 2, 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 30 {
		t.Fatalf("got %d entries, want 30", len(history))
	}

	for i := 1; i < len(history); i++ {
		if !history[i].Date.After(history[i-1].Date) {
			t.Errorf("entry %d date %v not after entry %d date %v",
				i, history[i].Date, i-1, history[i-1].Date)
		}
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !history[len(history)-1].Date.Equal(today) {
		t.Errorf("last entry date = %v, want %v", history[len(history)-1].Date, today)
	}
}

func TestHistoryEndsAtCurrentNet(t *testing.T) {
	store := tripStore()
	store.settlements[1] = []Settlement{
		{FromUserID: 2, ToUserID: 1, Amount: 1000, CreatedAt: time.Now().UTC().AddDate(0, 0, -5)},
	}
	svc := NewService(store)

	history, err := svc.History(context.Background(), 1, 2, 30)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}

	bal, err := svc.MemberBalance(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("MemberBalance() error = %v", err)
	}

	last := history[len(history)-1]
	if last.Net != bal.Net {
		t.Errorf("final history net = %d, member net = %d", last.Net, bal.Net)
	}
}

func TestHistoryOpeningBalance(t *testing.T) {
	store := newFakeStore()
	store.groups[1] = &Group{ID: 1, Name: "Trip", CurrencyCode: "USD"}
	store.members[1] = []Member{
		{UserID: 1, Username: "alice"},
		{UserID: 2, Username: "bob"},
	}
	// Expense well before the window: its net carries into day one.
	old := time.Now().UTC().AddDate(0, 0, -60)
	store.expenses[1] = []Expense{
		{ID: 10, PayerID: 1, Amount: 5000, SpentAt: old},
	}
	store.shares[1] = []Share{
		{ExpenseID: 10, ParticipantID: 1, Amount: 2500},
		{ExpenseID: 10, ParticipantID: 2, Amount: 2500},
	}
	svc := NewService(store)

	history, err := svc.History(context.Background(), 1, 1, 30)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}

	first := history[0]
	if first.Net != 2500 {
		t.Errorf("first entry net = %d, want 2500", first.Net)
	}
	if first.Credits != 0 || first.Debits != 0 {
		t.Errorf("first entry has in-window activity: credits %d, debits %d", first.Credits, first.Debits)
	}
}

func TestHistoryDayActivity(t *testing.T) {
	store := newFakeStore()
	store.groups[1] = &Group{ID: 1, Name: "Trip", CurrencyCode: "USD"}
	store.members[1] = []Member{
		{UserID: 1, Username: "alice"},
		{UserID: 2, Username: "bob"},
	}
	spent := time.Now().UTC().AddDate(0, 0, -3)
	store.expenses[1] = []Expense{
		{ID: 10, PayerID: 1, Amount: 4000, SpentAt: spent},
	}
	store.shares[1] = []Share{
		{ExpenseID: 10, ParticipantID: 1, Amount: 2000},
		{ExpenseID: 10, ParticipantID: 2, Amount: 2000},
	}
	svc := NewService(store)

	history, err := svc.History(context.Background(), 1, 1, 30)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}

	spentDay := spent.Truncate(24 * time.Hour)
	var found bool
	for _, entry := range history {
		if entry.Date.Equal(spentDay) {
			found = true
			if entry.Credits != 4000 || entry.Debits != 2000 {
				t.Errorf("spend day = credits %d, debits %d; want 4000, 2000", entry.Credits, entry.Debits)
			}
			if entry.Net != 2000 {
				t.Errorf("spend day net = %d, want 2000", entry.Net)
			}
		} else if entry.Date.Before(spentDay) {
			if entry.Net != 0 || entry.Credits != 0 || entry.Debits != 0 {
				t.Errorf("pre-spend day %v has activity: %+v", entry.Date, entry)
			}
		} else {
			if entry.Net != 2000 {
				t.Errorf("post-spend day %v net = %d, want 2000", entry.Date, entry.Net)
			}
		}
	}
	if !found {
		t.Fatalf("no entry for spend day %v", spentDay)
	}
}

// Expenses can be created with a future spent_at; they still count toward
// the member's net, so the last day absorbs them.
func TestHistoryFutureDatedActivity(t *testing.T) {
	store := newFakeStore()
	store.groups[1] = &Group{ID: 1, Name: "Trip", CurrencyCode: "USD"}
	store.members[1] = []Member{
		{UserID: 1, Username: "alice"},
		{UserID: 2, Username: "bob"},
	}
	future := time.Now().UTC().AddDate(0, 0, 3)
	store.expenses[1] = []Expense{
		{ID: 10, PayerID: 1, Amount: 4000, SpentAt: future},
	}
	store.shares[1] = []Share{
		{ExpenseID: 10, ParticipantID: 1, Amount: 2000},
		{ExpenseID: 10, ParticipantID: 2, Amount: 2000},
	}
	svc := NewService(store)

	history, err := svc.History(context.Background(), 1, 1, 30)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 30 {
		t.Fatalf("got %d entries, want 30", len(history))
	}

	bal, err := svc.MemberBalance(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("MemberBalance() error = %v", err)
	}

	last := history[len(history)-1]
	if last.Net != bal.Net {
		t.Errorf("final history net = %d, member net = %d", last.Net, bal.Net)
	}
	if last.Credits != 4000 || last.Debits != 2000 {
		t.Errorf("last day = credits %d, debits %d; want 4000, 2000", last.Credits, last.Debits)
	}
}

func TestHistoryNoActivity(t *testing.T) {
	store := newFakeStore()
	store.groups[1] = &Group{ID: 1, Name: "Quiet", CurrencyCode: "USD"}
	store.members[1] = []Member{{UserID: 1, Username: "alice"}}
	svc := NewService(store)

	history, err := svc.History(context.Background(), 1, 1, 30)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 30 {
		t.Fatalf("got %d entries, want 30", len(history))
	}
	for _, entry := range history {
		if entry.Net != 0 || entry.Credits != 0 || entry.Debits != 0 {
			t.Errorf("day %v has activity in an empty ledger: %+v", entry.Date, entry)
		}
	}
}

func TestHistoryErrors(t *testing.T) {
	svc := NewService(tripStore())

	if _, err := svc.History(context.Background(), 99, 1, 30); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("History() error = %v, want ErrGroupNotFound", err)
	}
	if _, err := svc.History(context.Background(), 1, 99, 30); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("History() error = %v, want ErrMemberNotFound", err)
	}
}
