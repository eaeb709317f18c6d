package balance

import (
	"context"
	"time"

	"github.com/mzahrani/splitledger/pkg/money"
)

// defaultHistoryDays is the window used when the caller does not ask for a
// specific length.
const defaultHistoryDays = 30

// History projects one member's balance over the last `days` UTC calendar
// days, ending today. Each entry carries that day's credits and debits and
// the cumulative net, so the final entry's Net equals the member's current
// net balance. Shares are dated by their expense's spent_at.
func (s *Service) History(ctx context.Context, groupID, userID int64, days int) ([]DayBalance, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}

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
	isMember := false
	for _, m := range members {
		if m.UserID == userID {
			isMember = true
			break
		}
	}
	if !isMember {
		return nil, ErrMemberNotFound
	}

	expenses, err := s.store.Expenses(ctx, groupID)
	if err != nil {
		return nil, err
	}
	shares, err := s.store.Shares(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.Settlements(ctx, groupID)
	if err != nil {
		return nil, err
	}

	spentAt := make(map[int64]time.Time, len(expenses))
	for _, e := range expenses {
		spentAt[e.ID] = e.SpentAt
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(days - 1))

	type dayDelta struct {
		credits money.Cents
		debits  money.Cents
		net     money.Cents
	}
	deltas := make(map[time.Time]*dayDelta, days)
	// Future-dated rows (spent_at may be ahead of today) fold into the last
	// day so the series still ends at the member's current net.
	dayOf := func(t time.Time) time.Time {
		day := t.UTC().Truncate(24 * time.Hour)
		if day.After(today) {
			return today
		}
		return day
	}
	deltaFor := func(day time.Time) *dayDelta {
		d, ok := deltas[day]
		if !ok {
			d = &dayDelta{}
			deltas[day] = d
		}
		return d
	}

	// Activity before the window rolls up into the opening net so the
	// series ends at the member's current balance.
	var opening money.Cents

	for _, e := range expenses {
		if e.PayerID != userID {
			continue
		}
		day := dayOf(e.SpentAt)
		if day.Before(start) {
			opening += e.Amount
			continue
		}
		d := deltaFor(day)
		d.credits += e.Amount
		d.net += e.Amount
	}

	for _, sh := range shares {
		if sh.ParticipantID != userID {
			continue
		}
		when, ok := spentAt[sh.ExpenseID]
		if !ok {
			continue
		}
		day := dayOf(when)
		if day.Before(start) {
			opening -= sh.Amount
			continue
		}
		d := deltaFor(day)
		d.debits += sh.Amount
		d.net -= sh.Amount
	}

	for _, st := range settlements {
		// Receiving a settlement reduces what the member is owed; paying
		// one reduces what they owe.
		var delta money.Cents
		switch userID {
		case st.ToUserID:
			delta = -st.Amount
		case st.FromUserID:
			delta = st.Amount
		default:
			continue
		}
		day := dayOf(st.CreatedAt)
		if day.Before(start) {
			opening += delta
			continue
		}
		deltaFor(day).net += delta
	}

	history := make([]DayBalance, 0, days)
	running := opening
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		entry := DayBalance{Date: day}
		if d, ok := deltas[day]; ok {
			entry.Credits = d.credits
			entry.Debits = d.debits
			running += d.net
		}
		entry.Net = running
		history = append(history, entry)
	}

	return history, nil
}
