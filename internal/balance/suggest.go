package balance

import (
	"fmt"
	"sort"

	"github.com/mzahrani/splitledger/pkg/money"
)

// settleEpsilon is the threshold below which a residual balance is
// considered settled. Rounding during split computation can leave members
// a cent apart even when everyone has paid up.
const settleEpsilon = money.Cents(1)

// SuggestSettlements proposes transfers that would bring every member's
// net balance to within a cent of zero. It greedily matches the largest
// debtor against the largest creditor, so the number of transfers never
// exceeds memberCount-1. The input is not modified.
func SuggestSettlements(balances []UserBalance) []Suggestion {
	type party struct {
		userID    int64
		name      string
		remaining money.Cents
	}

	var debtors, creditors []party
	for _, bal := range balances {
		switch {
		case bal.Net < -settleEpsilon:
			debtors = append(debtors, party{bal.UserID, bal.Username, -bal.Net})
		case bal.Net > settleEpsilon:
			creditors = append(creditors, party{bal.UserID, bal.Username, bal.Net})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining > debtors[j].remaining
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining > creditors[j].remaining
	})

	suggestions := []Suggestion{}
	di, ci := 0, 0
	for di < len(debtors) && ci < len(creditors) {
		debtor := &debtors[di]
		creditor := &creditors[ci]

		amount := debtor.remaining
		if creditor.remaining < amount {
			amount = creditor.remaining
		}

		suggestions = append(suggestions, Suggestion{
			FromUserID:  debtor.userID,
			FromName:    debtor.name,
			ToUserID:    creditor.userID,
			ToName:      creditor.name,
			Amount:      amount,
			Description: fmt.Sprintf("%s pays %s %s", debtor.name, creditor.name, amount.Format()),
		})

		debtor.remaining -= amount
		creditor.remaining -= amount
		if debtor.remaining <= settleEpsilon {
			di++
		}
		if creditor.remaining <= settleEpsilon {
			ci++
		}
	}

	return suggestions
}
