package split

import (
	"math"
	"sort"

	"github.com/mzahrani/splitledger/pkg/money"
)

// computePercent allocates the amount by caller-supplied percentages.
// Percentages must sum to 100 within 0.01. Shares are floored, then the
// leftover cents go to the largest fractional remainders first.
func computePercent(amount money.Cents, participants []int64, percents []float64) ([]money.Cents, error) {
	if len(percents) != len(participants) {
		return nil, ErrLengthMismatch
	}

	var totalPercent float64
	for _, p := range percents {
		if p < 0 || p > 100 {
			return nil, ErrPercentOutOfRange
		}
		totalPercent += p
	}
	if math.Abs(totalPercent-100) > 0.01 {
		return nil, ErrPercentSum
	}

	proportions := make([]float64, len(percents))
	for i, p := range percents {
		proportions[i] = p / 100
	}
	return apportion(amount, proportions), nil
}

// computeShares allocates the amount proportionally to positive weights,
// using the same floor-then-largest-remainder distribution as percentages.
func computeShares(amount money.Cents, participants []int64, weights []float64) ([]money.Cents, error) {
	if len(weights) != len(participants) {
		return nil, ErrLengthMismatch
	}

	var totalWeight float64
	for _, w := range weights {
		if w <= 0 {
			return nil, ErrNonPositiveWeight
		}
		totalWeight += w
	}
	if totalWeight <= 0 {
		return nil, ErrNonPositiveWeight
	}

	proportions := make([]float64, len(weights))
	for i, w := range weights {
		proportions[i] = w / totalWeight
	}
	return apportion(amount, proportions), nil
}

// apportion splits the amount by the given proportions using largest-remainder
// (Hamilton) rounding: floor every share, then hand out the remaining cents to
// the largest fractional parts first, ties broken by input order.
func apportion(amount money.Cents, proportions []float64) []money.Cents {
	n := len(proportions)
	amounts := make([]money.Cents, n)
	fractions := make([]float64, n)

	var allocated money.Cents
	for i, p := range proportions {
		exact := float64(amount) * p
		base := math.Floor(exact)
		amounts[i] = money.Cents(base)
		fractions[i] = exact - base
		allocated += amounts[i]
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fractions[order[a]] > fractions[order[b]]
	})

	// remainder is normally in [0, n); the loops also repair any drift the
	// input tolerances let through, so the exact-sum invariant always holds.
	remainder := amount - allocated
	for k := 0; remainder > 0; k++ {
		amounts[order[k%n]]++
		remainder--
	}
	for k := 0; remainder < 0; k++ {
		amounts[order[n-1-k%n]]--
		remainder++
	}

	return amounts
}
