// Package split computes per-participant shares of an expense in integer
// cents. Whatever the split type, the returned shares always sum exactly to
// the expense amount; rounding remainders are distributed deterministically.
package split

import (
	"errors"
	"math"

	"github.com/mzahrani/splitledger/pkg/money"
)

// Type identifies the split computation to apply. The set is closed:
// Compute dispatches with an exhaustive switch and rejects anything else.
type Type string

const (
	TypeEqual   Type = "EQUAL"   // amount divided evenly, remainder cents front-loaded
	TypeUnequal Type = "UNEQUAL" // caller supplies explicit per-participant amounts
	TypePercent Type = "PERCENT" // caller supplies percentages summing to 100
	TypeShares  Type = "SHARES"  // caller supplies positive weights
)

// Common errors
var (
	ErrNoParticipants    = errors.New("at least one participant is required")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
	ErrLengthMismatch    = errors.New("split values must match participant count")
	ErrPercentSum        = errors.New("percentages must sum to 100")
	ErrPercentOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrNonPositiveWeight = errors.New("weights must be greater than zero")
	ErrAmountMismatch    = errors.New("amounts must sum to the expense total")
	ErrUnknownType       = errors.New("unknown split type")

	// ErrShareSumMismatch signals a defect in the engine itself, not bad
	// input: computed shares failed the exact-sum invariant.
	ErrShareSumMismatch = errors.New("computed shares do not sum to the expense total")
)

// Request describes one expense to be split among participants.
// Amounts, Percents and Weights are the auxiliary inputs for UNEQUAL,
// PERCENT and SHARES respectively; when required they must have the same
// length as Participants.
type Request struct {
	Amount       money.Cents
	Type         Type
	Participants []int64
	Amounts      []float64 // UNEQUAL: per-participant amounts in major units
	Percents     []float64 // PERCENT: per-participant percentages
	Weights      []float64 // SHARES: per-participant weights
}

// Share is one participant's computed portion of an expense.
type Share struct {
	ParticipantID int64
	Amount        money.Cents
	Percentage    float64
}

// Compute calculates each participant's share for the request. The returned
// shares are in participant input order and sum exactly to req.Amount.
func Compute(req Request) ([]Share, error) {
	if len(req.Participants) == 0 {
		return nil, ErrNoParticipants
	}
	if req.Amount < 0 {
		return nil, ErrNegativeAmount
	}

	var (
		amounts []money.Cents
		err     error
	)
	switch req.Type {
	case TypeEqual:
		amounts = computeEqual(req.Amount, len(req.Participants))
	case TypeUnequal:
		amounts, err = computeUnequal(req.Amount, req.Participants, req.Amounts)
	case TypePercent:
		amounts, err = computePercent(req.Amount, req.Participants, req.Percents)
	case TypeShares:
		amounts, err = computeShares(req.Amount, req.Participants, req.Weights)
	default:
		return nil, ErrUnknownType
	}
	if err != nil {
		return nil, err
	}

	var total money.Cents
	for _, a := range amounts {
		total += a
	}
	if total != req.Amount {
		return nil, ErrShareSumMismatch
	}

	shares := make([]Share, len(req.Participants))
	for i, id := range req.Participants {
		shares[i] = Share{
			ParticipantID: id,
			Amount:        amounts[i],
			Percentage:    percentage(amounts[i], req.Amount),
		}
	}
	return shares, nil
}

// computeEqual divides the amount evenly; the remainder is distributed one
// cent at a time to the earliest participants in input order.
func computeEqual(amount money.Cents, n int) []money.Cents {
	base := amount / money.Cents(n)
	remainder := amount - base*money.Cents(n)

	amounts := make([]money.Cents, n)
	for i := range amounts {
		amounts[i] = base
		if money.Cents(i) < remainder {
			amounts[i]++
		}
	}
	return amounts
}

// computeUnequal rounds each caller-supplied amount to the nearest cent and
// verifies the total matches within one cent. A 1-cent rounding residue is
// absorbed by the first participant.
func computeUnequal(amount money.Cents, participants []int64, values []float64) ([]money.Cents, error) {
	if len(values) != len(participants) {
		return nil, ErrLengthMismatch
	}

	amounts := make([]money.Cents, len(values))
	var total money.Cents
	for i, v := range values {
		if v < 0 {
			return nil, ErrNegativeAmount
		}
		amounts[i] = money.FromFloat(v)
		total += amounts[i]
	}

	diff := amount - total
	if diff.Abs() > 1 {
		return nil, ErrAmountMismatch
	}
	amounts[0] += diff

	return amounts, nil
}

// percentage reports a share as a percentage of the total, rounded to two
// decimal places. Defined as 0 when the total is 0.
func percentage(share, total money.Cents) float64 {
	if total == 0 {
		return 0
	}
	p := float64(share) / float64(total) * 100
	return math.Round(p*100) / 100
}
