package split

import (
	"errors"
	"testing"

	"github.com/mzahrani/splitledger/pkg/money"
)

func sum(shares []Share) money.Cents {
	var total money.Cents
	for _, s := range shares {
		total += s.Amount
	}
	return total
}

func TestComputeEqual(t *testing.T) {
	tests := []struct {
		name         string
		amount       money.Cents
		participants []int64
		want         []money.Cents
	}{
		{
			name:         "divides evenly",
			amount:       9000,
			participants: []int64{1, 2, 3},
			want:         []money.Cents{3000, 3000, 3000},
		},
		{
			name:         "remainder goes to first participants in order",
			amount:       100,
			participants: []int64{1, 2, 3},
			want:         []money.Cents{34, 33, 33},
		},
		{
			name:         "two cents remainder",
			amount:       1001,
			participants: []int64{10, 20, 30},
			want:         []money.Cents{334, 334, 333},
		},
		{
			name:         "single participant takes everything",
			amount:       555,
			participants: []int64{7},
			want:         []money.Cents{555},
		},
		{
			name:         "zero amount",
			amount:       0,
			participants: []int64{1, 2},
			want:         []money.Cents{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Compute(Request{
				Amount:       tt.amount,
				Type:         TypeEqual,
				Participants: tt.participants,
			})
			if err != nil {
				t.Fatalf("Compute failed: %v", err)
			}
			if len(shares) != len(tt.want) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.want))
			}
			for i, want := range tt.want {
				if shares[i].Amount != want {
					t.Errorf("share[%d] = %d, want %d", i, shares[i].Amount, want)
				}
				if shares[i].ParticipantID != tt.participants[i] {
					t.Errorf("share[%d] participant = %d, want %d", i, shares[i].ParticipantID, tt.participants[i])
				}
			}
			if sum(shares) != tt.amount {
				t.Errorf("shares sum to %d, want %d", sum(shares), tt.amount)
			}
		})
	}
}

func TestComputeUnequal(t *testing.T) {
	shares, err := Compute(Request{
		Amount:       money.Cents(10000),
		Type:         TypeUnequal,
		Participants: []int64{1, 2, 3},
		Amounts:      []float64{50.00, 30.00, 20.00},
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	want := []money.Cents{5000, 3000, 2000}
	for i, w := range want {
		if shares[i].Amount != w {
			t.Errorf("share[%d] = %d, want %d", i, shares[i].Amount, w)
		}
	}
}

func TestComputeUnequalAbsorbsRoundingResidue(t *testing.T) {
	// Entries round to 3333 + 3333 + 3333 = 9999; the missing cent is
	// absorbed by the first participant.
	shares, err := Compute(Request{
		Amount:       money.Cents(10000),
		Type:         TypeUnequal,
		Participants: []int64{1, 2, 3},
		Amounts:      []float64{33.33, 33.33, 33.33},
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if shares[0].Amount != 3334 {
		t.Errorf("first share = %d, want 3334", shares[0].Amount)
	}
	if sum(shares) != 10000 {
		t.Errorf("shares sum to %d, want 10000", sum(shares))
	}
}

func TestComputePercentLargestRemainder(t *testing.T) {
	// $10.00 at [33.33, 33.33, 33.34]
	shares, err := Compute(Request{
		Amount:       money.Cents(1000),
		Type:         TypePercent,
		Participants: []int64{1, 2, 3},
		Percents:     []float64{33.33, 33.33, 33.34},
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if sum(shares) != 1000 {
		t.Errorf("shares sum to %d, want 1000", sum(shares))
	}
	// 333.3, 333.3, 333.4 → floors 333 each, remainder 1 cent goes to the
	// largest fractional part (the third participant).
	want := []money.Cents{333, 333, 334}
	for i, w := range want {
		if shares[i].Amount != w {
			t.Errorf("share[%d] = %d, want %d", i, shares[i].Amount, w)
		}
	}
}

func TestComputePercentTiesBrokenByInputOrder(t *testing.T) {
	// 25/25/25/25 over 101 cents: each exact share is 25.25, all fractions
	// tie, the extra cent goes to the first participant.
	shares, err := Compute(Request{
		Amount:       money.Cents(101),
		Type:         TypePercent,
		Participants: []int64{4, 3, 2, 1},
		Percents:     []float64{25, 25, 25, 25},
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	want := []money.Cents{26, 25, 25, 25}
	for i, w := range want {
		if shares[i].Amount != w {
			t.Errorf("share[%d] = %d, want %d", i, shares[i].Amount, w)
		}
	}
}

func TestComputeShares(t *testing.T) {
	tests := []struct {
		name         string
		amount       money.Cents
		participants []int64
		weights      []float64
		want         []money.Cents
	}{
		{
			name:         "proportional weights",
			amount:       9000,
			participants: []int64{1, 2, 3},
			weights:      []float64{2, 1, 1},
			want:         []money.Cents{4500, 2250, 2250},
		},
		{
			name:         "remainder to largest fraction",
			amount:       100,
			participants: []int64{1, 2, 3},
			weights:      []float64{1, 1, 1},
			want:         []money.Cents{34, 33, 33},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Compute(Request{
				Amount:       tt.amount,
				Type:         TypeShares,
				Participants: tt.participants,
				Weights:      tt.weights,
			})
			if err != nil {
				t.Fatalf("Compute failed: %v", err)
			}
			for i, w := range tt.want {
				if shares[i].Amount != w {
					t.Errorf("share[%d] = %d, want %d", i, shares[i].Amount, w)
				}
			}
			if sum(shares) != tt.amount {
				t.Errorf("shares sum to %d, want %d", sum(shares), tt.amount)
			}
		})
	}
}

func TestComputeValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "no participants",
			req:     Request{Amount: 100, Type: TypeEqual},
			wantErr: ErrNoParticipants,
		},
		{
			name:    "negative amount",
			req:     Request{Amount: -100, Type: TypeEqual, Participants: []int64{1}},
			wantErr: ErrNegativeAmount,
		},
		{
			name: "percent sum over 100",
			req: Request{
				Amount: 1000, Type: TypePercent,
				Participants: []int64{1, 2, 3},
				Percents:     []float64{50, 50, 10},
			},
			wantErr: ErrPercentSum,
		},
		{
			name: "unequal length mismatch",
			req: Request{
				Amount: 1000, Type: TypeUnequal,
				Participants: []int64{1, 2, 3},
				Amounts:      []float64{5.00, 5.00},
			},
			wantErr: ErrLengthMismatch,
		},
		{
			name: "unequal amounts off by more than a cent",
			req: Request{
				Amount: 1000, Type: TypeUnequal,
				Participants: []int64{1, 2},
				Amounts:      []float64{5.00, 4.50},
			},
			wantErr: ErrAmountMismatch,
		},
		{
			name: "zero weight",
			req: Request{
				Amount: 1000, Type: TypeShares,
				Participants: []int64{1, 2},
				Weights:      []float64{0, 5},
			},
			wantErr: ErrNonPositiveWeight,
		},
		{
			name: "percent out of range",
			req: Request{
				Amount: 1000, Type: TypePercent,
				Participants: []int64{1, 2},
				Percents:     []float64{-10, 110},
			},
			wantErr: ErrPercentOutOfRange,
		},
		{
			name: "unknown type",
			req: Request{
				Amount: 1000, Type: Type("RANDOM"),
				Participants: []int64{1},
			},
			wantErr: ErrUnknownType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Compute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestComputeSumInvariant(t *testing.T) {
	// Awkward amounts and participant counts across all types; the shares
	// must always sum exactly to the total.
	amounts := []money.Cents{1, 7, 99, 100, 101, 333, 999, 1000, 123457}
	for _, amount := range amounts {
		for n := 1; n <= 7; n++ {
			participants := make([]int64, n)
			percents := make([]float64, n)
			weights := make([]float64, n)
			for i := range participants {
				participants[i] = int64(i + 1)
				percents[i] = 100 / float64(n)
				weights[i] = float64(i + 1)
			}

			reqs := []Request{
				{Amount: amount, Type: TypeEqual, Participants: participants},
				{Amount: amount, Type: TypePercent, Participants: participants, Percents: percents},
				{Amount: amount, Type: TypeShares, Participants: participants, Weights: weights},
			}
			for _, req := range reqs {
				shares, err := Compute(req)
				if err != nil {
					t.Fatalf("%s amount=%d n=%d: %v", req.Type, amount, n, err)
				}
				if sum(shares) != amount {
					t.Errorf("%s amount=%d n=%d: shares sum to %d", req.Type, amount, n, sum(shares))
				}
			}
		}
	}
}

func TestComputePercentageOutput(t *testing.T) {
	shares, err := Compute(Request{
		Amount:       money.Cents(1000),
		Type:         TypeEqual,
		Participants: []int64{1, 2},
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if shares[0].Percentage != 50 || shares[1].Percentage != 50 {
		t.Errorf("percentages = %v, %v; want 50, 50", shares[0].Percentage, shares[1].Percentage)
	}

	// Percentage is defined as 0 for a zero-amount expense
	zero, err := Compute(Request{
		Amount:       0,
		Type:         TypeEqual,
		Participants: []int64{1},
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if zero[0].Percentage != 0 {
		t.Errorf("zero-amount percentage = %v, want 0", zero[0].Percentage)
	}
}
