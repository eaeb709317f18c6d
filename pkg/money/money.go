// Package money provides integer minor-unit (cent) arithmetic for monetary
// amounts. Amounts cross the API and database boundaries as decimal major
// units and are converted to Cents immediately on entry, so all ledger math
// is exact integer arithmetic.
package money

import (
	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in integer minor units (e.g. cents of a dollar).
type Cents int64

// FromFloat converts a major-unit amount (e.g. 12.345) to Cents, rounding
// half away from zero at the cent boundary.
func FromFloat(amount float64) Cents {
	return FromDecimal(decimal.NewFromFloat(amount))
}

// FromDecimal converts a major-unit decimal to Cents, rounding half away
// from zero at the cent boundary.
func FromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Shift(2).Round(0).IntPart())
}

// FromString parses a major-unit decimal string (e.g. "12.34") into Cents.
func FromString(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return FromDecimal(d), nil
}

// Decimal returns the amount as a major-unit decimal (12.34 for 1234 cents).
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Float returns the amount in major units as a float64. Only for use at the
// JSON boundary; never feed the result back into ledger arithmetic.
func (c Cents) Float() float64 {
	f, _ := c.Decimal().Float64()
	return f
}

// String returns the amount in major units with two decimal places, e.g. "12.34".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Format returns the amount as a dollar string, e.g. "$12.34" or "-$3.00".
func (c Cents) Format() string {
	if c < 0 {
		return "-$" + (-c).Decimal().StringFixed(2)
	}
	return "$" + c.Decimal().StringFixed(2)
}

// Abs returns the absolute value of the amount.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}
