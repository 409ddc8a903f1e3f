// Package money keeps every monetary value as an integer count of paise.
// Conversions to and from rupee decimals happen only at I/O boundaries.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a value in paise (1/100 rupee).
type Amount int64

// Tolerance is the single rounding allowance used when deciding whether a
// balance is settled: one rupee.
const Tolerance Amount = 100

var hundred = decimal.NewFromInt(100)

// Parse reads a rupee decimal string such as "1250.50".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Mul(hundred).Round(0).IntPart())
}

// FromFloat converts a rupee float (spreadsheet cells, legacy payloads).
func FromFloat(f float64) Amount {
	return FromDecimal(decimal.NewFromFloat(f))
}

func Rupees(r int64) Amount {
	return Amount(r * 100)
}

func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// Percent returns pct percent of a, rounded half away from zero.
func (a Amount) Percent(pct int64) Amount {
	return FromDecimal(a.Decimal().Mul(decimal.NewFromInt(pct)).Div(hundred))
}

// Settled reports whether an outstanding balance is within Tolerance of zero.
func Settled(pending Amount) bool {
	return pending <= Tolerance
}

// Outstanding is max(0, total-paid) with anything inside Tolerance forced to
// zero.
func Outstanding(total, paid Amount) Amount {
	pending := total - paid
	if Settled(pending) {
		return 0
	}
	return pending
}

func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}

// MarshalJSON writes rupees with two decimals, e.g. 1250.50.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts rupees as a JSON number or a numeric string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("invalid amount %s: %w", b, err)
	}
	*a = FromDecimal(d)
	return nil
}
