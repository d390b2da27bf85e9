package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Unit is the measurement unit a stock quantity is counted in.
type Unit string

const (
	UnitBottles     Unit = "bottles"
	UnitLiters      Unit = "liters"
	UnitMilliliters Unit = "ml"
	UnitKilograms   Unit = "kg"
	UnitGrams       Unit = "g"
	UnitPieces      Unit = "pieces"
	UnitBoxes       Unit = "boxes"
	UnitCases       Unit = "cases"
)

// Quantity is an immutable non-negative amount tagged with a unit.
// All arithmetic and comparison requires both operands to carry the
// same unit; mismatches fail instead of coercing.
type Quantity struct {
	amount decimal.Decimal
	unit   Unit
}

func NewQuantity(amount decimal.Decimal, unit Unit) (Quantity, error) {
	if amount.IsNegative() {
		return Quantity{}, &InvalidQuantityError{
			Reason: fmt.Sprintf("quantity amount cannot be negative: %s", amount),
		}
	}
	return Quantity{amount: amount, unit: unit}, nil
}

func QuantityFromFloat(amount float64, unit Unit) (Quantity, error) {
	return NewQuantity(decimal.NewFromFloat(amount), unit)
}

// MustQuantity panics on a negative amount. Intended for seed data and
// fixtures where the amount is a literal.
func MustQuantity(amount float64, unit Unit) Quantity {
	q, err := QuantityFromFloat(amount, unit)
	if err != nil {
		panic(err)
	}
	return q
}

func ZeroQuantity(unit Unit) Quantity {
	return Quantity{amount: decimal.Zero, unit: unit}
}

func (q Quantity) Amount() decimal.Decimal { return q.amount }
func (q Quantity) Unit() Unit              { return q.unit }

func (q Quantity) IsZero() bool { return q.amount.IsZero() }

func (q Quantity) Add(other Quantity) (Quantity, error) {
	if err := q.requireSameUnit(other); err != nil {
		return Quantity{}, err
	}
	return Quantity{amount: q.amount.Add(other.amount), unit: q.unit}, nil
}

func (q Quantity) Sub(other Quantity) (Quantity, error) {
	if err := q.requireSameUnit(other); err != nil {
		return Quantity{}, err
	}
	result := q.amount.Sub(other.amount)
	if result.IsNegative() {
		return Quantity{}, &InvalidQuantityError{
			Reason: fmt.Sprintf("cannot subtract %s from %s: would result in negative quantity", other, q),
		}
	}
	return Quantity{amount: result, unit: q.unit}, nil
}

// Cmp returns -1, 0 or 1 as q is less than, equal to or greater than other.
func (q Quantity) Cmp(other Quantity) (int, error) {
	if err := q.requireSameUnit(other); err != nil {
		return 0, err
	}
	return q.amount.Cmp(other.amount), nil
}

func (q Quantity) LessThanOrEqual(other Quantity) (bool, error) {
	c, err := q.Cmp(other)
	return c <= 0, err
}

func (q Quantity) GreaterThan(other Quantity) (bool, error) {
	c, err := q.Cmp(other)
	return c > 0, err
}

func (q Quantity) requireSameUnit(other Quantity) error {
	if q.unit != other.unit {
		return &InvalidQuantityError{
			Reason: fmt.Sprintf("cannot operate on quantities with different units: %s vs %s", q.unit, other.unit),
		}
	}
	return nil
}

func (q Quantity) String() string {
	return fmt.Sprintf("%s %s", q.amount.StringFixed(2), q.unit)
}
