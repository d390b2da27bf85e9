package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code. There is no default currency:
// every Price carries its code explicitly.
type Currency string

const (
	GBP Currency = "GBP"
	EUR Currency = "EUR"
	USD Currency = "USD"
)

func (c Currency) Symbol() string {
	switch c {
	case GBP:
		return "£"
	case EUR:
		return "€"
	case USD:
		return "$"
	default:
		return string(c) + " "
	}
}

// Price is an immutable non-negative monetary amount tagged with a
// currency. Arithmetic requires both operands to carry the same currency.
type Price struct {
	amount   decimal.Decimal
	currency Currency
}

func NewPrice(amount decimal.Decimal, currency Currency) (Price, error) {
	if amount.IsNegative() {
		return Price{}, fmt.Errorf("price cannot be negative: %s", amount)
	}
	return Price{amount: amount, currency: currency}, nil
}

func PriceFromFloat(amount float64, currency Currency) (Price, error) {
	return NewPrice(decimal.NewFromFloat(amount), currency)
}

// MustPrice panics on a negative amount. Intended for seed data and
// fixtures where the amount is a literal.
func MustPrice(amount float64, currency Currency) Price {
	p, err := PriceFromFloat(amount, currency)
	if err != nil {
		panic(err)
	}
	return p
}

func ZeroPrice(currency Currency) Price {
	return Price{amount: decimal.Zero, currency: currency}
}

func (p Price) Amount() decimal.Decimal { return p.amount }
func (p Price) Currency() Currency      { return p.currency }

func (p Price) IsZero() bool { return p.amount.IsZero() }

func (p Price) Add(other Price) (Price, error) {
	if p.currency != other.currency {
		return Price{}, fmt.Errorf("cannot add prices with different currencies: %s vs %s", p.currency, other.currency)
	}
	return Price{amount: p.amount.Add(other.amount), currency: p.currency}, nil
}

func (p Price) MulInt(multiplier int) Price {
	return Price{amount: p.amount.Mul(decimal.NewFromInt(int64(multiplier))), currency: p.currency}
}

func (p Price) Cmp(other Price) (int, error) {
	if p.currency != other.currency {
		return 0, fmt.Errorf("cannot compare prices with different currencies: %s vs %s", p.currency, other.currency)
	}
	return p.amount.Cmp(other.amount), nil
}

func (p Price) String() string {
	return p.currency.Symbol() + p.amount.StringFixed(2)
}
