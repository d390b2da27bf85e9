package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// JSON shapes for the value types, used when events are published to the
// broker and when they are stored in the audit table. Amounts travel as
// strings to keep decimal precision intact.

type quantityJSON struct {
	Amount string `json:"amount"`
	Unit   Unit   `json:"unit"`
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(quantityJSON{Amount: q.amount.String(), Unit: q.unit})
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var raw quantityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(raw.Amount)
	if err != nil {
		return err
	}
	parsed, err := NewQuantity(amount, raw.Unit)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

type priceJSON struct {
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(priceJSON{Amount: p.amount.String(), Currency: p.currency})
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var raw priceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(raw.Amount)
	if err != nil {
		return err
	}
	parsed, err := NewPrice(amount, raw.Currency)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
