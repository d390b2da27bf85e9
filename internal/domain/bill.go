package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	billWidth       = 40
	totalLabelWidth = 32
)

type BillLineItem struct {
	Description string
	Quantity    int
	UnitPrice   Price
	TotalPrice  Price
}

// Bill is an immutable snapshot of an order at generation time.
type Bill struct {
	OrderID     OrderID
	Items       []BillLineItem
	TotalAmount Price
	TableNumber *int
	GeneratedAt time.Time
}

// FormatAsText renders the bill as a fixed-width printable receipt.
func (b Bill) FormatAsText() string {
	var sb strings.Builder
	rule := strings.Repeat("=", billWidth)
	thin := strings.Repeat("-", billWidth)

	sb.WriteString(rule + "\n")
	sb.WriteString("              ITEMISED BILL\n")
	sb.WriteString(rule + "\n")
	if b.TableNumber != nil {
		fmt.Fprintf(&sb, "Table: %d\n", *b.TableNumber)
	}
	sb.WriteString(thin + "\n")

	for _, item := range b.Items {
		writeLineItem(&sb, item)
	}

	sb.WriteString(thin + "\n")
	label := "TOTAL:"
	if len(label) < totalLabelWidth {
		label += strings.Repeat(" ", totalLabelWidth-len(label))
	}
	sb.WriteString(label + b.TotalAmount.String() + "\n")
	sb.WriteString(rule + "\n")
	sb.WriteString("Thank you for your visit!\n")
	return sb.String()
}

func writeLineItem(sb *strings.Builder, item BillLineItem) {
	qty := fmt.Sprintf("%dx", item.Quantity)
	price := item.TotalPrice.String()
	fmt.Fprintf(sb, "%s %s %s\n", qty, fitDescription(item.Description, qty, price), price)
	if item.Quantity > 1 {
		fmt.Fprintf(sb, "   @ %s each\n", item.UnitPrice)
	}
}

// fitDescription pads or truncates the description so the line fits the
// receipt width. All measuring is in runes; a price too wide to leave
// room collapses the description rather than overflowing or slicing
// negatively.
func fitDescription(description, qty, price string) string {
	available := billWidth - len([]rune(qty)) - len([]rune(price)) - 4
	if available < 1 {
		available = 1
	}
	runes := []rune(description)
	if len(runes) > available {
		if available <= 3 {
			return string(runes[:available])
		}
		return string(runes[:available-3]) + "..."
	}
	return description + strings.Repeat(" ", available-len(runes))
}
