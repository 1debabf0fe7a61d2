package service

import (
	"fmt"
	"strings"

	"github.com/sangkips/retail-pos/internal/domain/entity"
)

const (
	currency       = "EUR"
	receiptWidth   = 50
	receiptTimeFmt = "02.01.2006 15:04:05"
)

// RenderReceipt produces the plain-text receipt stored next to the serialized form.
// The output depends only on the receipt and store name.
func RenderReceipt(storeName string, r *entity.Receipt) string {
	var sb strings.Builder
	heavy := strings.Repeat("=", receiptWidth)
	light := strings.Repeat("-", receiptWidth)

	sb.WriteString(heavy + "\n")
	if storeName != "" {
		sb.WriteString(storeName + "\n")
	}
	fmt.Fprintf(&sb, "RECEIPT #%d\n", r.Number())
	sb.WriteString(heavy + "\n")
	fmt.Fprintf(&sb, "Cashier: %s (%s)\n", r.Cashier().Name, r.Cashier().ID)
	fmt.Fprintf(&sb, "Date and time: %s\n", r.IssuedAt().Format(receiptTimeFmt))
	sb.WriteString(light + "\n")
	sb.WriteString("ARTICLES:\n")
	sb.WriteString(light + "\n")
	for _, line := range r.Lines() {
		fmt.Fprintf(&sb, "%s x %d @ %s %s = %s %s\n",
			line.Product().Name, line.Quantity(),
			line.UnitPrice().StringFixed(2), currency,
			line.LineTotal().StringFixed(2), currency)
	}
	sb.WriteString(light + "\n")
	fmt.Fprintf(&sb, "SUM: %s %s\n", r.TotalAmount().StringFixed(2), currency)
	fmt.Fprintf(&sb, "PAID: %s %s\n", r.Payment().StringFixed(2), currency)
	fmt.Fprintf(&sb, "CHANGE: %s %s\n", r.Change().StringFixed(2), currency)
	sb.WriteString(heavy + "\n")
	return sb.String()
}
