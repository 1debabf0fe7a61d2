package entity

import (
	"encoding/json"
	"time"

	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ReceiptLine is a single priced line on a receipt.
// The unit price is frozen at the time of sale.
type ReceiptLine struct {
	product   ProductSnapshot
	quantity  int
	unitPrice decimal.Decimal
}

// NewReceiptLine creates a receipt line for a positive quantity
func NewReceiptLine(product ProductSnapshot, quantity int, unitPrice decimal.Decimal) (ReceiptLine, error) {
	if quantity <= 0 {
		return ReceiptLine{}, apperror.NewInvalidArgumentError("Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return ReceiptLine{}, apperror.NewInvalidArgumentError("Unit price must not be negative")
	}
	return ReceiptLine{product: product, quantity: quantity, unitPrice: unitPrice}, nil
}

// Product is the product as it was at sale time
func (l ReceiptLine) Product() ProductSnapshot {
	return l.product
}

// Quantity is the number of units sold
func (l ReceiptLine) Quantity() int {
	return l.quantity
}

// UnitPrice is the price charged per unit
func (l ReceiptLine) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

// LineTotal is UnitPrice times Quantity
func (l ReceiptLine) LineTotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

// Receipt is an issued sale. It cannot be changed once built.
type Receipt struct {
	number   int
	cashier  Cashier
	issuedAt time.Time
	lines    []ReceiptLine
	total    decimal.Decimal
	payment  decimal.Decimal
}

// Number is the sequential receipt number
func (r *Receipt) Number() int {
	return r.number
}

// Cashier is the cashier who issued the receipt
func (r *Receipt) Cashier() Cashier {
	return r.cashier
}

// IssuedAt is the time the sale was committed
func (r *Receipt) IssuedAt() time.Time {
	return r.issuedAt
}

// TotalAmount is the sum of all line totals
func (r *Receipt) TotalAmount() decimal.Decimal {
	return r.total
}

// Payment is the amount tendered by the customer
func (r *Receipt) Payment() decimal.Decimal {
	return r.payment
}

// Lines returns a copy of the receipt lines in sale order
func (r *Receipt) Lines() []ReceiptLine {
	lines := make([]ReceiptLine, len(r.lines))
	copy(lines, r.lines)
	return lines
}

// Change is the amount handed back to the customer
func (r *Receipt) Change() decimal.Decimal {
	return r.payment.Sub(r.total)
}

// ReceiptBuilder collects the parts of a receipt before it is issued
type ReceiptBuilder struct {
	number   int
	cashier  *Cashier
	issuedAt time.Time
	lines    []ReceiptLine
	payment  *decimal.Decimal
}

// NewReceiptBuilder creates an empty builder
func NewReceiptBuilder() *ReceiptBuilder {
	return &ReceiptBuilder{}
}

// Number sets the receipt number
func (b *ReceiptBuilder) Number(n int) *ReceiptBuilder {
	b.number = n
	return b
}

// Cashier sets the issuing cashier
func (b *ReceiptBuilder) Cashier(c Cashier) *ReceiptBuilder {
	b.cashier = &c
	return b
}

// IssuedAt sets the issue time
func (b *ReceiptBuilder) IssuedAt(t time.Time) *ReceiptBuilder {
	b.issuedAt = t
	return b
}

// AddLine appends one line
func (b *ReceiptBuilder) AddLine(line ReceiptLine) *ReceiptBuilder {
	b.lines = append(b.lines, line)
	return b
}

// Lines replaces every line collected so far
func (b *ReceiptBuilder) Lines(lines []ReceiptLine) *ReceiptBuilder {
	b.lines = append([]ReceiptLine(nil), lines...)
	return b
}

// Payment sets the amount tendered
func (b *ReceiptBuilder) Payment(amount decimal.Decimal) *ReceiptBuilder {
	b.payment = &amount
	return b
}

// Total sums the lines collected so far
func (b *ReceiptBuilder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range b.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Build validates the collected parts and returns the immutable receipt.
// The issue time defaults to now and the payment defaults to the exact total.
func (b *ReceiptBuilder) Build() (*Receipt, error) {
	if b.number <= 0 {
		return nil, apperror.NewInvalidArgumentError("Receipt number must be positive")
	}
	if b.cashier == nil {
		return nil, apperror.NewInvalidArgumentError("Cashier is required")
	}
	if len(b.lines) == 0 {
		return nil, apperror.NewInvalidArgumentError("Receipt must have at least one line")
	}

	issuedAt := b.issuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}
	total := b.Total()
	payment := total
	if b.payment != nil {
		payment = *b.payment
	}
	if payment.LessThan(total) {
		return nil, apperror.NewInsufficientPaymentError(total, payment)
	}

	return &Receipt{
		number:   b.number,
		cashier:  *b.cashier,
		issuedAt: issuedAt,
		lines:    append([]ReceiptLine(nil), b.lines...),
		total:    total,
		payment:  payment,
	}, nil
}

type receiptLineJSON struct {
	Product   ProductSnapshot `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type receiptJSON struct {
	Number      int               `json:"number"`
	Cashier     Cashier           `json:"cashier"`
	IssuedAt    time.Time         `json:"issued_at"`
	Lines       []receiptLineJSON `json:"lines"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Payment     decimal.Decimal   `json:"payment"`
	Change      decimal.Decimal   `json:"change"`
}

func (r *Receipt) MarshalJSON() ([]byte, error) {
	out := receiptJSON{
		Number:      r.number,
		Cashier:     r.cashier,
		IssuedAt:    r.issuedAt,
		Lines:       make([]receiptLineJSON, 0, len(r.lines)),
		TotalAmount: r.total,
		Payment:     r.payment,
		Change:      r.Change(),
	}
	for _, l := range r.lines {
		out.Lines = append(out.Lines, receiptLineJSON{
			Product:   l.product,
			Quantity:  l.quantity,
			UnitPrice: l.unitPrice,
			LineTotal: l.LineTotal(),
		})
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a serialized receipt through the builder so the
// total is recomputed from the lines.
func (r *Receipt) UnmarshalJSON(data []byte) error {
	var in receiptJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	b := NewReceiptBuilder().
		Number(in.Number).
		Cashier(in.Cashier).
		IssuedAt(in.IssuedAt).
		Payment(in.Payment)
	for _, l := range in.Lines {
		line, err := NewReceiptLine(l.Product, l.Quantity, l.UnitPrice)
		if err != nil {
			return err
		}
		b.AddLine(line)
	}
	built, err := b.Build()
	if err != nil {
		return err
	}
	*r = *built
	return nil
}

// ReceiptRecord is the persisted form of a receipt
type ReceiptRecord struct {
	Number    int             `gorm:"primaryKey;autoIncrement:false" json:"number"`
	CashierID string          `gorm:"size:64;not null;index" json:"cashier_id"`
	IssuedAt  time.Time       `gorm:"not null" json:"issued_at"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Rendered  string          `gorm:"type:text;not null" json:"rendered"`
	Payload   string          `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName returns the table name for the ReceiptRecord model
func (ReceiptRecord) TableName() string {
	return "receipts"
}

// NewReceiptRecord pairs a receipt with its rendered text and serialized form
func NewReceiptRecord(r *Receipt, rendered string) (*ReceiptRecord, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return &ReceiptRecord{
		Number:    r.Number(),
		CashierID: r.Cashier().ID,
		IssuedAt:  r.IssuedAt(),
		Total:     r.TotalAmount(),
		Rendered:  rendered,
		Payload:   string(payload),
	}, nil
}

// Receipt decodes the serialized form
func (rec *ReceiptRecord) Receipt() (*Receipt, error) {
	var r Receipt
	if err := json.Unmarshal([]byte(rec.Payload), &r); err != nil {
		return nil, err
	}
	return &r, nil
}
