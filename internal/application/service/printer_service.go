package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	ledger      *ReceiptLedger
	storeName   string
	printerType string
	logger      *slog.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, ledger *ReceiptLedger, storeName, printerType string, logger *slog.Logger) *PrinterService {
	return &PrinterService{
		printer:     p,
		ledger:      ledger,
		storeName:   storeName,
		printerType: printerType,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

// PrintReceipt prints a committed receipt by number.
func (s *PrinterService) PrintReceipt(ctx context.Context, number int) (*entity.Receipt, error) {
	receipt, err := s.ledger.Receipt(number)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(ctx, FormatReceipt(s.storeName, receipt)); err != nil {
		s.logger.ErrorContext(ctx, "printer error", slog.Int("receipt", number), slog.String("error", err.Error()))
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// AutoPrint prints every issued receipt. Printer failures are logged and never fail the sale.
func (s *PrinterService) AutoPrint(ctx context.Context, receipt *entity.Receipt) {
	if err := s.printer.Print(ctx, FormatReceipt(s.storeName, receipt)); err != nil {
		s.logger.WarnContext(ctx, "auto print failed", slog.Int("receipt", receipt.Number()), slog.String("error", err.Error()))
	}
}

// FormatReceipt converts a receipt into ESC/POS bytes.
func FormatReceipt(storeName string, r *entity.Receipt) []byte {
	doc := printer.NewDocument(printer.Width58mm)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(storeName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.Columns("Receipt:", fmt.Sprintf("#%d", r.Number())).
		Columns("Date:", r.IssuedAt().Format(receiptTimeFmt)).
		Columns("Cashier:", r.Cashier().Name)

	doc.Separator('-')

	for _, line := range r.Lines() {
		doc.Columns(fmt.Sprintf("%dx %s", line.Quantity(), line.Product().Name), line.LineTotal().StringFixed(2))
		if line.Quantity() > 1 {
			doc.TextF("  @ %s each", line.UnitPrice().StringFixed(2))
		}
	}

	doc.Separator('-')

	doc.SetBold(true).
		Columns("TOTAL:", r.TotalAmount().StringFixed(2)+" "+currency).
		SetBold(false).
		Columns("Paid:", r.Payment().StringFixed(2)).
		Columns("Change:", r.Change().StringFixed(2))

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your purchase!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
