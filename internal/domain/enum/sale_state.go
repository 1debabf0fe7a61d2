package enum

// SaleState is the stage a sale transaction has reached
type SaleState int

const (
	SaleStateValidatingCashier SaleState = iota
	SaleStatePricingAndReserving
	SaleStateVerifyingPayment
	SaleStateCommitting
	SaleStateIssued
	SaleStateFailed
)

func (s SaleState) String() string {
	names := [...]string{
		"VALIDATING_CASHIER",
		"PRICING_AND_RESERVING",
		"VERIFYING_PAYMENT",
		"COMMITTING",
		"ISSUED",
		"FAILED",
	}
	if int(s) < 0 || int(s) >= len(names) {
		return "UNKNOWN"
	}
	return names[s]
}

// IsTerminal reports whether no further transition is possible
func (s SaleState) IsTerminal() bool {
	return s == SaleStateIssued || s == SaleStateFailed
}
