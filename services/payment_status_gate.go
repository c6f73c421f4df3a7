package services

import (
	"context"

	"github.com/rentora/rentora_backend/models"
)

// PaymentStatusGate decides what the commission ledger must do whenever a
// payment's status has been settled. It is invoked synchronously inside the
// request that mutated the payment, after the payment itself was saved.
//
// Transition table:
//
//	*    -> PAID      create the ledger pair, or recompute an existing one
//	             (covers amount-amended-while-paid and reactivation)
//	PAID -> not PAID  cancel the ledger pair if one exists
//	anything else     no-op
type PaymentStatusGate struct {
	ledger *CommissionLedgerService
}

func NewPaymentStatusGate(ledger *CommissionLedgerService) *PaymentStatusGate {
	return &PaymentStatusGate{ledger: ledger}
}

// OnStatusSettled reacts to a payment whose status (or amounts, for a PAID
// payment) just changed. previousStatus is the status before the mutation.
func (g *PaymentStatusGate) OnStatusSettled(ctx context.Context, payment *models.PaymentRecord, previousStatus string) error {
	switch {
	case payment.Status == models.PaymentStatusPaid:
		// EnsureForPaidPayment recomputes when a ledger pair already exists,
		// so PAID -> PAID amount amendments and CANCELLED -> PAID
		// reactivations both land here.
		_, err := g.ledger.EnsureForPaidPayment(ctx, payment)
		return err
	case previousStatus == models.PaymentStatusPaid:
		return g.ledger.CancelFor(ctx, payment)
	default:
		return nil
	}
}
