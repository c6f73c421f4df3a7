package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rentora/rentora_backend/models"
	"github.com/rentora/rentora_backend/utils"
)

// LedgerTriad is the payment / commission / payout view reporting reads use.
// All three lookup directions return the same triad so consumers can
// cross-check consistency.
type LedgerTriad struct {
	Payment    *models.PaymentRecord    `json:"payment"`
	Commission *models.CommissionRecord `json:"commission"`
	Payout     *models.LandlordPayment  `json:"payout"`
}

// TriadByPaymentID resolves the triad starting from the payment, tolerating
// a stale back-link cache by falling back to the forward keys.
func (s *CommissionLedgerService) TriadByPaymentID(ctx context.Context, paymentID primitive.ObjectID) (*LedgerTriad, error) {
	payment, err := s.store.PaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, fmt.Errorf("payment: %w", ErrNotFound)
	}

	commission, err := s.findCommission(ctx, payment)
	if err != nil {
		return nil, err
	}
	triad := &LedgerTriad{Payment: payment, Commission: commission}
	if commission == nil {
		return triad, nil
	}

	triad.Payout, err = s.findPayout(ctx, payment, commission)
	if err != nil {
		return nil, err
	}
	return triad, nil
}

// TriadByCommissionID resolves the triad starting from the commission record.
func (s *CommissionLedgerService) TriadByCommissionID(ctx context.Context, commissionID primitive.ObjectID) (*LedgerTriad, error) {
	commission, err := s.store.CommissionByID(ctx, commissionID)
	if err != nil {
		return nil, err
	}
	if commission == nil {
		return nil, fmt.Errorf("commission record: %w", ErrNotFound)
	}
	return s.triadFromCommission(ctx, commission)
}

// TriadByPayoutID resolves the triad starting from the landlord payout.
func (s *CommissionLedgerService) TriadByPayoutID(ctx context.Context, payoutID primitive.ObjectID) (*LedgerTriad, error) {
	payout, err := s.store.PayoutByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, fmt.Errorf("landlord payout: %w", ErrNotFound)
	}
	commission, err := s.store.CommissionByID(ctx, payout.CommissionRecordID)
	if err != nil {
		return nil, err
	}
	if commission == nil {
		return nil, fmt.Errorf("commission record: %w", ErrNotFound)
	}
	payment, err := s.store.PaymentByID(ctx, commission.PaymentRecordID)
	if err != nil {
		return nil, err
	}
	return &LedgerTriad{Payment: payment, Commission: commission, Payout: payout}, nil
}

func (s *CommissionLedgerService) triadFromCommission(ctx context.Context, commission *models.CommissionRecord) (*LedgerTriad, error) {
	payment, err := s.store.PaymentByID(ctx, commission.PaymentRecordID)
	if err != nil {
		return nil, err
	}
	payout, err := s.store.PayoutByCommissionID(ctx, commission.ID)
	if err != nil {
		return nil, err
	}
	return &LedgerTriad{Payment: payment, Commission: commission, Payout: payout}, nil
}

func (s *CommissionLedgerService) findPayout(ctx context.Context, payment *models.PaymentRecord, commission *models.CommissionRecord) (*models.LandlordPayment, error) {
	if payment.LandlordPaymentID != nil {
		payout, err := s.store.PayoutByID(ctx, *payment.LandlordPaymentID)
		if err != nil {
			return nil, err
		}
		if payout != nil {
			return payout, nil
		}
	}
	return s.store.PayoutByCommissionID(ctx, commission.ID)
}

// AddPayoutAdjustment appends a manual addition or deduction to a payout and
// recomputes its net amount. Adjustments are rejected once the payout is
// PAID.
func (s *CommissionLedgerService) AddPayoutAdjustment(ctx context.Context, payoutID primitive.ObjectID, adjustment models.PayoutAdjustment) (*models.LandlordPayment, error) {
	payout, err := s.store.PayoutByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, fmt.Errorf("landlord payout: %w", ErrNotFound)
	}
	if payout.Status == models.PayoutStatusPaid {
		return nil, ErrCommissionAlreadyPaid
	}

	adjustment.Amount = utils.Round2(utils.ClampAmount(adjustment.Amount))
	adjustment.CreatedAt = time.Now().UTC()
	payout.Adjustments = append(payout.Adjustments, adjustment)
	payout.NetAmount = netAfterAdjustments(payout.GrossAmount, payout.Adjustments)

	if err := s.store.ReplacePayout(ctx, payout); err != nil {
		return nil, fmt.Errorf("failed to save payout adjustment: %w", err)
	}
	return payout, nil
}

// MarkPayoutProcessed moves a pending payout to PROCESSED.
func (s *CommissionLedgerService) MarkPayoutProcessed(ctx context.Context, payoutID primitive.ObjectID) (*models.LandlordPayment, error) {
	payout, err := s.store.PayoutByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, fmt.Errorf("landlord payout: %w", ErrNotFound)
	}
	if payout.Status != models.PayoutStatusPending {
		return nil, fmt.Errorf("payout is %s, expected %s", payout.Status, models.PayoutStatusPending)
	}

	now := time.Now().UTC()
	payout.Status = models.PayoutStatusProcessed
	payout.ProcessedAt = &now
	if err := s.store.ReplacePayout(ctx, payout); err != nil {
		return nil, fmt.Errorf("failed to mark payout processed: %w", err)
	}
	return payout, nil
}

// MarkPayoutPaid finalizes a payout and marks its commission record PAID.
// From this point on the underlying payment's amounts are frozen.
func (s *CommissionLedgerService) MarkPayoutPaid(ctx context.Context, payoutID primitive.ObjectID) (*LedgerPair, error) {
	payout, err := s.store.PayoutByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, fmt.Errorf("landlord payout: %w", ErrNotFound)
	}
	if payout.Status == models.PayoutStatusCancelled {
		return nil, fmt.Errorf("cannot pay out a cancelled payout")
	}
	commission, err := s.store.CommissionByID(ctx, payout.CommissionRecordID)
	if err != nil {
		return nil, err
	}
	if commission == nil {
		return nil, fmt.Errorf("commission record: %w", ErrNotFound)
	}

	now := time.Now().UTC()
	payout.Status = models.PayoutStatusPaid
	payout.PaidAt = &now
	if err := s.store.ReplacePayout(ctx, payout); err != nil {
		return nil, fmt.Errorf("failed to mark payout paid: %w", err)
	}

	commission.Status = models.CommissionStatusPaid
	commission.PaidAt = &now
	if err := s.store.ReplaceCommission(ctx, commission); err != nil {
		return nil, fmt.Errorf("failed to mark commission paid: %w", err)
	}
	return &LedgerPair{Commission: commission, Payout: payout}, nil
}

// AmountFrozen reports whether a payment's amounts may no longer change
// because its commission has been paid out. Callers must check this before
// amending amounts.
func (s *CommissionLedgerService) AmountFrozen(ctx context.Context, payment *models.PaymentRecord) (bool, error) {
	rec, err := s.findCommission(ctx, payment)
	if err != nil {
		return false, err
	}
	return rec != nil && rec.Status == models.CommissionStatusPaid, nil
}
