package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rentora/rentora_backend/models"
	"github.com/rentora/rentora_backend/repositories"
	"github.com/rentora/rentora_backend/utils"
)

// ErrNotFound is returned when a referenced lease, property or agency does
// not exist during evaluation.
var ErrNotFound = errors.New("resource not found")

// ErrCommissionAlreadyPaid is returned when a mutation would change amounts
// on a payment whose commission has already been paid out. Callers must
// reject such mutations before they reach the ledger.
var ErrCommissionAlreadyPaid = errors.New("commission already paid out; payment amounts are frozen")

// DriftSink receives reconciliation-drift warnings. Drift is a monitoring
// signal: the computed values are persisted regardless.
type DriftSink interface {
	ReconciliationDrift(paymentID string, drift float64)
}

type logDriftSink struct{}

func (logDriftSink) ReconciliationDrift(paymentID string, drift float64) {
	log.Printf("WARNING: commission reconciliation drift %.4f on payment %s", drift, paymentID)
}

// LedgerPair is the commission record and landlord payout for one payment.
type LedgerPair struct {
	Commission *models.CommissionRecord `json:"commission"`
	Payout     *models.LandlordPayment  `json:"payout"`
}

// CommissionLedgerService owns the CommissionRecord/LandlordPayment pair for
// every payment. No other component writes their numeric fields.
type CommissionLedgerService struct {
	store    repositories.LedgerStore
	policies repositories.PolicySource
	drift    DriftSink
	locks    paymentLocks
}

// NewCommissionLedgerService creates the ledger service. A nil sink falls
// back to log-based drift warnings.
func NewCommissionLedgerService(store repositories.LedgerStore, policies repositories.PolicySource, sink DriftSink) *CommissionLedgerService {
	if sink == nil {
		sink = logDriftSink{}
	}
	return &CommissionLedgerService{store: store, policies: policies, drift: sink}
}

// paymentLocks serializes ledger operations per payment. Different payments
// proceed concurrently; the same payment is processed one operation at a
// time.
type paymentLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *paymentLocks) lock(id primitive.ObjectID) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[id.Hex()]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id.Hex()] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// EnsureForPaidPayment creates the commission record and landlord payout for
// a payment that just became PAID, or recomputes the existing pair. When the
// evaluator decides no commission applies and no ledger exists yet, nothing
// is created.
func (s *CommissionLedgerService) EnsureForPaidPayment(ctx context.Context, payment *models.PaymentRecord) (*LedgerPair, error) {
	unlock := s.locks.lock(payment.ID)
	defer unlock()

	existing, err := s.findCommission(ctx, payment)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.recomputeLocked(ctx, payment, existing)
	}

	input, agencyID, err := s.liveInput(ctx, payment)
	if err != nil {
		return nil, err
	}
	outcome := EvaluateCommission(input)
	if !outcome.Applies() {
		return nil, nil
	}
	breakdown := outcome.Breakdown()

	now := time.Now().UTC()
	settings := breakdown.Settings
	rec := &models.CommissionRecord{
		PaymentRecordID:    payment.ID,
		LeaseID:            payment.LeaseID,
		PropertyID:         payment.PropertyID,
		LandlordID:         payment.LandlordID,
		AgentID:            payment.AgentID,
		HistoricalSettings: &settings,
		Status:             models.CommissionStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	applyBreakdown(rec, breakdown)
	if input.AgencyEnabled {
		rec.AgencyID = agencyID
	}

	stored, created, err := s.store.CreateCommissionIfAbsent(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to create commission record: %w", err)
	}
	if !created {
		// Lost a creation race or retrying a partial earlier run; converge on
		// the stored record.
		return s.recomputeLocked(ctx, payment, stored)
	}

	payout, err := s.ensurePayout(ctx, payment, stored)
	if err != nil {
		return nil, err
	}
	if err := s.refreshLinks(ctx, payment, stored, payout); err != nil {
		return nil, err
	}
	s.reportDrift(payment, breakdown)

	return &LedgerPair{Commission: stored, Payout: payout}, nil
}

// Recompute re-runs the evaluation for a payment that already has a
// commission record, preferring the stored historical settings over live
// configuration. Returns nil when no commission record exists.
func (s *CommissionLedgerService) Recompute(ctx context.Context, payment *models.PaymentRecord) (*LedgerPair, error) {
	unlock := s.locks.lock(payment.ID)
	defer unlock()

	rec, err := s.findCommission(ctx, payment)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return s.recomputeLocked(ctx, payment, rec)
}

func (s *CommissionLedgerService) recomputeLocked(ctx context.Context, payment *models.PaymentRecord, rec *models.CommissionRecord) (*LedgerPair, error) {
	var input EvaluationInput
	if rec.HistoricalSettings != nil {
		input = inputFromSnapshot(payment, rec.HistoricalSettings)
	} else {
		// Records predating snapshotting fall back to live configuration.
		live, _, err := s.liveInput(ctx, payment)
		if err != nil {
			return nil, err
		}
		input = live
	}

	outcome := EvaluateCommission(input)
	if !outcome.Applies() {
		// The payment no longer carries a commission; cancel rather than
		// delete so history stays intact.
		return s.cancelLocked(ctx, payment, rec)
	}
	breakdown := outcome.Breakdown()

	applyBreakdown(rec, breakdown)
	if rec.HistoricalSettings == nil {
		settings := breakdown.Settings
		rec.HistoricalSettings = &settings
	}
	if rec.Status == models.CommissionStatusCancelled && payment.Status == models.PaymentStatusPaid {
		rec.Status = models.CommissionStatusPending
		rec.PaidAt = nil
	}
	if err := s.store.ReplaceCommission(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to update commission record: %w", err)
	}

	payout, err := s.ensurePayout(ctx, payment, rec)
	if err != nil {
		return nil, err
	}
	if err := s.refreshLinks(ctx, payment, rec, payout); err != nil {
		return nil, err
	}
	s.reportDrift(payment, breakdown)

	return &LedgerPair{Commission: rec, Payout: payout}, nil
}

// CancelFor cancels the ledger pair when a payment moves away from PAID.
// A payment without a commission record is a no-op.
func (s *CommissionLedgerService) CancelFor(ctx context.Context, payment *models.PaymentRecord) error {
	unlock := s.locks.lock(payment.ID)
	defer unlock()

	rec, err := s.findCommission(ctx, payment)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}
	_, err = s.cancelLocked(ctx, payment, rec)
	return err
}

func (s *CommissionLedgerService) cancelLocked(ctx context.Context, payment *models.PaymentRecord, rec *models.CommissionRecord) (*LedgerPair, error) {
	rec.Status = models.CommissionStatusCancelled
	if err := s.store.ReplaceCommission(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to cancel commission record: %w", err)
	}

	payout, err := s.store.PayoutByCommissionID(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	if payout != nil {
		payout.Status = models.PayoutStatusCancelled
		if err := s.store.ReplacePayout(ctx, payout); err != nil {
			return nil, fmt.Errorf("failed to cancel landlord payout: %w", err)
		}
		if err := s.refreshLinks(ctx, payment, rec, payout); err != nil {
			return nil, err
		}
	}
	return &LedgerPair{Commission: rec, Payout: payout}, nil
}

// ReactivateIfCancelled flips a cancelled ledger pair back to PENDING after
// its payment becomes PAID again, clearing paid timestamps.
func (s *CommissionLedgerService) ReactivateIfCancelled(ctx context.Context, payment *models.PaymentRecord) error {
	unlock := s.locks.lock(payment.ID)
	defer unlock()

	rec, err := s.findCommission(ctx, payment)
	if err != nil {
		return err
	}
	if rec == nil || rec.Status != models.CommissionStatusCancelled {
		return nil
	}

	rec.Status = models.CommissionStatusPending
	rec.PaidAt = nil
	if err := s.store.ReplaceCommission(ctx, rec); err != nil {
		return fmt.Errorf("failed to reactivate commission record: %w", err)
	}

	payout, err := s.ensurePayout(ctx, payment, rec)
	if err != nil {
		return err
	}
	return s.refreshLinks(ctx, payment, rec, payout)
}

// findCommission resolves the commission record for a payment, trying the
// cached back-link first and falling back to the forward key. The forward
// relationship is the source of truth; the cache may be stale.
func (s *CommissionLedgerService) findCommission(ctx context.Context, payment *models.PaymentRecord) (*models.CommissionRecord, error) {
	if payment.CommissionRecordID != nil {
		rec, err := s.store.CommissionByID(ctx, *payment.CommissionRecordID)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			return rec, nil
		}
	}
	return s.store.CommissionByPaymentID(ctx, payment.ID)
}

// ensurePayout guarantees a landlord payout exists for the commission record
// and that its amounts mirror the record, preserving manual adjustments.
func (s *CommissionLedgerService) ensurePayout(ctx context.Context, payment *models.PaymentRecord, rec *models.CommissionRecord) (*models.LandlordPayment, error) {
	now := time.Now().UTC()
	status := models.PayoutStatusPending
	if rec.Status == models.CommissionStatusCancelled {
		status = models.PayoutStatusCancelled
	}
	fresh := &models.LandlordPayment{
		CommissionRecordID: rec.ID,
		PaymentRecordID:    payment.ID,
		LandlordID:         payment.LandlordID,
		GrossAmount:        rec.LandlordNetAmount,
		NetAmount:          rec.LandlordNetAmount,
		Status:             status,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	payout, created, err := s.store.CreatePayoutIfAbsent(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to create landlord payout: %w", err)
	}
	if created {
		return payout, nil
	}

	payout.GrossAmount = rec.LandlordNetAmount
	payout.NetAmount = netAfterAdjustments(rec.LandlordNetAmount, payout.Adjustments)
	if rec.Status == models.CommissionStatusCancelled {
		payout.Status = models.PayoutStatusCancelled
	} else if payout.Status == models.PayoutStatusCancelled {
		payout.Status = models.PayoutStatusPending
		payout.PaidAt = nil
		payout.ProcessedAt = nil
	}
	if err := s.store.ReplacePayout(ctx, payout); err != nil {
		return nil, fmt.Errorf("failed to update landlord payout: %w", err)
	}
	return payout, nil
}

func (s *CommissionLedgerService) refreshLinks(ctx context.Context, payment *models.PaymentRecord, rec *models.CommissionRecord, payout *models.LandlordPayment) error {
	if err := s.store.SavePaymentLinks(ctx, payment.ID, rec.ID, payout.ID); err != nil {
		return fmt.Errorf("failed to refresh payment ledger links: %w", err)
	}
	payment.CommissionRecordID = &rec.ID
	payment.LandlordPaymentID = &payout.ID
	return nil
}

func (s *CommissionLedgerService) reportDrift(payment *models.PaymentRecord, b CommissionBreakdown) {
	if b.Drift > ReconciliationEpsilon {
		s.drift.ReconciliationDrift(payment.ID.Hex(), b.Drift)
	}
}

// liveInput assembles an evaluation input from current configuration. It
// also returns the lease's agency id for the commission record.
func (s *CommissionLedgerService) liveInput(ctx context.Context, payment *models.PaymentRecord) (EvaluationInput, *primitive.ObjectID, error) {
	var input EvaluationInput

	lease, err := s.policies.LeaseByID(ctx, payment.LeaseID)
	if err != nil {
		return input, nil, wrapNotFound(err, "lease")
	}
	property, err := s.policies.PropertyByID(ctx, payment.PropertyID)
	if err != nil {
		return input, nil, wrapNotFound(err, "property")
	}

	input = EvaluationInput{
		BilledAmount:  payment.Amount,
		ExtraCharges:  payment.ExtraCharges,
		AgencyEnabled: lease.AgencyEnabled,
		Property: PropertyCommissionPolicy{
			Type:               property.CommissionType,
			Rate:               property.CommissionRate,
			FixedAmount:        property.CommissionFixedAmount,
			PlatformFeePercent: property.PlatformFeePercent,
		},
	}

	if lease.AgencyEnabled && lease.AgencyID != nil {
		agency, err := s.policies.AgencyByID(ctx, *lease.AgencyID)
		if err != nil {
			return input, nil, wrapNotFound(err, "agency")
		}
		input.AgencyPlatformFee = &AgencyPlatformFeePolicy{
			Type:        agency.PlatformFeeType,
			Percent:     agency.PlatformFeePercent,
			FixedAmount: agency.PlatformFeeFixedAmount,
		}
		input.LeaseSplit = &LeaseSplitPolicy{AgencyCommissionRate: lease.AgencyCommissionRate}
	}
	return input, lease.AgencyID, nil
}

func wrapNotFound(err error, entity string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return err
}

// applyBreakdown overwrites a record's numeric fields from an evaluation.
func applyBreakdown(rec *models.CommissionRecord, b CommissionBreakdown) {
	rec.TotalPaymentAmount = b.TotalPaymentAmount
	rec.AgentGrossCommission = b.AgentGrossCommission
	rec.AgentPlatformFee = b.AgentPlatformFee
	rec.AgentNetCommission = b.AgentNetCommission
	rec.AgencyEnabled = b.AgencyEnabled
	rec.AgencyGrossCommission = b.AgencyGrossCommission
	rec.AgencyPlatformFee = b.AgencyPlatformFee
	rec.AgencyNetCommission = b.AgencyNetCommission
	rec.PlatformCommission = b.PlatformCommission
	rec.LandlordNetAmount = b.LandlordNetAmount
}

func netAfterAdjustments(gross float64, adjustments []models.PayoutAdjustment) float64 {
	net := gross
	for _, adj := range adjustments {
		amount := utils.ClampAmount(adj.Amount)
		if adj.Type == models.AdjustmentTypeDeduction {
			net -= amount
		} else {
			net += amount
		}
	}
	return utils.ClampAmount(utils.Round2(net))
}
