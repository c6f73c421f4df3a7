package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rentora/rentora_backend/models"
	"github.com/rentora/rentora_backend/repositories"
)

// fakeLedgerStore is an in-memory LedgerStore with the same if-absent
// semantics the Mongo unique indexes provide.
type fakeLedgerStore struct {
	mu          sync.Mutex
	payments    map[primitive.ObjectID]*models.PaymentRecord
	commissions map[primitive.ObjectID]*models.CommissionRecord
	payouts     map[primitive.ObjectID]*models.LandlordPayment
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{
		payments:    make(map[primitive.ObjectID]*models.PaymentRecord),
		commissions: make(map[primitive.ObjectID]*models.CommissionRecord),
		payouts:     make(map[primitive.ObjectID]*models.LandlordPayment),
	}
}

func copyCommission(rec *models.CommissionRecord) *models.CommissionRecord {
	c := *rec
	if rec.HistoricalSettings != nil {
		snap := *rec.HistoricalSettings
		c.HistoricalSettings = &snap
	}
	return &c
}

func copyPayout(p *models.LandlordPayment) *models.LandlordPayment {
	c := *p
	c.Adjustments = append([]models.PayoutAdjustment(nil), p.Adjustments...)
	return &c
}

func (f *fakeLedgerStore) PaymentByID(_ context.Context, id primitive.ObjectID) (*models.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.payments[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (f *fakeLedgerStore) SavePaymentLinks(_ context.Context, paymentID, commissionID, payoutID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.payments[paymentID]; ok {
		p.CommissionRecordID = &commissionID
		p.LandlordPaymentID = &payoutID
	}
	return nil
}

func (f *fakeLedgerStore) CommissionByID(_ context.Context, id primitive.ObjectID) (*models.CommissionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.commissions[id]; ok {
		return copyCommission(rec), nil
	}
	return nil, nil
}

func (f *fakeLedgerStore) CommissionByPaymentID(_ context.Context, paymentID primitive.ObjectID) (*models.CommissionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.commissions {
		if rec.PaymentRecordID == paymentID {
			return copyCommission(rec), nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerStore) CreateCommissionIfAbsent(_ context.Context, rec *models.CommissionRecord) (*models.CommissionRecord, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.commissions {
		if existing.PaymentRecordID == rec.PaymentRecordID {
			return copyCommission(existing), false, nil
		}
	}
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	f.commissions[rec.ID] = copyCommission(rec)
	return copyCommission(rec), true, nil
}

func (f *fakeLedgerStore) ReplaceCommission(_ context.Context, rec *models.CommissionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commissions[rec.ID] = copyCommission(rec)
	return nil
}

func (f *fakeLedgerStore) PayoutByID(_ context.Context, id primitive.ObjectID) (*models.LandlordPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.payouts[id]; ok {
		return copyPayout(p), nil
	}
	return nil, nil
}

func (f *fakeLedgerStore) PayoutByCommissionID(_ context.Context, commissionID primitive.ObjectID) (*models.LandlordPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payouts {
		if p.CommissionRecordID == commissionID {
			return copyPayout(p), nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerStore) CreatePayoutIfAbsent(_ context.Context, payout *models.LandlordPayment) (*models.LandlordPayment, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.payouts {
		if existing.CommissionRecordID == payout.CommissionRecordID {
			return copyPayout(existing), false, nil
		}
	}
	if payout.ID.IsZero() {
		payout.ID = primitive.NewObjectID()
	}
	f.payouts[payout.ID] = copyPayout(payout)
	return copyPayout(payout), true, nil
}

func (f *fakeLedgerStore) ReplacePayout(_ context.Context, payout *models.LandlordPayment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payouts[payout.ID] = copyPayout(payout)
	return nil
}

func (f *fakeLedgerStore) commissionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.commissions)
}

func (f *fakeLedgerStore) payoutCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payouts)
}

func (f *fakeLedgerStore) deletePayouts() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payouts = make(map[primitive.ObjectID]*models.LandlordPayment)
}

// fakePolicySource serves configuration from memory.
type fakePolicySource struct {
	mu         sync.Mutex
	properties map[primitive.ObjectID]*models.Property
	agencies   map[primitive.ObjectID]*models.Agency
	leases     map[primitive.ObjectID]*models.Lease
}

func newFakePolicySource() *fakePolicySource {
	return &fakePolicySource{
		properties: make(map[primitive.ObjectID]*models.Property),
		agencies:   make(map[primitive.ObjectID]*models.Agency),
		leases:     make(map[primitive.ObjectID]*models.Lease),
	}
}

func (f *fakePolicySource) PropertyByID(_ context.Context, id primitive.ObjectID) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.properties[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePolicySource) AgencyByID(_ context.Context, id primitive.ObjectID) (*models.Agency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.agencies[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePolicySource) LeaseByID(_ context.Context, id primitive.ObjectID) (*models.Lease, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.leases[id]; ok {
		c := *l
		return &c, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePolicySource) setPropertyRate(id primitive.ObjectID, rate float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.properties[id].CommissionRate = rate
}

// testFixture wires a ledger service over the fakes with a standard
// individual-agent setup: 10% percentage commission, 20% platform fee.
type testFixture struct {
	store    *fakeLedgerStore
	policies *fakePolicySource
	ledger   *CommissionLedgerService
	payment  *models.PaymentRecord
	property *models.Property
	lease    *models.Lease
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	store := newFakeLedgerStore()
	policies := newFakePolicySource()

	property := &models.Property{
		ID:             primitive.NewObjectID(),
		LandlordID:     primitive.NewObjectID(),
		Name:           "12 Main St",
		CommissionType: models.CommissionTypePercentage,
		CommissionRate: 10,
		IsActive:       true,
	}
	lease := &models.Lease{
		ID:         primitive.NewObjectID(),
		PropertyID: property.ID,
		TenantID:   primitive.NewObjectID(),
		LandlordID: property.LandlordID,
		AgentID:    primitive.NewObjectID(),
		RentAmount: 1000,
		Status:     models.LeaseStatusActive,
	}
	policies.properties[property.ID] = property
	policies.leases[lease.ID] = lease

	payment := &models.PaymentRecord{
		ID:         primitive.NewObjectID(),
		LeaseID:    lease.ID,
		PropertyID: property.ID,
		TenantID:   lease.TenantID,
		LandlordID: lease.LandlordID,
		AgentID:    lease.AgentID,
		Type:       models.PaymentTypeRent,
		Amount:     1000,
		Status:     models.PaymentStatusPaid,
	}
	store.payments[payment.ID] = payment

	return &testFixture{
		store:    store,
		policies: policies,
		ledger:   NewCommissionLedgerService(store, policies, nil),
		payment:  payment,
		property: property,
		lease:    lease,
	}
}

func (fx *testFixture) enableAgency(t *testing.T, platformFeePercent, splitRate float64) {
	t.Helper()
	agency := &models.Agency{
		ID:                 primitive.NewObjectID(),
		Name:               "Skyline Realty",
		PlatformFeeType:    models.AgencyFeeTypePercentage,
		PlatformFeePercent: platformFeePercent,
		IsActive:           true,
	}
	fx.policies.agencies[agency.ID] = agency
	fx.lease.AgencyID = &agency.ID
	fx.lease.AgencyEnabled = true
	fx.lease.AgencyCommissionRate = splitRate
}

func TestEnsureForPaidPaymentCreatesLedgerPair(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	pair, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.Equal(t, 1000.0, pair.Commission.TotalPaymentAmount)
	assert.Equal(t, 100.0, pair.Commission.AgentGrossCommission)
	assert.Equal(t, 20.0, pair.Commission.AgentPlatformFee)
	assert.Equal(t, 80.0, pair.Commission.AgentNetCommission)
	assert.Equal(t, 900.0, pair.Commission.LandlordNetAmount)
	assert.Equal(t, models.CommissionStatusPending, pair.Commission.Status)
	require.NotNil(t, pair.Commission.HistoricalSettings)
	assert.Equal(t, 10.0, pair.Commission.HistoricalSettings.CommissionRate)

	assert.Equal(t, 900.0, pair.Payout.GrossAmount)
	assert.Equal(t, 900.0, pair.Payout.NetAmount)
	assert.Equal(t, models.PayoutStatusPending, pair.Payout.Status)
	assert.Equal(t, pair.Commission.ID, pair.Payout.CommissionRecordID)

	// Back-links refreshed
	stored, _ := fx.store.PaymentByID(ctx, fx.payment.ID)
	require.NotNil(t, stored.CommissionRecordID)
	require.NotNil(t, stored.LandlordPaymentID)
	assert.Equal(t, pair.Commission.ID, *stored.CommissionRecordID)
	assert.Equal(t, pair.Payout.ID, *stored.LandlordPaymentID)
}

func TestEnsureForPaidPaymentNoPolicyCreatesNothing(t *testing.T) {
	fx := newTestFixture(t)
	fx.policies.properties[fx.property.ID].CommissionType = ""

	pair, err := fx.ledger.EnsureForPaidPayment(context.Background(), fx.payment)
	require.NoError(t, err)
	assert.Nil(t, pair)
	assert.Zero(t, fx.store.commissionCount())
	assert.Zero(t, fx.store.payoutCount())
}

func TestEnsureForPaidPaymentMissingLease(t *testing.T) {
	fx := newTestFixture(t)
	fx.payment.LeaseID = primitive.NewObjectID()

	_, err := fx.ledger.EnsureForPaidPayment(context.Background(), fx.payment)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, fx.store.commissionCount())
}

func TestRecomputeIsIdempotent(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	first, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)

	second, err := fx.ledger.Recompute(ctx, fx.payment)
	require.NoError(t, err)
	third, err := fx.ledger.Recompute(ctx, fx.payment)
	require.NoError(t, err)

	assert.Equal(t, 1, fx.store.commissionCount())
	assert.Equal(t, 1, fx.store.payoutCount())

	assert.Equal(t, second.Commission.AgentGrossCommission, third.Commission.AgentGrossCommission)
	assert.Equal(t, second.Commission.AgentNetCommission, third.Commission.AgentNetCommission)
	assert.Equal(t, second.Commission.LandlordNetAmount, third.Commission.LandlordNetAmount)
	assert.Equal(t, first.Commission.ID, third.Commission.ID)
}

func TestRecomputePrefersHistoricalSettings(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	_, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)

	// The live rate doubles after the first computation
	fx.policies.setPropertyRate(fx.property.ID, 20)

	pair, err := fx.ledger.Recompute(ctx, fx.payment)
	require.NoError(t, err)
	require.NotNil(t, pair)

	// The frozen 10% still wins
	assert.Equal(t, 100.0, pair.Commission.AgentGrossCommission)
	assert.Equal(t, 900.0, pair.Commission.LandlordNetAmount)
}

func TestRecomputeAfterAmountChange(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	_, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)

	fx.payment.Amount = 2000
	pair, err := fx.ledger.Recompute(ctx, fx.payment)
	require.NoError(t, err)

	assert.Equal(t, 200.0, pair.Commission.AgentGrossCommission)
	assert.Equal(t, 1800.0, pair.Commission.LandlordNetAmount)
	assert.Equal(t, 1800.0, pair.Payout.GrossAmount)
	assert.Equal(t, 1, fx.store.commissionCount())
}

func TestRecomputeToZeroCancelsInsteadOfDeleting(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	_, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)

	fx.payment.Amount = 0
	pair, err := fx.ledger.Recompute(ctx, fx.payment)
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.Equal(t, models.CommissionStatusCancelled, pair.Commission.Status)
	require.NotNil(t, pair.Payout)
	assert.Equal(t, models.PayoutStatusCancelled, pair.Payout.Status)
	assert.Equal(t, 1, fx.store.commissionCount())
}

func TestRecomputeWithoutCommissionIsNoop(t *testing.T) {
	fx := newTestFixture(t)

	pair, err := fx.ledger.Recompute(context.Background(), fx.payment)
	require.NoError(t, err)
	assert.Nil(t, pair)
	assert.Zero(t, fx.store.commissionCount())
}

func TestCancelAndReactivate(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	pair, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)

	// Payment leaves PAID
	fx.payment.Status = models.PaymentStatusCancelled
	require.NoError(t, fx.ledger.CancelFor(ctx, fx.payment))

	rec, _ := fx.store.CommissionByID(ctx, pair.Commission.ID)
	payout, _ := fx.store.PayoutByCommissionID(ctx, rec.ID)
	assert.Equal(t, models.CommissionStatusCancelled, rec.Status)
	assert.Equal(t, models.PayoutStatusCancelled, payout.Status)

	// Payment becomes PAID again: the pair reactivates to PENDING
	fx.payment.Status = models.PaymentStatusPaid
	reactivated, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)
	require.NotNil(t, reactivated)

	assert.Equal(t, pair.Commission.ID, reactivated.Commission.ID)
	assert.Equal(t, models.CommissionStatusPending, reactivated.Commission.Status)
	assert.Nil(t, reactivated.Commission.PaidAt)
	assert.Equal(t, models.PayoutStatusPending, reactivated.Payout.Status)
	assert.Nil(t, reactivated.Payout.PaidAt)
	assert.Equal(t, 1, fx.store.commissionCount())
	assert.Equal(t, 1, fx.store.payoutCount())
}

func TestCancelWithoutCommissionIsNoop(t *testing.T) {
	fx := newTestFixture(t)
	fx.payment.Status = models.PaymentStatusPending

	require.NoError(t, fx.ledger.CancelFor(context.Background(), fx.payment))
	assert.Zero(t, fx.store.commissionCount())
}

func TestReactivateIfCancelled(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	pair, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)
	require.NoError(t, fx.ledger.CancelFor(ctx, fx.payment))

	fx.payment.Status = models.PaymentStatusPaid
	require.NoError(t, fx.ledger.ReactivateIfCancelled(ctx, fx.payment))

	rec, _ := fx.store.CommissionByID(ctx, pair.Commission.ID)
	assert.Equal(t, models.CommissionStatusPending, rec.Status)
	assert.Nil(t, rec.PaidAt)
}

func TestRecomputeRecreatesMissingPayout(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	_, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)

	// Simulate a partial earlier run that lost the payout
	fx.store.deletePayouts()

	pair, err := fx.ledger.Recompute(ctx, fx.payment)
	require.NoError(t, err)
	require.NotNil(t, pair.Payout)
	assert.Equal(t, 900.0, pair.Payout.GrossAmount)
	assert.Equal(t, 1, fx.store.payoutCount())

	stored, _ := fx.store.PaymentByID(ctx, fx.payment.ID)
	require.NotNil(t, stored.LandlordPaymentID)
	assert.Equal(t, pair.Payout.ID, *stored.LandlordPaymentID)
}

func TestFindCommissionFallsBackToForwardLink(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	pair, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)

	// Stale cache: the back-link points at a record that no longer resolves
	bogus := primitive.NewObjectID()
	fx.payment.CommissionRecordID = &bogus

	found, err := fx.ledger.Recompute(ctx, fx.payment)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, pair.Commission.ID, found.Commission.ID)
	assert.Equal(t, 1, fx.store.commissionCount())
}

func TestConcurrentFirstCreationProducesOneRecord(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payment := *fx.payment
			_, err := fx.ledger.EnsureForPaidPayment(ctx, &payment)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fx.store.commissionCount())
	assert.Equal(t, 1, fx.store.payoutCount())
}

func TestAgencyLedgerCreation(t *testing.T) {
	fx := newTestFixture(t)
	fx.enableAgency(t, 10, 50)
	ctx := context.Background()

	pair, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.True(t, pair.Commission.AgencyEnabled)
	require.NotNil(t, pair.Commission.AgencyID)
	assert.Equal(t, *fx.lease.AgencyID, *pair.Commission.AgencyID)
	assert.Equal(t, 100.0, pair.Commission.AgentGrossCommission)
	assert.Equal(t, 10.0, pair.Commission.AgencyPlatformFee)
	assert.Equal(t, 45.0, pair.Commission.AgencyGrossCommission)
	assert.Equal(t, 45.0, pair.Commission.AgentNetCommission)
	assert.Equal(t, 900.0, pair.Commission.LandlordNetAmount)
	require.NotNil(t, pair.Commission.HistoricalSettings)
	assert.Equal(t, 50.0, pair.Commission.HistoricalSettings.AgencyCommissionRate)
}

func TestPayoutAdjustments(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	pair, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)

	payout, err := fx.ledger.AddPayoutAdjustment(ctx, pair.Payout.ID, models.PayoutAdjustment{
		Type:   models.AdjustmentTypeDeduction,
		Label:  "boiler repair",
		Amount: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, 750.0, payout.NetAmount)

	payout, err = fx.ledger.AddPayoutAdjustment(ctx, payout.ID, models.PayoutAdjustment{
		Type:   models.AdjustmentTypeAddition,
		Label:  "goodwill credit",
		Amount: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, 775.0, payout.NetAmount)
	assert.Len(t, payout.Adjustments, 2)

	// Adjustments survive a recompute; the net is rebuilt from the new gross
	fx.payment.Amount = 2000
	recomputed, err := fx.ledger.Recompute(ctx, fx.payment)
	require.NoError(t, err)
	assert.Equal(t, 1800.0, recomputed.Payout.GrossAmount)
	assert.Equal(t, 1675.0, recomputed.Payout.NetAmount)
}

func TestMarkPayoutPaidFreezesAmounts(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	pair, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)

	processed, err := fx.ledger.MarkPayoutProcessed(ctx, pair.Payout.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusProcessed, processed.Status)
	require.NotNil(t, processed.ProcessedAt)

	paid, err := fx.ledger.MarkPayoutPaid(ctx, pair.Payout.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusPaid, paid.Payout.Status)
	assert.Equal(t, models.CommissionStatusPaid, paid.Commission.Status)
	require.NotNil(t, paid.Commission.PaidAt)
	assert.WithinDuration(t, time.Now(), *paid.Commission.PaidAt, time.Minute)

	frozen, err := fx.ledger.AmountFrozen(ctx, fx.payment)
	require.NoError(t, err)
	assert.True(t, frozen)

	// No further adjustments once the payout is PAID
	_, err = fx.ledger.AddPayoutAdjustment(ctx, pair.Payout.ID, models.PayoutAdjustment{
		Type:   models.AdjustmentTypeDeduction,
		Label:  "late",
		Amount: 5,
	})
	require.ErrorIs(t, err, ErrCommissionAlreadyPaid)
}

func TestTriadLookupsAgreeFromAllDirections(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	pair, err := fx.ledger.EnsureForPaidPayment(ctx, fx.payment)
	require.NoError(t, err)

	byPayment, err := fx.ledger.TriadByPaymentID(ctx, fx.payment.ID)
	require.NoError(t, err)
	byCommission, err := fx.ledger.TriadByCommissionID(ctx, pair.Commission.ID)
	require.NoError(t, err)
	byPayout, err := fx.ledger.TriadByPayoutID(ctx, pair.Payout.ID)
	require.NoError(t, err)

	for _, triad := range []*LedgerTriad{byPayment, byCommission, byPayout} {
		require.NotNil(t, triad.Payment)
		require.NotNil(t, triad.Commission)
		require.NotNil(t, triad.Payout)
		assert.Equal(t, fx.payment.ID, triad.Payment.ID)
		assert.Equal(t, pair.Commission.ID, triad.Commission.ID)
		assert.Equal(t, pair.Payout.ID, triad.Payout.ID)
	}
}

func TestTriadByPaymentWithoutCommission(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	triad, err := fx.ledger.TriadByPaymentID(ctx, fx.payment.ID)
	require.NoError(t, err)
	require.NotNil(t, triad.Payment)
	assert.Nil(t, triad.Commission)
	assert.Nil(t, triad.Payout)
}

func TestTriadUnknownIDsReturnNotFound(t *testing.T) {
	fx := newTestFixture(t)
	ctx := context.Background()

	_, err := fx.ledger.TriadByPaymentID(ctx, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrNotFound)
	_, err = fx.ledger.TriadByCommissionID(ctx, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrNotFound)
	_, err = fx.ledger.TriadByPayoutID(ctx, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrNotFound)
}
