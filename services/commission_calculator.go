package services

import (
	"math"
	"time"

	"github.com/rentora/rentora_backend/models"
	"github.com/rentora/rentora_backend/utils"
)

// DefaultPlatformFeePercent applies to individual agents when the property
// does not configure its own platform fee.
const DefaultPlatformFeePercent = 20.0

// ReconciliationEpsilon is the tolerance for the identity
// agentGrossCommission + landlordNetAmount == totalPaymentAmount.
const ReconciliationEpsilon = 0.01

// PropertyCommissionPolicy is the property-level policy slice the evaluator
// needs. An empty Type means no commission applies.
type PropertyCommissionPolicy struct {
	Type               string
	Rate               float64
	FixedAmount        float64
	PlatformFeePercent *float64
}

// AgencyPlatformFeePolicy is the agency-level platform fee, applied to the
// total commission before the agency/agent split.
type AgencyPlatformFeePolicy struct {
	Type        string
	Percent     float64
	FixedAmount float64
}

// LeaseSplitPolicy is the lease-level agency share of the commission
// remaining after the platform fee.
type LeaseSplitPolicy struct {
	AgencyCommissionRate float64
}

// EvaluationInput carries everything the evaluator looks at. It is assembled
// either from live configuration or from a commission record's historical
// settings.
type EvaluationInput struct {
	BilledAmount      float64
	ExtraCharges      []models.ExtraCharge
	AgencyEnabled     bool
	Property          PropertyCommissionPolicy
	AgencyPlatformFee *AgencyPlatformFeePolicy
	LeaseSplit        *LeaseSplitPolicy
}

// CommissionBreakdown is the fully itemized result of one evaluation.
type CommissionBreakdown struct {
	TotalPaymentAmount   float64
	AgentGrossCommission float64
	AgentPlatformFee     float64
	AgentNetCommission   float64

	AgencyEnabled         bool
	AgencyGrossCommission float64
	AgencyPlatformFee     float64
	AgencyNetCommission   float64

	PlatformCommission float64
	LandlordNetAmount  float64

	// Drift is |agentGross + landlordNet - total|; anything above
	// ReconciliationEpsilon is a monitoring signal, not an error.
	Drift float64

	// Settings are the policy values this breakdown was computed under, ready
	// to be frozen on the commission record.
	Settings models.HistoricalSettings
}

// CommissionOutcome is the tagged result of an evaluation: either no
// commission applies, or a computed breakdown. Callers must check Applies
// before reading the breakdown.
type CommissionOutcome struct {
	breakdown *CommissionBreakdown
}

// NoCommission is the outcome for payments no commission applies to.
func NoCommission() CommissionOutcome {
	return CommissionOutcome{}
}

// ComputedCommission wraps a breakdown in an outcome.
func ComputedCommission(b CommissionBreakdown) CommissionOutcome {
	return CommissionOutcome{breakdown: &b}
}

// Applies reports whether a commission was computed.
func (o CommissionOutcome) Applies() bool {
	return o.breakdown != nil
}

// Breakdown returns the computed breakdown. Only valid when Applies is true.
func (o CommissionOutcome) Breakdown() CommissionBreakdown {
	return *o.breakdown
}

// EvaluateCommission deterministically splits a payment between agent,
// optional agency, platform and landlord. It has no side effects: the same
// input always produces the same breakdown.
//
// Every percentage is clamped to [0,100], every fixed amount to >= 0, and
// every derived fee to the amount it was carved out of. The clamps guarantee
// a non-negative landlord payout and a split that never exceeds the total,
// regardless of malformed configuration.
func EvaluateCommission(in EvaluationInput) CommissionOutcome {
	total := in.BilledAmount
	for _, charge := range in.ExtraCharges {
		total += charge.Amount
	}
	total = utils.Round2(total)
	if total <= 0 {
		return NoCommission()
	}

	if in.Property.Type == "" {
		return NoCommission()
	}

	var agentGross float64
	switch in.Property.Type {
	case models.CommissionTypePercentage:
		agentGross = utils.Round2(total * utils.ClampPercent(in.Property.Rate) / 100)
	case models.CommissionTypeFixedAmount:
		agentGross = utils.ClampAmount(in.Property.FixedAmount)
	default:
		// Unknown policy type is treated the same as no policy.
		return NoCommission()
	}
	if agentGross == 0 {
		return NoCommission()
	}
	// The commission can never take more than the payment itself.
	agentGross = utils.ClampCeiling(agentGross, total)

	b := CommissionBreakdown{
		TotalPaymentAmount:   total,
		AgentGrossCommission: agentGross,
		AgencyEnabled:        in.AgencyEnabled,
	}

	if in.AgencyEnabled {
		var platformFee float64
		var feeType string
		var feePercent, feeFixed float64
		if in.AgencyPlatformFee != nil {
			feeType = in.AgencyPlatformFee.Type
			feePercent = in.AgencyPlatformFee.Percent
			feeFixed = in.AgencyPlatformFee.FixedAmount
			switch feeType {
			case models.AgencyFeeTypePercentage:
				platformFee = utils.Round2(agentGross * utils.ClampPercent(feePercent) / 100)
			case models.AgencyFeeTypeFixedAmount:
				platformFee = utils.ClampAmount(feeFixed)
			}
		}
		platformFee = utils.ClampCeiling(platformFee, agentGross)

		afterPlatformFee := utils.Round2(agentGross - platformFee)

		var agencyRate float64
		if in.LeaseSplit != nil {
			agencyRate = in.LeaseSplit.AgencyCommissionRate
		}
		agencyGross := utils.Round2(afterPlatformFee * utils.ClampPercent(agencyRate) / 100)
		agencyGross = utils.ClampCeiling(agencyGross, afterPlatformFee)

		b.AgentNetCommission = utils.ClampAmount(utils.Round2(afterPlatformFee - agencyGross))
		b.AgencyGrossCommission = agencyGross
		b.AgencyNetCommission = agencyGross
		b.AgencyPlatformFee = platformFee
		b.PlatformCommission = platformFee

		b.Settings.AgencyPlatformFeeType = feeType
		b.Settings.AgencyPlatformFeePercent = feePercent
		b.Settings.AgencyPlatformFeeFixedAmount = feeFixed
		b.Settings.AgencyCommissionRate = agencyRate
	} else {
		platformFeePercent := DefaultPlatformFeePercent
		if in.Property.PlatformFeePercent != nil {
			platformFeePercent = *in.Property.PlatformFeePercent
		}
		agentPlatformFee := utils.Round2(agentGross * utils.ClampPercent(platformFeePercent) / 100)
		agentPlatformFee = utils.ClampCeiling(agentPlatformFee, agentGross)

		b.AgentPlatformFee = agentPlatformFee
		b.AgentNetCommission = utils.ClampAmount(utils.Round2(agentGross - agentPlatformFee))
		b.PlatformCommission = agentPlatformFee

		b.Settings.PlatformFeePercent = platformFeePercent
	}

	b.LandlordNetAmount = utils.ClampAmount(utils.Round2(total - agentGross))
	b.Drift = math.Abs(b.AgentGrossCommission + b.LandlordNetAmount - total)

	b.Settings.CommissionType = in.Property.Type
	b.Settings.CommissionRate = in.Property.Rate
	b.Settings.CommissionFixedAmount = in.Property.FixedAmount
	b.Settings.AgencyEnabled = in.AgencyEnabled
	b.Settings.CapturedAt = time.Now().UTC()

	return ComputedCommission(b)
}

// inputFromSnapshot rebuilds an evaluation input from a commission record's
// frozen settings and the payment's current amounts. The snapshot wins over
// live configuration on every recompute.
func inputFromSnapshot(payment *models.PaymentRecord, snap *models.HistoricalSettings) EvaluationInput {
	in := EvaluationInput{
		BilledAmount:  payment.Amount,
		ExtraCharges:  payment.ExtraCharges,
		AgencyEnabled: snap.AgencyEnabled,
		Property: PropertyCommissionPolicy{
			Type:        snap.CommissionType,
			Rate:        snap.CommissionRate,
			FixedAmount: snap.CommissionFixedAmount,
		},
	}
	if snap.AgencyEnabled {
		in.AgencyPlatformFee = &AgencyPlatformFeePolicy{
			Type:        snap.AgencyPlatformFeeType,
			Percent:     snap.AgencyPlatformFeePercent,
			FixedAmount: snap.AgencyPlatformFeeFixedAmount,
		}
		in.LeaseSplit = &LeaseSplitPolicy{AgencyCommissionRate: snap.AgencyCommissionRate}
	} else {
		pct := snap.PlatformFeePercent
		in.Property.PlatformFeePercent = &pct
	}
	return in
}
