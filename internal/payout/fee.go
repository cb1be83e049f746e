// internal/payout/fee.go
package payout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"creator-wallet/internal/util"
)

// FeeCalculation is the projected fee breakdown for an earnings amount on a schedule.
type FeeCalculation struct {
	EstimatedEarnings int64           `json:"estimated_earnings"`
	FeeAmount         int64           `json:"fee_amount"`
	NetAmount         int64           `json:"net_amount"`
	FeePercent        decimal.Decimal `json:"fee_percent"`
	FeeCapMinor       int64           `json:"fee_cap_minor"`
}

// CalculatePayoutFee computes fee and net payout for estimatedEarningsMinor.
//
// The fee is estimatedEarningsMinor * feePercent / 100 rounded half away from
// zero (half up, since inputs are non-negative) to a whole minor unit, then
// clamped to the schedule's cap when the cap is positive.
func CalculatePayoutFee(estimatedEarningsMinor int64, scheduleType ScheduleType) (FeeCalculation, error) {
	if estimatedEarningsMinor < 0 {
		return FeeCalculation{}, fmt.Errorf("%w: got %d", util.ErrInvalidAmount, estimatedEarningsMinor)
	}
	cfg, err := GetScheduleConfig(scheduleType)
	if err != nil {
		return FeeCalculation{}, err
	}

	fee := decimal.NewFromInt(estimatedEarningsMinor).
		Mul(cfg.FeePercent).
		Shift(-2).
		Round(0).
		IntPart()
	if cfg.FeeCapMinor > 0 && fee > cfg.FeeCapMinor {
		fee = cfg.FeeCapMinor
	}

	return FeeCalculation{
		EstimatedEarnings: estimatedEarningsMinor,
		FeeAmount:         fee,
		NetAmount:         estimatedEarningsMinor - fee,
		FeePercent:        cfg.FeePercent,
		FeeCapMinor:       cfg.FeeCapMinor,
	}, nil
}
