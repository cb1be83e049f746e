// internal/payout/fee_test.go
package payout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-wallet/internal/util"
)

func TestCalculatePayoutFee(t *testing.T) {
	t.Run("WeeklyUncapped", func(t *testing.T) {
		res, err := CalculatePayoutFee(1_000_000, ScheduleWeekly)

		require.NoError(t, err)
		assert.Equal(t, int64(1_000_000), res.EstimatedEarnings)
		assert.Equal(t, int64(10000), res.FeeAmount)
		assert.Equal(t, int64(990000), res.NetAmount)
		assert.True(t, decimal.NewFromInt(1).Equal(res.FeePercent))
		assert.Equal(t, int64(0), res.FeeCapMinor)
	})

	t.Run("DailyClampedToCap", func(t *testing.T) {
		res, err := CalculatePayoutFee(100_000_000, ScheduleOneDay)

		require.NoError(t, err)
		assert.Equal(t, int64(500000), res.FeeAmount)
		assert.Equal(t, int64(99_500_000), res.NetAmount)
		assert.Equal(t, int64(500000), res.FeeCapMinor)
	})

	t.Run("ZeroEarnings", func(t *testing.T) {
		res, err := CalculatePayoutFee(0, ScheduleWeekly)

		require.NoError(t, err)
		assert.Equal(t, int64(0), res.FeeAmount)
		assert.Equal(t, int64(0), res.NetAmount)
	})

	t.Run("NegativeEarnings", func(t *testing.T) {
		_, err := CalculatePayoutFee(-1, ScheduleWeekly)

		assert.ErrorIs(t, err, util.ErrInvalidAmount)
	})

	t.Run("UnknownSchedule", func(t *testing.T) {
		_, err := CalculatePayoutFee(1000, ScheduleType("hourly"))

		assert.ErrorIs(t, err, util.ErrUnknownScheduleType)
	})

	t.Run("RoundsHalfUp", func(t *testing.T) {
		// 150 * 1% = 1.5 -> 2
		res, err := CalculatePayoutFee(150, ScheduleWeekly)
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.FeeAmount)

		// 149 * 1% = 1.49 -> 1
		res, err = CalculatePayoutFee(149, ScheduleWeekly)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.FeeAmount)

		// 333 * 1.5% = 4.995 -> 5
		res, err = CalculatePayoutFee(333, ScheduleFiveDays)
		require.NoError(t, err)
		assert.Equal(t, int64(5), res.FeeAmount)

		// 20 * 2.5% = 0.5 -> 1
		res, err = CalculatePayoutFee(20, ScheduleTwoDays)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.FeeAmount)
	})
}

func TestCalculatePayoutFeeProperties(t *testing.T) {
	amounts := []int64{0, 1, 49, 50, 99, 101, 12_345, 999_999, 6_666_667, 16_666_667, 50_000_000, 1_000_000_000_000}

	for _, cfg := range Schedules() {
		var prevFee int64
		for _, amount := range amounts {
			res, err := CalculatePayoutFee(amount, cfg.Type)
			require.NoError(t, err)

			// conservation
			assert.Equal(t, amount, res.NetAmount+res.FeeAmount, "%s/%d", cfg.Type, amount)

			uncapped := decimal.NewFromInt(amount).Mul(cfg.FeePercent).Div(decimal.NewFromInt(100)).Round(0).IntPart()
			if cfg.FeeCapMinor > 0 {
				assert.LessOrEqual(t, res.FeeAmount, cfg.FeeCapMinor, "%s/%d", cfg.Type, amount)
				if uncapped <= cfg.FeeCapMinor {
					assert.Equal(t, uncapped, res.FeeAmount, "%s/%d", cfg.Type, amount)
				}
			} else {
				assert.Equal(t, uncapped, res.FeeAmount, "%s/%d", cfg.Type, amount)
			}

			// amounts are ascending, so fees never decrease
			assert.GreaterOrEqual(t, res.FeeAmount, prevFee, "%s/%d", cfg.Type, amount)
			prevFee = res.FeeAmount
		}
	}
}
