// internal/payout/schedule.go
package payout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"creator-wallet/internal/util"
)

// ScheduleType identifies one of the payout cadence tiers a vendor can choose.
type ScheduleType string

const (
	ScheduleWeekly    ScheduleType = "weekly"
	ScheduleFiveDays  ScheduleType = "5days"
	ScheduleThreeDays ScheduleType = "3days"
	ScheduleTwoDays   ScheduleType = "2days"
	ScheduleOneDay    ScheduleType = "1day"
)

// DefaultSchedule is used when a vendor has not picked a tier.
const DefaultSchedule = ScheduleWeekly

// ScheduleConfig is one row of the static payout schedule table.
type ScheduleConfig struct {
	Type         ScheduleType    `json:"type"`
	Label        string          `json:"label"`
	FeePercent   decimal.Decimal `json:"fee_percent"`
	FeeCapMinor  int64           `json:"fee_cap_minor"` // 0 means uncapped
	TimelineDays int             `json:"timeline_days"`
}

// Rows are only changed by redeploying; nothing at runtime writes to this table.
var scheduleTable = []ScheduleConfig{
	{Type: ScheduleWeekly, Label: "Weekly", FeePercent: decimal.NewFromInt(1), FeeCapMinor: 0, TimelineDays: 7},
	{Type: ScheduleFiveDays, Label: "Every 5 days", FeePercent: decimal.RequireFromString("1.5"), FeeCapMinor: 200000, TimelineDays: 5},
	{Type: ScheduleThreeDays, Label: "Every 3 days", FeePercent: decimal.NewFromInt(2), FeeCapMinor: 300000, TimelineDays: 3},
	{Type: ScheduleTwoDays, Label: "Every 2 days", FeePercent: decimal.RequireFromString("2.5"), FeeCapMinor: 400000, TimelineDays: 2},
	{Type: ScheduleOneDay, Label: "Daily", FeePercent: decimal.NewFromInt(3), FeeCapMinor: 500000, TimelineDays: 1},
}

// IsValid reports whether the tag is present in the schedule table.
func (s ScheduleType) IsValid() bool {
	_, ok := lookup(s)
	return ok
}

// ParseScheduleType validates an untyped tag, e.g. one read from storage or a request.
func ParseScheduleType(value string) (ScheduleType, error) {
	st := ScheduleType(value)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", util.ErrUnknownScheduleType, value)
	}
	return st, nil
}

// GetScheduleConfig returns the configuration row for the schedule type.
func GetScheduleConfig(scheduleType ScheduleType) (ScheduleConfig, error) {
	cfg, ok := lookup(scheduleType)
	if !ok {
		return ScheduleConfig{}, fmt.Errorf("%w: %q", util.ErrUnknownScheduleType, scheduleType)
	}
	return cfg, nil
}

// Schedules returns a copy of the whole table, weekly first.
func Schedules() []ScheduleConfig {
	out := make([]ScheduleConfig, len(scheduleTable))
	copy(out, scheduleTable)
	return out
}

func lookup(scheduleType ScheduleType) (ScheduleConfig, bool) {
	for _, row := range scheduleTable {
		if row.Type == scheduleType {
			return row, true
		}
	}
	return ScheduleConfig{}, false
}
