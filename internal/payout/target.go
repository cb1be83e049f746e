// internal/payout/target.go
package payout

import "time"

// TargetKeyLayout is the calendar-date layout used for target payout keys.
const TargetKeyLayout = "2006-01-02"

// weeklyPayoutDay is the weekday weekly batches run on.
const weeklyPayoutDay = time.Friday

// TargetPayoutDate computes the settlement date for a credit made at creditAt.
//
// Weekly credits settle on the next Friday strictly after the local credit
// date. Every other tier settles TimelineDays after the local credit date.
// The result is local midnight in loc, together with its YYYY-MM-DD key.
func TargetPayoutDate(creditAt time.Time, scheduleType ScheduleType, loc *time.Location) (time.Time, string, error) {
	cfg, err := GetScheduleConfig(scheduleType)
	if err != nil {
		return time.Time{}, "", err
	}
	if loc == nil {
		loc = time.UTC
	}

	local := creditAt.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var target time.Time
	if cfg.Type == ScheduleWeekly {
		ahead := (int(weeklyPayoutDay) - int(day.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		target = day.AddDate(0, 0, ahead)
	} else {
		target = day.AddDate(0, 0, cfg.TimelineDays)
	}
	return target, target.Format(TargetKeyLayout), nil
}
