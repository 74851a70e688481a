package campaign

import (
	"time"

	"github.com/frostgate/svscoord/internal/model"
)

const (
	// PrepDayCount is how many calendar days before the battle date get a
	// prep-score entry.
	PrepDayCount = 5
	// SlotsPerDay is the number of reservation slots on a role-bearing day.
	SlotsPerDay = 48
	// SlotWidth is the fixed width of one reservation slot.
	SlotWidth = 30 * time.Minute
)

// prepDates returns the five calendar days immediately before the battle
// date, oldest first (Monday through Friday for a Saturday battle).
func prepDates(battleDate time.Time) []time.Time {
	base := battleDate.UTC().Truncate(24 * time.Hour)
	dates := make([]time.Time, 0, PrepDayCount)
	for i := PrepDayCount; i >= 1; i-- {
		dates = append(dates, base.AddDate(0, 0, -i))
	}
	return dates
}

// RoleForWeekday maps a prep-day weekday to the role whose buff is booked
// that day. Days without a role get score tracking but no slot grid.
func RoleForWeekday(wd time.Weekday) string {
	switch wd {
	case time.Monday, time.Tuesday:
		return model.RoleVicePresident
	case time.Thursday:
		return model.RoleMinisterOfEducation
	default:
		return ""
	}
}

// buildSchedule generates the full prep-score and slot grid for a battle
// date. It is called exactly once, at campaign creation; the grid is never
// regenerated.
func buildSchedule(battleDate time.Time) ([]*model.PrepScore, []*model.Slot) {
	var scores []*model.PrepScore
	var slots []*model.Slot

	for _, date := range prepDates(battleDate) {
		day := model.FormatDayID(date)

		scores = append(scores, &model.PrepScore{
			Day:     day,
			Weekday: date.Weekday(),
		})

		role := RoleForWeekday(date.Weekday())
		if role == "" {
			continue
		}

		for i := 0; i < SlotsPerDay; i++ {
			start := date.Add(time.Duration(i) * SlotWidth)
			slots = append(slots, &model.Slot{
				ID:        model.NewSlotID(day, role, start),
				Day:       day,
				Role:      role,
				StartTime: start,
				EndTime:   start.Add(SlotWidth),
			})
		}
	}

	return scores, slots
}
