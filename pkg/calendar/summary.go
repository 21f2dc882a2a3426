package calendar

import (
	"time"

	"github.com/rxtech-lab/trading-calendar/internal/types"
)

// Summarize fills the record statistics of a PersistSummary.
// Divisions other than business day and holiday count only towards the total.
func Summarize(records []types.CalendarRecord) types.PersistSummary {
	summary := types.PersistSummary{
		HasRecords:   true,
		TotalRecords: len(records),
	}

	for i, r := range records {
		if i == 0 || r.Date.Before(summary.MinDate) {
			summary.MinDate = r.Date
		}

		if i == 0 || r.Date.After(summary.MaxDate) {
			summary.MaxDate = r.Date
		}

		switch {
		case r.HolidayDivision.IsTradingDay():
			summary.TradingDays++
		case r.HolidayDivision.IsHoliday():
			summary.Holidays++
		}
	}

	return summary
}

// DuplicateDates returns the dates that appear more than once, in first-seen order.
func DuplicateDates(records []types.CalendarRecord) []time.Time {
	seen := make(map[time.Time]int, len(records))

	var duplicates []time.Time

	for _, r := range records {
		seen[r.Date]++
		if seen[r.Date] == 2 {
			duplicates = append(duplicates, r.Date)
		}
	}

	return duplicates
}
