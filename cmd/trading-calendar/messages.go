package main

import "github.com/rxtech-lab/trading-calendar/internal/types"

// CalendarLoadedMsg carries the records read from a saved calendar.
type CalendarLoadedMsg struct {
	Records []types.CalendarRecord
}

// CalendarErrorMsg indicates the saved calendar could not be read.
type CalendarErrorMsg struct {
	Err error
}
