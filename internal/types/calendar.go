package types

import (
	"encoding/json"
	"time"
)

// RecordsKey is the top-level key of the trading calendar API response holding the records.
const RecordsKey = "trading_calendar"

// HolidayDivision classifies a calendar date.
type HolidayDivision int

const (
	// DivisionNonBusinessDay is a market holiday.
	DivisionNonBusinessDay HolidayDivision = 0
	// DivisionBusinessDay is a regular trading day.
	DivisionBusinessDay HolidayDivision = 1
	// DivisionHalfDay is a trading day with the morning session only.
	DivisionHalfDay HolidayDivision = 2
	// DivisionHolidayTrading is a non-business day on which holiday trading takes place.
	DivisionHolidayTrading HolidayDivision = 3
)

// IsTradingDay reports whether the division is a business day.
func (d HolidayDivision) IsTradingDay() bool {
	return d == DivisionBusinessDay
}

// IsHoliday reports whether the division is a market holiday.
func (d HolidayDivision) IsHoliday() bool {
	return d == DivisionNonBusinessDay
}

// CalendarRecord is one coerced trading calendar entry.
type CalendarRecord struct {
	// Date is the calendar date at UTC midnight.
	Date            time.Time
	HolidayDivision HolidayDivision
}

// RawRecord is a trading calendar entry exactly as the API returned it.
type RawRecord map[string]json.RawMessage

// CalendarResponse is the parsed body of the trading calendar endpoint.
type CalendarResponse struct {
	// Body is the response body, byte for byte.
	Body json.RawMessage
	// HasRecords is true when the body carries the trading_calendar key.
	HasRecords bool
	// Records is the raw value under trading_calendar. Its shape is checked when persisting.
	Records json.RawMessage
	// PaginationKey is returned by the API for large responses. It is not followed.
	PaginationKey string
}

// PersistSummary describes what Persist wrote.
type PersistSummary struct {
	JSONPath    string
	ParquetPath string
	// HasRecords is false when the response had no trading_calendar key and no Parquet file was written.
	HasRecords   bool
	TotalRecords int
	MinDate      time.Time
	MaxDate      time.Time
	TradingDays  int
	Holidays     int
}
