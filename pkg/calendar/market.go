package calendar

import (
	"time"

	"github.com/rxtech-lab/trading-calendar/internal/types"
)

// Tokyo is Japan Standard Time. Japan does not observe daylight saving time.
var Tokyo = time.FixedZone("JST", 9*60*60)

// MarketState is the Tokyo Stock Exchange session at a point in time.
type MarketState string

const (
	MarketStatePre     MarketState = "PRE"
	MarketStateRegular MarketState = "REGULAR"
	MarketStateBreak   MarketState = "BREAK"
	MarketStateClosed  MarketState = "CLOSED"
)

// Session boundaries in JST, as HHMM.
const (
	preOpen         = 800
	morningOpen     = 900
	morningClose    = 1130
	afternoonOpen   = 1230
	afternoonClose  = 1500
	dataWindowClose = 1600
)

// Label returns the Japanese display label of the state.
func (s MarketState) Label() string {
	switch s {
	case MarketStatePre:
		return "寄付前"
	case MarketStateRegular:
		return "取引中"
	case MarketStateBreak:
		return "昼休み"
	default:
		return "閉場"
	}
}

// TradingDays is the set of business days of a trading calendar.
type TradingDays struct {
	days map[string]struct{}
}

// NewTradingDays keeps the records with HolidayDivision 1.
func NewTradingDays(records []types.CalendarRecord) *TradingDays {
	days := make(map[string]struct{}, len(records))

	for _, r := range records {
		if r.HolidayDivision.IsTradingDay() {
			days[r.Date.Format("2006-01-02")] = struct{}{}
		}
	}

	return &TradingDays{days: days}
}

// Len returns the number of business days known.
func (t *TradingDays) Len() int {
	return len(t.days)
}

// IsTradingDay reports whether the Tokyo date of at is a business day.
// With an empty calendar, Monday to Friday count as business days.
func (t *TradingDays) IsTradingDay(at time.Time) bool {
	jst := at.In(Tokyo)

	if len(t.days) == 0 {
		return jst.Weekday() != time.Saturday && jst.Weekday() != time.Sunday
	}

	_, ok := t.days[jst.Format("2006-01-02")]

	return ok
}

// MarketState returns the session at the given instant.
func (t *TradingDays) MarketState(at time.Time) MarketState {
	if !t.IsTradingDay(at) {
		return MarketStateClosed
	}

	hhmm := clock(at)

	switch {
	case hhmm >= morningOpen && hhmm < morningClose:
		return MarketStateRegular
	case hhmm >= morningClose && hhmm < afternoonOpen:
		return MarketStateBreak
	case hhmm >= afternoonOpen && hhmm < afternoonClose:
		return MarketStateRegular
	case hhmm >= preOpen && hhmm < morningOpen:
		return MarketStatePre
	default:
		return MarketStateClosed
	}
}

// IsDataWindow reports whether at falls in 09:00-16:00 JST, both ends inclusive.
// Closing prices are published 20 minutes after the 15:30 close.
func IsDataWindow(at time.Time) bool {
	hhmm := clock(at)

	return hhmm >= morningOpen && hhmm <= dataWindowClose
}

// ShouldFetchRealtime reports whether live prices are available: a business day inside the data window.
func (t *TradingDays) ShouldFetchRealtime(at time.Time) bool {
	return t.IsTradingDay(at) && IsDataWindow(at)
}

func clock(at time.Time) int {
	jst := at.In(Tokyo)

	return jst.Hour()*100 + jst.Minute()
}
