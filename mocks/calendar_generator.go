package mocks

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/rxtech-lab/trading-calendar/internal/types"
)

// CalendarGenerator generates realistic exchange calendars for testing and benchmarking.
type CalendarGenerator struct {
	rng *rand.Rand
}

// NewCalendarGenerator creates a new CalendarGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewCalendarGenerator(seed int64) *CalendarGenerator {
	return &CalendarGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how a calendar is generated.
type GeneratorConfig struct {
	// StartDate is the first day of the calendar
	StartDate time.Time
	// Days is the number of consecutive days to generate
	Days int
	// HolidayRate is the chance that a weekday is a public holiday (0.0 to 1.0)
	HolidayRate float64
	// HalfDayRate is the chance that a remaining weekday is a half trading day
	HalfDayRate float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Days:        366,
		HolidayRate: 0.06,
		HalfDayRate: 0.0,
	}
}

// Generate creates one record per day starting at StartDate.
// Weekends and the year-end closure (Dec 31 to Jan 3) are always non-business days.
func (g *CalendarGenerator) Generate(config GeneratorConfig) []types.CalendarRecord {
	records := make([]types.CalendarRecord, config.Days)
	start := time.Date(config.StartDate.Year(), config.StartDate.Month(), config.StartDate.Day(), 0, 0, 0, 0, time.UTC)

	for i := 0; i < config.Days; i++ {
		date := start.AddDate(0, 0, i)

		records[i] = types.CalendarRecord{
			Date:            date,
			HolidayDivision: g.division(date, config),
		}
	}

	return records
}

func (g *CalendarGenerator) division(date time.Time, config GeneratorConfig) types.HolidayDivision {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return types.DivisionNonBusinessDay
	}

	if isYearEnd(date) {
		return types.DivisionNonBusinessDay
	}

	if g.rng.Float64() < config.HolidayRate {
		return types.DivisionNonBusinessDay
	}

	if g.rng.Float64() < config.HalfDayRate {
		return types.DivisionHalfDay
	}

	return types.DivisionBusinessDay
}

func isYearEnd(date time.Time) bool {
	if date.Month() == time.December && date.Day() == 31 {
		return true
	}

	return date.Month() == time.January && date.Day() <= 3
}

// GenerateYear is a convenience function that generates a full calendar year
// with default settings.
func GenerateYear(year int) []types.CalendarRecord {
	gen := NewCalendarGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.StartDate = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	config.Days = int(config.StartDate.AddDate(1, 0, 0).Sub(config.StartDate).Hours() / 24)
	return gen.Generate(config)
}

// Body renders records the way the J-Quants trading calendar endpoint does,
// with HolidayDivision encoded as a string.
func Body(records []types.CalendarRecord) []byte {
	type day struct {
		Date            string `json:"Date"`
		HolidayDivision string `json:"HolidayDivision"`
	}

	days := make([]day, len(records))
	for i, r := range records {
		days[i] = day{
			Date:            r.Date.Format("2006-01-02"),
			HolidayDivision: strconv.Itoa(int(r.HolidayDivision)),
		}
	}

	body, _ := json.Marshal(map[string][]day{types.RecordsKey: days})

	return body
}
