package mocks

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rxtech-lab/trading-calendar/internal/types"
)

func TestCalendarGenerator_Generate(t *testing.T) {
	gen := NewCalendarGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Days = 60

	records := gen.Generate(config)

	if len(records) != 60 {
		t.Errorf("expected 60 records, got %d", len(records))
	}

	// Verify consecutive days
	for i := 1; i < len(records); i++ {
		if gap := records[i].Date.Sub(records[i-1].Date); gap != 24*time.Hour {
			t.Errorf("unexpected gap at index %d: %v", i, gap)
		}
	}

	// Verify weekends are closed
	for i, r := range records {
		wd := r.Date.Weekday()
		if (wd == time.Saturday || wd == time.Sunday) && r.HolidayDivision != types.DivisionNonBusinessDay {
			t.Errorf("weekend at index %d is not a non-business day", i)
		}
	}

	// Jan 1 to Jan 3 is the year-end closure
	for i := 0; i < 3; i++ {
		if records[i].HolidayDivision != types.DivisionNonBusinessDay {
			t.Errorf("expected %s to be closed", records[i].Date.Format("2006-01-02"))
		}
	}
}

func TestCalendarGenerator_Reproducibility(t *testing.T) {
	config := DefaultConfig()

	a := NewCalendarGenerator(7).Generate(config)
	b := NewCalendarGenerator(7).Generate(config)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("records differ at index %d", i)
		}
	}
}

func TestGenerateYear(t *testing.T) {
	if n := len(GenerateYear(2024)); n != 366 {
		t.Errorf("expected 366 days in 2024, got %d", n)
	}

	if n := len(GenerateYear(2025)); n != 365 {
		t.Errorf("expected 365 days in 2025, got %d", n)
	}
}

func TestBody(t *testing.T) {
	records := []types.CalendarRecord{
		{Date: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), HolidayDivision: types.DivisionBusinessDay},
	}

	var decoded map[string][]map[string]string
	if err := json.Unmarshal(Body(records), &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	days := decoded[types.RecordsKey]
	if len(days) != 1 || days[0]["Date"] != "2024-01-04" || days[0]["HolidayDivision"] != "1" {
		t.Errorf("unexpected body: %v", decoded)
	}
}
