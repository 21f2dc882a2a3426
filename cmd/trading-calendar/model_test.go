package main

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/rxtech-lab/trading-calendar/internal/types"
	"github.com/rxtech-lab/trading-calendar/mocks"
	"github.com/stretchr/testify/assert"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 14, 1, 0, 0, 0, time.UTC) // 10:00 JST
}

func fixedLoader(records []types.CalendarRecord) Loader {
	return func() ([]types.CalendarRecord, error) {
		return records, nil
	}
}

func TestNewModel(t *testing.T) {
	m := NewModel("data/trading_calendar.parquet", fixedLoader(nil), fixedNow)

	assert.Equal(t, StateLoading, m.state)
	assert.NotNil(t, m.months)
	assert.Empty(t, m.month)
}

func TestGroupByMonth(t *testing.T) {
	records := mocks.GenerateYear(2024)
	months := GroupByMonth(records)

	assert.Len(t, months, 12)
	assert.Len(t, months["2024-01"], 31)
	assert.Len(t, months["2024-02"], 29)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), months["2024-02"][0].Date)

	items := MonthItems(months)
	assert.Len(t, items, 12)
	assert.Equal(t, "2024-01", items[0].(listItem).name)
	assert.Equal(t, "2024-12", items[11].(listItem).name)
}

func TestDivisionName(t *testing.T) {
	assert.Equal(t, "Non-business day", DivisionName(types.DivisionNonBusinessDay))
	assert.Equal(t, "Business day", DivisionName(types.DivisionBusinessDay))
	assert.Equal(t, "Half-day trading", DivisionName(types.DivisionHalfDay))
	assert.Equal(t, "Holiday trading", DivisionName(types.DivisionHolidayTrading))
	assert.Equal(t, "Unknown", DivisionName(types.HolidayDivision(9)))
}

func TestUpdateDayRows(t *testing.T) {
	records := []types.CalendarRecord{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), HolidayDivision: types.DivisionNonBusinessDay},
		{Date: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), HolidayDivision: types.DivisionBusinessDay},
	}

	tbl := UpdateDayRows(NewDayTable(), records)
	rows := tbl.Rows()

	assert.Len(t, rows, 2)
	assert.Equal(t, []string{"2024-01-04", "Thursday", "1", "Business day"}, []string(rows[1]))
}

func TestBrowseMonths(t *testing.T) {
	m := NewModel("trading_calendar.json", fixedLoader(mocks.GenerateYear(2024)), fixedNow)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 40))

	// Wait for the month list to render
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("2024-01"))
	}, teatest.WithDuration(2*time.Second))

	// Open January
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("2024-01-04"))
	}, teatest.WithDuration(2*time.Second))

	// Back to the month list
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Select Month"))
	}, teatest.WithDuration(2*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestLoadError(t *testing.T) {
	m := NewModel("missing.json", func() ([]types.CalendarRecord, error) {
		return nil, fmt.Errorf("file not found")
	}, fixedNow)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("file not found"))
	}, teatest.WithDuration(2*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestQuitKey(t *testing.T) {
	m := NewModel("trading_calendar.json", fixedLoader(nil), fixedNow)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
