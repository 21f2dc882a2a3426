package main

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/trading-calendar/internal/types"
)

const monthLayout = "2006-01"

// listItem implements list.Item for the month list.
type listItem struct {
	name        string
	description string
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return i.description }
func (i listItem) FilterValue() string { return i.name }

// NewMonthList creates a list for month selection.
func NewMonthList(items []list.Item) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Month"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// GroupByMonth buckets records by YYYY-MM, keeping their order inside a month.
func GroupByMonth(records []types.CalendarRecord) map[string][]types.CalendarRecord {
	months := make(map[string][]types.CalendarRecord)

	for _, r := range records {
		key := r.Date.Format(monthLayout)
		months[key] = append(months[key], r)
	}

	return months
}

// MonthItems returns one list item per month in chronological order.
func MonthItems(months map[string][]types.CalendarRecord) []list.Item {
	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	items := make([]list.Item, 0, len(keys))

	for _, key := range keys {
		trading, holidays := countDivisions(months[key])
		items = append(items, listItem{
			name:        key,
			description: fmt.Sprintf("%d trading days, %d holidays", trading, holidays),
		})
	}

	return items
}

func countDivisions(records []types.CalendarRecord) (trading, holidays int) {
	for _, r := range records {
		if r.HolidayDivision.IsTradingDay() {
			trading++
		}

		if r.HolidayDivision.IsHoliday() {
			holidays++
		}
	}

	return trading, holidays
}

// DivisionName describes a HolidayDivision code.
func DivisionName(d types.HolidayDivision) string {
	switch d {
	case types.DivisionNonBusinessDay:
		return "Non-business day"
	case types.DivisionBusinessDay:
		return "Business day"
	case types.DivisionHalfDay:
		return "Half-day trading"
	case types.DivisionHolidayTrading:
		return "Holiday trading"
	default:
		return "Unknown"
	}
}

// NewDayTable creates a table for the days of one month.
func NewDayTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Weekday", Width: 10},
		{Title: "Division", Width: 10},
		{Title: "Meaning", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdateDayRows replaces the table rows with records.
func UpdateDayRows(t table.Model, records []types.CalendarRecord) table.Model {
	rows := make([]table.Row, 0, len(records))

	for _, r := range records {
		rows = append(rows, table.Row{
			r.Date.Format(displayDateLayout),
			r.Date.Weekday().String(),
			fmt.Sprintf("%d", r.HolidayDivision),
			DivisionName(r.HolidayDivision),
		})
	}

	t.SetRows(rows)

	return t
}
