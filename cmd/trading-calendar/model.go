package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/trading-calendar/internal/types"
	"github.com/rxtech-lab/trading-calendar/pkg/calendar"
)

// Application states.
const (
	StateLoading = iota
	StateMonthSelect
	StateDayTable
)

// Loader reads a saved trading calendar.
type Loader func() ([]types.CalendarRecord, error)

// Model is the Bubble Tea model for browsing a saved trading calendar.
type Model struct {
	state     int
	source    string
	load      Loader
	now       func() time.Time
	monthList list.Model
	dayTable  table.Model
	days      *calendar.TradingDays
	months    map[string][]types.CalendarRecord
	month     string
	err       error
	width     int
	height    int
}

// NewModel creates a Model that reads its records with load.
func NewModel(source string, load Loader, now func() time.Time) Model {
	return Model{
		state:     StateLoading,
		source:    source,
		load:      load,
		now:       now,
		monthList: NewMonthList(nil),
		dayTable:  NewDayTable(),
		days:      calendar.NewTradingDays(nil),
		months:    make(map[string][]types.CalendarRecord),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadCalendar
}

func (m Model) loadCalendar() tea.Msg {
	records, err := m.load()
	if err != nil {
		return CalendarErrorMsg{Err: err}
	}

	return CalendarLoadedMsg{Records: records}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.state == StateDayTable {
				m.state = StateMonthSelect
				m.month = ""

				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.monthList.SetSize(msg.Width, msg.Height-6)
		m.dayTable.SetWidth(msg.Width)
		m.dayTable.SetHeight(msg.Height - 6)

		return m, nil

	case CalendarLoadedMsg:
		m.days = calendar.NewTradingDays(msg.Records)
		m.months = GroupByMonth(msg.Records)
		m.state = StateMonthSelect

		return m, m.monthList.SetItems(MonthItems(m.months))

	case CalendarErrorMsg:
		m.err = msg.Err
		m.state = StateMonthSelect

		return m, nil
	}

	switch m.state {
	case StateMonthSelect:
		return m.updateMonthSelect(msg)
	case StateDayTable:
		return m.updateDayTable(msg)
	}

	return m, nil
}

func (m Model) updateMonthSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		if item, ok := m.monthList.SelectedItem().(listItem); ok {
			m.month = item.name
			m.dayTable = UpdateDayRows(m.dayTable, m.months[item.name])
			m.dayTable.GotoTop()
			m.state = StateDayTable

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.monthList, cmd = m.monthList.Update(msg)

	return m, cmd
}

func (m Model) updateDayTable(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.dayTable, cmd = m.dayTable.Update(msg)

	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateLoading:
		s.WriteString(fmt.Sprintf("Loading %s...\n", m.source))

	case StateMonthSelect:
		s.WriteString(TitleStyle.Render("Trading Calendar"))
		s.WriteString("\n")
		s.WriteString(m.statusLine())
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		} else if len(m.months) == 0 {
			s.WriteString(fmt.Sprintf("No records in %s\n", m.source))
		} else {
			s.WriteString(m.monthList.View())
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to select, q to quit"))

	case StateDayTable:
		records := m.months[m.month]
		trading, holidays := countDivisions(records)

		s.WriteString(TitleStyle.Render(m.month))
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render(fmt.Sprintf("%d trading days, %d holidays", trading, holidays)))
		s.WriteString("\n\n")
		s.WriteString(m.dayTable.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("q: quit | Esc: back"))
	}

	return s.String()
}

func (m Model) statusLine() string {
	now := m.now()
	state := m.days.MarketState(now)

	return HelpStyle.Render(fmt.Sprintf("%s  %s %s | %s",
		now.In(calendar.Tokyo).Format("2006-01-02 15:04 MST"), state, state.Label(), m.source))
}
