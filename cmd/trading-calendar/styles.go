package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/trading-calendar/internal/types"
	"github.com/rxtech-lab/trading-calendar/pkg/calendar"
	"github.com/rxtech-lab/trading-calendar/pkg/errors"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle for summary field names.
	LabelStyle = lipgloss.NewStyle().Faint(true)

	// HelpStyle for hints.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true)
)

const displayDateLayout = "2006-01-02"

func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %s %v\n", LabelStyle.Render(label+":"), value)
}

// renderSummary prints the outcome of a successful fetch.
func renderSummary(w io.Writer, summary *types.PersistSummary) {
	fmt.Fprintln(w, TitleStyle.Render("Trading calendar saved"))
	field(w, "JSON", summary.JSONPath)

	if !summary.HasRecords {
		fmt.Fprintln(w, HelpStyle.Render("  Response has no trading_calendar records, Parquet not written"))

		return
	}

	field(w, "Parquet", summary.ParquetPath)
	field(w, "Total records", summary.TotalRecords)

	if summary.TotalRecords > 0 {
		field(w, "Date range", fmt.Sprintf("%s to %s",
			summary.MinDate.Format(displayDateLayout), summary.MaxDate.Format(displayDateLayout)))
	}

	field(w, "Trading days (HolidayDivision=1)", summary.TradingDays)
	field(w, "Holidays (HolidayDivision=0)", summary.Holidays)
}

// renderStatus prints the session state of the Tokyo market at a point in time.
func renderStatus(w io.Writer, days *calendar.TradingDays, at time.Time) {
	state := days.MarketState(at)

	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("%s %s", state, state.Label())))
	field(w, "Time", at.In(calendar.Tokyo).Format("2006-01-02 15:04 MST"))
	field(w, "Trading day", yesNo(days.IsTradingDay(at)))
	field(w, "Data window", yesNo(calendar.IsDataWindow(at)))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

// reportError prints err with a hint for the failures a user can fix.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("%s: %v", kindLabel(err), err)))

	if errors.HasCode(err, errors.ErrCodeMissingCredential) {
		fmt.Fprintln(w, HelpStyle.Render("Set the refresh token with one of:"))
		fmt.Fprintln(w, HelpStyle.Render("  export JQUANTS_REFRESH_TOKEN=your_refresh_token"))
		fmt.Fprintln(w, HelpStyle.Render("  echo JQUANTS_REFRESH_TOKEN=your_refresh_token > .env.jquants"))

		return
	}

	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		for _, fe := range invalid {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}

			fmt.Fprintln(w, HelpStyle.Render(fmt.Sprintf("  %s %q fails %s", fe.Field(), fmt.Sprint(fe.Value()), rule)))
		}

		return
	}

	if httpErr, ok := errors.AsHTTPError(err); ok {
		fmt.Fprintf(w, "Status: %d\n", httpErr.StatusCode)
		fmt.Fprintf(w, "Body: %s\n", httpErr.Body)
	}
}

func kindLabel(err error) string {
	return string(errors.KindOf(err))
}
