package calendar

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/trading-calendar/internal/types"
	"github.com/rxtech-lab/trading-calendar/pkg/calendar/writer"
	"github.com/rxtech-lab/trading-calendar/pkg/errors"
)

// LoadJSON reads the records of a saved trading_calendar.json.
// A file without the trading_calendar key yields no records.
func LoadJSON(path string) ([]types.CalendarRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeCalendarReadFailed, err, "failed to read %s", path)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeCalendarReadFailed, err, "failed to parse %s", path)
	}

	raw, err := DecodeRecords(fields[types.RecordsKey])
	if err != nil {
		return nil, err
	}

	return CoerceRecords(raw)
}

// LoadParquet reads the records of a saved trading_calendar.parquet in file order.
func LoadParquet(ctx context.Context, path string) ([]types.CalendarRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeCalendarReadFailed, err, "failed to open %s", path)
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCalendarReadFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	query, args, err := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Question).
		Select(`"Date"`, `"HolidayDivision"`).
		From(fmt.Sprintf("read_parquet('%s')", writer.EscapeLiteral(path))).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCalendarReadFailed, "failed to build query", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeCalendarReadFailed, err, "failed to query %s", path)
	}
	defer rows.Close()

	var records []types.CalendarRecord

	for rows.Next() {
		var date time.Time

		var division int64

		if err := rows.Scan(&date, &division); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCalendarReadFailed, "failed to scan row", err)
		}

		records = append(records, types.CalendarRecord{
			Date:            time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
			HolidayDivision: types.HolidayDivision(division),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCalendarReadFailed, "error iterating rows", err)
	}

	return records, nil
}
