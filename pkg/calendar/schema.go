// Package calendar persists J-Quants trading calendars and answers trading-day
// and session questions from a saved calendar.
package calendar

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/trading-calendar/internal/types"
	"github.com/rxtech-lab/trading-calendar/pkg/errors"
)

const (
	dateField     = "Date"
	divisionField = "HolidayDivision"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"20060102",
}

// DecodeRecords splits the raw trading_calendar value into records. null is an empty list.
func DecodeRecords(raw json.RawMessage) ([]types.RawRecord, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return []types.RawRecord{}, nil
	}

	var records []types.RawRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchemaInvalid, "trading_calendar is not an array of objects", err)
	}

	return records, nil
}

// CoerceRecords converts every raw record or none: the first failure is returned
// as a schema error naming the record index.
func CoerceRecords(raw []types.RawRecord) ([]types.CalendarRecord, error) {
	records := make([]types.CalendarRecord, 0, len(raw))

	for i, r := range raw {
		record, err := CoerceRecord(r)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeSchemaInvalid, err, "record %d", i)
		}

		records = append(records, record)
	}

	return records, nil
}

// CoerceRecord parses Date and casts HolidayDivision to an integer.
func CoerceRecord(raw types.RawRecord) (types.CalendarRecord, error) {
	dateRaw, ok := raw[dateField]
	if !ok {
		return types.CalendarRecord{}, errors.Newf(errors.ErrCodeSchemaInvalid, "missing %s", dateField)
	}

	date, err := ParseDate(dateRaw)
	if err != nil {
		return types.CalendarRecord{}, err
	}

	divisionRaw, ok := raw[divisionField]
	if !ok {
		return types.CalendarRecord{}, errors.Newf(errors.ErrCodeSchemaInvalid, "missing %s", divisionField)
	}

	division, err := ParseHolidayDivision(divisionRaw)
	if err != nil {
		return types.CalendarRecord{}, err
	}

	return types.CalendarRecord{Date: date, HolidayDivision: division}, nil
}

// ParseDate reads a JSON string holding a date and returns it at UTC midnight.
func ParseDate(raw json.RawMessage) (time.Time, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, errors.Newf(errors.ErrCodeSchemaInvalid, "%s %s is not a string", dateField, string(raw))
	}

	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, errors.Newf(errors.ErrCodeSchemaInvalid, "%s %q is not a date", dateField, s)
}

// ParseHolidayDivision accepts a JSON integer, an integral number or a numeric
// string. Anything else, and negative values, are schema errors.
func ParseHolidayDivision(raw json.RawMessage) (types.HolidayDivision, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, errors.Wrapf(errors.ErrCodeSchemaInvalid, err, "%s is not valid JSON", divisionField)
	}

	var (
		n   int64
		err error
	)

	switch value := v.(type) {
	case json.Number:
		n, err = integralNumber(string(value))
	case string:
		n, err = strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	default:
		err = errors.Newf(errors.ErrCodeSchemaInvalid, "unsupported type %T", v)
	}

	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeSchemaInvalid, err, "%s %s is not an integer", divisionField, string(raw))
	}

	if n < 0 {
		return 0, errors.Newf(errors.ErrCodeSchemaInvalid, "%s %d is negative", divisionField, n)
	}

	return types.HolidayDivision(n), nil
}

func integralNumber(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, errors.Newf(errors.ErrCodeSchemaInvalid, "%s has a fractional part", s)
	}

	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, errors.Newf(errors.ErrCodeSchemaInvalid, "%s is out of range", s)
	}

	return int64(f), nil
}
