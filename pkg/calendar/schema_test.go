package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rxtech-lab/trading-calendar/internal/types"
	"github.com/rxtech-lab/trading-calendar/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type SchemaTestSuite struct {
	suite.Suite
}

func TestSchemaSuite(t *testing.T) {
	suite.Run(t, new(SchemaTestSuite))
}

func (suite *SchemaTestSuite) TestParseHolidayDivision() {
	testCases := []struct {
		name    string
		raw     string
		want    types.HolidayDivision
		wantErr bool
	}{
		{name: "string", raw: `"1"`, want: 1},
		{name: "string zero", raw: `"0"`, want: 0},
		{name: "padded string", raw: `" 2 "`, want: 2},
		{name: "integer", raw: `3`, want: 3},
		{name: "integral float", raw: `1.0`, want: 1},
		{name: "non numeric string", raw: `"x"`, wantErr: true},
		{name: "fractional", raw: `1.5`, wantErr: true},
		{name: "float string", raw: `"1.0"`, wantErr: true},
		{name: "negative", raw: `-1`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "bool", raw: `true`, wantErr: true},
		{name: "object", raw: `{}`, wantErr: true},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			got, err := ParseHolidayDivision(json.RawMessage(tc.raw))
			if tc.wantErr {
				suite.Error(err)
				suite.True(errors.HasCode(err, errors.ErrCodeSchemaInvalid))

				return
			}

			suite.NoError(err)
			suite.Equal(tc.want, got)
		})
	}
}

func (suite *SchemaTestSuite) TestParseHolidayDivisionOutOfRange() {
	for _, raw := range []string{`1e20`, `9223372036854775808`, `1e300`, `-1e20`} {
		suite.Run(raw, func() {
			_, err := ParseHolidayDivision(json.RawMessage(raw))
			suite.Require().Error(err)
			suite.Equal(errors.KindSchema, errors.KindOf(err))
			suite.Contains(err.Error(), "is not an integer")
			suite.NotContains(err.Error(), "negative")
		})
	}
}

func (suite *SchemaTestSuite) TestParseDate() {
	want := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "iso date", raw: `"2024-01-04"`},
		{name: "rfc3339", raw: `"2024-01-04T00:00:00+09:00"`},
		{name: "datetime", raw: `"2024-01-04 15:00:00"`},
		{name: "slashes", raw: `"2024/01/04"`},
		{name: "compact", raw: `"20240104"`},
		{name: "garbage", raw: `"not a date"`, wantErr: true},
		{name: "number", raw: `20240104`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			got, err := ParseDate(json.RawMessage(tc.raw))
			if tc.wantErr {
				suite.Error(err)
				suite.Equal(errors.KindSchema, errors.KindOf(err))

				return
			}

			suite.NoError(err)
			suite.Equal(want, got)
		})
	}
}

func (suite *SchemaTestSuite) TestDecodeRecords() {
	records, err := DecodeRecords(json.RawMessage(`null`))
	suite.NoError(err)
	suite.Empty(records)

	records, err = DecodeRecords(json.RawMessage(`[{"Date":"2024-01-04","HolidayDivision":"1"}]`))
	suite.NoError(err)
	suite.Len(records, 1)

	_, err = DecodeRecords(json.RawMessage(`"oops"`))
	suite.True(errors.HasCode(err, errors.ErrCodeSchemaInvalid))

	_, err = DecodeRecords(json.RawMessage(`[1, 2]`))
	suite.True(errors.HasCode(err, errors.ErrCodeSchemaInvalid))
}

func (suite *SchemaTestSuite) TestCoerceRecords() {
	raw, err := DecodeRecords(json.RawMessage(
		`[{"Date":"2024-01-04","HolidayDivision":"1","Extra":true},{"Date":"2024-01-01","HolidayDivision":0}]`,
	))
	suite.Require().NoError(err)

	records, err := CoerceRecords(raw)
	suite.Require().NoError(err)
	suite.Equal([]types.CalendarRecord{
		{Date: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), HolidayDivision: types.DivisionBusinessDay},
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), HolidayDivision: types.DivisionNonBusinessDay},
	}, records)
}

func (suite *SchemaTestSuite) TestCoerceRecordsFailsOnAnyBadRecord() {
	testCases := []struct {
		name    string
		raw     string
		message string
	}{
		{name: "bad division", raw: `[{"Date":"2024-01-04","HolidayDivision":"1"},{"Date":"2024-01-05","HolidayDivision":"x"}]`, message: "record 1"},
		{name: "missing date", raw: `[{"HolidayDivision":"1"}]`, message: "missing Date"},
		{name: "missing division", raw: `[{"Date":"2024-01-04"}]`, message: "missing HolidayDivision"},
		{name: "null record", raw: `[null]`, message: "missing Date"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			raw, err := DecodeRecords(json.RawMessage(tc.raw))
			suite.Require().NoError(err)

			records, err := CoerceRecords(raw)
			suite.Nil(records)
			suite.Require().Error(err)
			suite.Equal(errors.KindSchema, errors.KindOf(err))
			suite.Contains(err.Error(), tc.message)
		})
	}
}
