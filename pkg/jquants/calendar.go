package jquants

import (
	"context"
	"encoding/json"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trading-calendar/internal/types"
	"github.com/rxtech-lab/trading-calendar/pkg/errors"
	"go.uber.org/zap"
)

// FetchTradingCalendar retrieves the trading calendar between from and to, both inclusive.
// An absent bound leaves that side of the range open.
// The body is returned as-is; records are not validated here.
func (c *Client) FetchTradingCalendar(
	ctx context.Context,
	idToken string,
	from optional.Option[time.Time],
	to optional.Option[time.Time],
) (*types.CalendarResponse, error) {
	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(idToken)

	if from.IsSome() {
		req.SetQueryParam("from", from.Unwrap().Format(dateLayout))
	}

	if to.IsSome() {
		req.SetQueryParam("to", to.Unwrap().Format(dateLayout))
	}

	c.logger.Debug("Requesting trading calendar",
		zap.String("path", tradingCalendarPath),
		zap.Any("query", req.QueryParam),
	)

	resp, err := req.Get(tradingCalendarPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, "trading calendar request failed", err)
	}

	if !resp.IsSuccess() {
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, "trading calendar request rejected", &errors.HTTPError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       resp.Body(),
		})
	}

	return ParseCalendarResponse(resp.Body())
}

// ParseCalendarResponse splits a trading calendar body into its parts without
// inspecting individual records. A body that is valid JSON but not an object
// has no records.
func ParseCalendarResponse(body []byte) (*types.CalendarResponse, error) {
	if !json.Valid(body) {
		return nil, errors.New(errors.ErrCodeFetchMalformedResponse, "trading calendar response is not valid JSON")
	}

	result := &types.CalendarResponse{
		Body: json.RawMessage(body),
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return result, nil
	}

	if records, ok := fields[types.RecordsKey]; ok {
		result.HasRecords = true
		result.Records = records
	}

	if key, ok := fields["pagination_key"]; ok {
		// A non-string pagination key is ignored; it is never followed.
		_ = json.Unmarshal(key, &result.PaginationKey)
	}

	return result, nil
}
