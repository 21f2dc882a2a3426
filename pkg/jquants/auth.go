package jquants

import (
	"context"
	"encoding/json"

	"github.com/rxtech-lab/trading-calendar/pkg/errors"
	"go.uber.org/zap"
)

type authRefreshResponse struct {
	IDToken string `json:"idToken"`
}

// Authenticate exchanges a refresh token for a short-lived ID token.
func (c *Client) Authenticate(ctx context.Context, refreshToken string) (string, error) {
	c.logger.Debug("Requesting ID token", zap.String("path", authRefreshPath))

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("refreshtoken", refreshToken).
		Post(authRefreshPath)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeAuthFailed, "token refresh request failed", err)
	}

	if !resp.IsSuccess() {
		return "", errors.Wrap(errors.ErrCodeAuthFailed, "token refresh rejected", &errors.HTTPError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       resp.Body(),
		})
	}

	var body authRefreshResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", errors.Wrap(errors.ErrCodeAuthMalformedResponse, "token refresh response is not valid JSON", err)
	}

	if body.IDToken == "" {
		return "", errors.New(errors.ErrCodeAuthMalformedResponse, "token refresh response has no idToken")
	}

	return body.IDToken, nil
}
