// Package pipeline runs the authenticate, fetch and persist stages in order and
// stops at the first failure.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trading-calendar/internal/logger"
	"github.com/rxtech-lab/trading-calendar/internal/types"
	"github.com/rxtech-lab/trading-calendar/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultPastDays is how far back the default window starts.
	DefaultPastDays = 730
	// DefaultFutureDays is how far ahead the default window ends.
	DefaultFutureDays = 365
)

// Authenticator exchanges a refresh token for an ID token.
type Authenticator interface {
	Authenticate(ctx context.Context, refreshToken string) (string, error)
}

// Fetcher retrieves the trading calendar for an optional date range.
type Fetcher interface {
	FetchTradingCalendar(ctx context.Context, idToken string, from optional.Option[time.Time], to optional.Option[time.Time]) (*types.CalendarResponse, error)
}

// Persister writes a trading calendar response to an output directory.
type Persister interface {
	Persist(ctx context.Context, response *types.CalendarResponse, outputDir string) (*types.PersistSummary, error)
}

// Params is the explicit input of a run.
type Params struct {
	RefreshToken string
	OutputDir    string
}

// Pipeline is the fetch-and-save state machine.
type Pipeline struct {
	auth      Authenticator
	fetcher   Fetcher
	persister Persister
	logger    *logger.Logger
	now       func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock replaces time.Now for window computation.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New creates a Pipeline from its three stages.
func New(auth Authenticator, fetcher Fetcher, persister Persister, l *logger.Logger, opts ...Option) *Pipeline {
	if l == nil {
		l = logger.NewNopLogger()
	}

	p := &Pipeline{
		auth:      auth,
		fetcher:   fetcher,
		persister: persister,
		logger:    l,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Window returns the default fetch range around now: 730 days back to 365 days ahead.
func Window(now time.Time) (from time.Time, to time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return today.AddDate(0, 0, -DefaultPastDays), today.AddDate(0, 0, DefaultFutureDays)
}

// Run executes the pipeline. Every error is terminal and returned unchanged from
// the stage that raised it; nothing is retried and nothing written is rolled back.
func (p *Pipeline) Run(ctx context.Context, params Params) (*types.PersistSummary, error) {
	log := p.logger.With(zap.String("run_id", uuid.New().String()))

	if params.RefreshToken == "" {
		return nil, errors.New(errors.ErrCodeMissingCredential, "JQUANTS_REFRESH_TOKEN is not set")
	}

	if params.OutputDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "output directory is empty")
	}

	from, to := Window(p.now())

	log.Info("Authenticating with J-Quants API")

	idToken, err := p.auth.Authenticate(ctx, params.RefreshToken)
	if err != nil {
		log.Error("Authentication failed", zap.Error(err))

		return nil, err
	}

	log.Info("Authentication successful")
	log.Info("Fetching trading calendar",
		zap.String("from", from.Format("2006-01-02")),
		zap.String("to", to.Format("2006-01-02")),
	)

	response, err := p.fetcher.FetchTradingCalendar(ctx, idToken, optional.Some(from), optional.Some(to))
	if err != nil {
		log.Error("Fetch failed", zap.Error(err))

		return nil, err
	}

	log.Info("Data fetched successfully", zap.Bool("has_records", response.HasRecords))

	summary, err := p.persister.Persist(ctx, response, params.OutputDir)
	if err != nil {
		log.Error("Persist failed", zap.Error(err))

		return nil, err
	}

	log.Info("All done", zap.Int("records", summary.TotalRecords))

	return summary, nil
}
