package mocks

//go:generate mockgen -destination=./mock_pipeline.go -package=mocks github.com/rxtech-lab/trading-calendar/internal/pipeline Authenticator,Fetcher,Persister
//go:generate mockgen -destination=./mock_writer.go -package=mocks github.com/rxtech-lab/trading-calendar/pkg/calendar/writer CalendarWriter
