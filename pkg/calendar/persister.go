package calendar

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/trading-calendar/internal/logger"
	"github.com/rxtech-lab/trading-calendar/internal/types"
	"github.com/rxtech-lab/trading-calendar/pkg/calendar/writer"
	"github.com/rxtech-lab/trading-calendar/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

const (
	// JSONFileName is the verbatim response file written to the output directory.
	JSONFileName = "trading_calendar.json"
	// ParquetFileName is the columnar file written to the output directory.
	ParquetFileName = "trading_calendar.parquet"
)

// WriterFactory builds the columnar writer for an output path.
type WriterFactory func(outputPath string) writer.CalendarWriter

// Persister writes a trading calendar response to disk.
type Persister struct {
	logger    *logger.Logger
	progress  io.Writer
	newWriter WriterFactory
}

// PersisterOption configures a Persister.
type PersisterOption func(*Persister)

// WithProgress renders a progress bar for record inserts to w.
func WithProgress(w io.Writer) PersisterOption {
	return func(p *Persister) {
		p.progress = w
	}
}

// WithWriterFactory replaces the DuckDB Parquet writer.
func WithWriterFactory(f WriterFactory) PersisterOption {
	return func(p *Persister) {
		p.newWriter = f
	}
}

// NewPersister creates a Persister that writes Parquet through DuckDB.
func NewPersister(l *logger.Logger, opts ...PersisterOption) *Persister {
	if l == nil {
		l = logger.NewNopLogger()
	}

	p := &Persister{
		logger:    l,
		progress:  io.Discard,
		newWriter: writer.NewDuckDBWriter,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Persist writes the response verbatim to trading_calendar.json and, when the
// response carries records, a coerced trading_calendar.parquet.
// Records are coerced before the Parquet writer is opened, so a schema error
// never leaves a partial Parquet file. The JSON file is not removed when a later
// step fails.
func (p *Persister) Persist(ctx context.Context, response *types.CalendarResponse, outputDir string) (*types.PersistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if response == nil {
		return nil, errors.New(errors.ErrCodeSchemaInvalid, "no response to persist")
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeIOFailed, err, "failed to create output directory %s", outputDir)
	}

	jsonPath := filepath.Join(outputDir, JSONFileName)
	if err := writer.WriteJSON(jsonPath, response.Body); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIOFailed, "failed to write JSON file", err)
	}

	p.logger.Info("Saved JSON file", zap.String("path", jsonPath))

	if !response.HasRecords {
		p.logger.Debug("Response has no trading_calendar key, skipping Parquet")

		return &types.PersistSummary{JSONPath: jsonPath}, nil
	}

	raw, err := DecodeRecords(response.Records)
	if err != nil {
		return nil, err
	}

	records, err := CoerceRecords(raw)
	if err != nil {
		return nil, err
	}

	if duplicates := DuplicateDates(records); len(duplicates) > 0 {
		p.logger.Warn("Trading calendar contains duplicate dates", zap.Times("dates", duplicates))
	}

	parquetPath, err := p.writeParquet(filepath.Join(outputDir, ParquetFileName), records)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Saved Parquet file", zap.String("path", parquetPath), zap.Int("rows", len(records)))

	summary := Summarize(records)
	summary.JSONPath = jsonPath
	summary.ParquetPath = parquetPath

	return &summary, nil
}

func (p *Persister) writeParquet(path string, records []types.CalendarRecord) (outputPath string, err error) {
	w := p.newWriter(path)

	if err := w.Initialize(); err != nil {
		return "", errors.Wrap(errors.ErrCodeParquetWriteFailed, "failed to initialize Parquet writer", err)
	}

	defer func() {
		if cerr := w.Close(); cerr != nil {
			if err == nil {
				err = errors.Wrap(errors.ErrCodeParquetWriteFailed, "error closing Parquet writer", cerr)
			} else {
				p.logger.Warn("Error closing Parquet writer after another error", zap.Error(cerr))
			}
		}
	}()

	if len(records) > 0 {
		bar := progressbar.NewOptions(len(records),
			progressbar.OptionSetWriter(p.progress),
			progressbar.OptionSetDescription("Writing trading calendar"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		for _, record := range records {
			if err := w.Write(record); err != nil {
				return "", errors.Wrap(errors.ErrCodeParquetWriteFailed, "failed to write record", err)
			}

			_ = bar.Add(1)
		}

		_ = bar.Finish()
	}

	outputPath, err = w.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeParquetWriteFailed, fmt.Sprintf("failed to export %s", path), err)
	}

	return outputPath, nil
}
