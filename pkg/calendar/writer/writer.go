package writer

import (
	"github.com/rxtech-lab/trading-calendar/internal/types"
)

// CalendarWriter defines the interface for writing coerced calendar records to a columnar file.
type CalendarWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single calendar record.
	Write(record types.CalendarRecord) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}
