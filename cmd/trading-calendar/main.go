package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/trading-calendar/internal/config"
	"github.com/rxtech-lab/trading-calendar/internal/logger"
	"github.com/rxtech-lab/trading-calendar/internal/pipeline"
	"github.com/rxtech-lab/trading-calendar/internal/types"
	"github.com/rxtech-lab/trading-calendar/internal/version"
	"github.com/rxtech-lab/trading-calendar/pkg/calendar"
	"github.com/rxtech-lab/trading-calendar/pkg/errors"
	"github.com/rxtech-lab/trading-calendar/pkg/jquants"
	"github.com/urfave/cli/v3"
	"go.uber.org/automaxprocs/maxprocs"
)

func fetchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML config file",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Path to a dotenv file holding JQUANTS_REFRESH_TOKEN",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output directory for trading_calendar.json and trading_calendar.parquet",
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "J-Quants API root",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format (console, json)",
		},
	}
}

// loadConfig merges the config sources with the flags set on cmd.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: cmd.String("config"),
		EnvFile:    cmd.String("env-file"),
	})
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("output") {
		cfg.OutputDir = cmd.String("output")
	}

	if cmd.IsSet("base-url") {
		cfg.BaseURL = cmd.String("base-url")
	}

	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}

	if cmd.IsSet("log-format") {
		cfg.LogFormat = cmd.String("log-format")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// fetchAction authenticates, downloads the trading calendar and saves it.
func fetchAction(stdout, stderr io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.LogFormat, cfg.LogLevel)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create logger", err)
		}
		defer func() { _ = log.Sync() }()

		client := jquants.NewClient(cfg.BaseURL, jquants.WithLogger(log))
		persister := calendar.NewPersister(log, calendar.WithProgress(stderr))

		summary, err := pipeline.New(client, client, persister, log).Run(ctx, pipeline.Params{
			RefreshToken: cfg.RefreshToken,
			OutputDir:    cfg.OutputDir,
		})
		if err != nil {
			return err
		}

		renderSummary(stdout, summary)

		return nil
	}
}

// statusAction prints the Tokyo market session state at a point in time.
func statusAction(stdout io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		at := cmd.Timestamp("at")
		if at.IsZero() {
			at = time.Now()
		}

		path := cmd.String("calendar")

		records, err := calendar.LoadJSON(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}

			fmt.Fprintln(stdout, HelpStyle.Render(fmt.Sprintf("%s not found, using weekdays as trading days", path)))
		}

		renderStatus(stdout, calendar.NewTradingDays(records), at)

		return nil
	}
}

// configInitAction writes the config schema and a sample config.
func configInitAction(stdout io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		result, err := config.Init(cmd.String("dir"))
		if err != nil {
			return err
		}

		field(stdout, "Schema", result.SchemaPath)

		if result.SampleWritten {
			field(stdout, "Sample config", result.SamplePath)
		} else {
			fmt.Fprintln(stdout, HelpStyle.Render(fmt.Sprintf("  %s already exists, left unchanged", result.SamplePath)))
		}

		return nil
	}
}

// viewAction opens an interactive browser over a saved calendar.
func viewAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("calendar")
	model := NewModel(path, calendarLoader(ctx, path), time.Now)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	return err
}

// calendarLoader picks the reader for path by its extension.
func calendarLoader(ctx context.Context, path string) Loader {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return func() ([]types.CalendarRecord, error) {
			return calendar.LoadParquet(ctx, path)
		}
	}

	return func() ([]types.CalendarRecord, error) {
		return calendar.LoadJSON(path)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "trading-calendar",
		Usage:     "Fetch the J-Quants trading calendar and save it as JSON and Parquet",
		Version:   version.GetVersion(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     fetchFlags(),
		Action:    fetchAction(stdout, stderr),
		Commands: []*cli.Command{
			{
				Name:   "fetch",
				Usage:  "Fetch the trading calendar (default)",
				Flags:  fetchFlags(),
				Action: fetchAction(stdout, stderr),
			},
			{
				Name:  "status",
				Usage: "Show the Tokyo Stock Exchange session state",
				Flags: []cli.Flag{
					&cli.TimestampFlag{
						Name:  "at",
						Usage: "Point in time in RFC3339 format. Defaults to now.",
						Config: cli.TimestampConfig{
							Layouts: []string{time.RFC3339},
						},
					},
					&cli.StringFlag{
						Name:  "calendar",
						Usage: "Path to a saved trading_calendar.json",
						Value: filepath.Join(config.DefaultOutputDir, calendar.JSONFileName),
					},
				},
				Action: statusAction(stdout),
			},
			{
				Name:  "view",
				Usage: "Browse a saved trading calendar",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "calendar",
						Usage: "Path to a saved trading_calendar.json or trading_calendar.parquet",
						Value: filepath.Join(config.DefaultOutputDir, calendar.ParquetFileName),
					},
				},
				Action: viewAction,
			},
			{
				Name:  "config",
				Usage: "Manage the YAML config file",
				Commands: []*cli.Command{
					{
						Name:  "init",
						Usage: "Write the config JSON schema and a sample config",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "dir",
								Usage: "Directory to write into",
								Value: "config",
							},
						},
						Action: configInitAction(stdout),
					},
				},
			},
		},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := newApp(stdout, stderr).Run(ctx, args); err != nil {
		reportError(stderr, err)

		return 1
	}

	return 0
}

func main() {
	undo, _ := maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args, os.Stdout, os.Stderr)

	stop()
	undo()
	os.Exit(code)
}
