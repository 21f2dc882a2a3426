package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/trading-calendar/internal/testhelper/mockserver"
	"github.com/rxtech-lab/trading-calendar/internal/types"
	"github.com/rxtech-lab/trading-calendar/pkg/calendar"
	"github.com/rxtech-lab/trading-calendar/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type CLITestSuite struct {
	suite.Suite
	server    *mockserver.MockJQuantsServer
	tempDir   string
	outputDir string
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (suite *CLITestSuite) SetupTest() {
	suite.server = mockserver.NewMockJQuantsServer("refresh", "id-token")
	suite.server.SetDays([]mockserver.CalendarDay{
		{Date: time.Now().Format("2006-01-02"), HolidayDivision: "1"},
		{Date: time.Now().AddDate(0, 0, 1).Format("2006-01-02"), HolidayDivision: "0"},
	})

	suite.tempDir = suite.T().TempDir()
	suite.outputDir = filepath.Join(suite.tempDir, "data")
	suite.stdout = &bytes.Buffer{}
	suite.stderr = &bytes.Buffer{}

	for _, key := range []string{"JQUANTS_API_BASE_URL", "JQUANTS_OUTPUT_DIR", "LOG_LEVEL", "LOG_FORMAT"} {
		suite.T().Setenv(key, "")
		os.Unsetenv(key)
	}

	suite.T().Setenv("JQUANTS_REFRESH_TOKEN", "refresh")
}

func (suite *CLITestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *CLITestSuite) run(args ...string) int {
	return run(context.Background(), append([]string{"trading-calendar"}, args...), suite.stdout, suite.stderr)
}

func (suite *CLITestSuite) fetchArgs(extra ...string) []string {
	return append([]string{
		"--env-file", filepath.Join(suite.tempDir, "missing.env"),
		"--base-url", suite.server.URL(),
		"--output", suite.outputDir,
		"--log-level", "error",
	}, extra...)
}

func (suite *CLITestSuite) TestFetchDefaultCommand() {
	code := suite.run(suite.fetchArgs()...)
	suite.Equal(0, code, suite.stderr.String())

	suite.FileExists(filepath.Join(suite.outputDir, calendar.JSONFileName))
	suite.FileExists(filepath.Join(suite.outputDir, calendar.ParquetFileName))

	out := suite.stdout.String()
	suite.Contains(out, "Trading calendar saved")
	suite.Contains(out, "Total records")
	suite.Contains(out, "Trading days (HolidayDivision=1)")
	suite.Contains(out, "Holidays (HolidayDivision=0)")
}

func (suite *CLITestSuite) TestFetchSubcommand() {
	code := suite.run(append([]string{"fetch"}, suite.fetchArgs()...)...)
	suite.Equal(0, code, suite.stderr.String())
	suite.Equal(1, suite.server.CalendarCalls())
}

func (suite *CLITestSuite) TestMissingToken() {
	suite.T().Setenv("JQUANTS_REFRESH_TOKEN", "")

	code := suite.run(suite.fetchArgs()...)
	suite.Equal(1, code)
	suite.Equal(0, suite.server.AuthCalls())
	suite.Contains(suite.stderr.String(), "ConfigError")
	suite.Contains(suite.stderr.String(), "export JQUANTS_REFRESH_TOKEN")
	suite.NoDirExists(suite.outputDir)
}

func (suite *CLITestSuite) TestAuthRejected() {
	suite.server.SetAuthResponse(http.StatusUnauthorized, `{"message":"token expired"}`)

	code := suite.run(suite.fetchArgs()...)
	suite.Equal(1, code)
	suite.Contains(suite.stderr.String(), "Status: 401")
	suite.Contains(suite.stderr.String(), "token expired")
	suite.Equal(0, suite.server.CalendarCalls())
}

func (suite *CLITestSuite) TestInvalidLogLevel() {
	code := suite.run(suite.fetchArgs("--log-level", "loud")...)
	suite.Equal(1, code)
	suite.Equal(0, suite.server.AuthCalls())
}

func (suite *CLITestSuite) TestJSONLogFormat() {
	code := suite.run(suite.fetchArgs("--log-format", "json")...)
	suite.Equal(0, code, suite.stderr.String())
	suite.Contains(suite.stdout.String(), "Trading calendar saved")
	suite.NotContains(suite.stdout.String(), `"level"`)
}

func (suite *CLITestSuite) TestInvalidLogFormat() {
	code := suite.run(suite.fetchArgs("--log-format", "xml")...)
	suite.Equal(1, code)
	suite.Equal(0, suite.server.AuthCalls())
	suite.Contains(suite.stderr.String(), "ConfigError")
	suite.Contains(suite.stderr.String(), `LogFormat "xml" fails oneof=console json`)
}

func (suite *CLITestSuite) TestStatus() {
	path := filepath.Join(suite.tempDir, calendar.JSONFileName)
	suite.Require().NoError(os.WriteFile(path, []byte(`{"trading_calendar":[{"Date":"2024-01-04","HolidayDivision":"1"}]}`), 0o644))

	code := suite.run("status", "--at", "2024-01-04T10:00:00+09:00", "--calendar", path)
	suite.Equal(0, code, suite.stderr.String())
	suite.Contains(suite.stdout.String(), "REGULAR")
	suite.Contains(suite.stdout.String(), "取引中")
	suite.Contains(suite.stdout.String(), "2024-01-04 10:00 JST")
}

func (suite *CLITestSuite) TestStatusWithoutCalendar() {
	code := suite.run("status", "--at", "2024-01-06T10:00:00+09:00", "--calendar", filepath.Join(suite.tempDir, "none.json"))
	suite.Equal(0, code, suite.stderr.String())
	suite.Contains(suite.stdout.String(), "using weekdays")
	suite.Contains(suite.stdout.String(), "CLOSED")
}

func (suite *CLITestSuite) TestRenderSummaryWithoutRecords() {
	renderSummary(suite.stdout, &types.PersistSummary{JSONPath: "data/trading_calendar.json"})

	suite.Contains(suite.stdout.String(), "data/trading_calendar.json")
	suite.Contains(suite.stdout.String(), "Parquet not written")
	suite.NotContains(suite.stdout.String(), "Total records")
}

func (suite *CLITestSuite) TestRenderSummary() {
	renderSummary(suite.stdout, &types.PersistSummary{
		JSONPath:     "data/trading_calendar.json",
		ParquetPath:  "data/trading_calendar.parquet",
		HasRecords:   true,
		TotalRecords: 2,
		MinDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MaxDate:      time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		TradingDays:  1,
		Holidays:     1,
	})

	suite.Contains(suite.stdout.String(), "2024-01-01 to 2024-01-04")
}

func (suite *CLITestSuite) TestReportUnknownError() {
	reportError(suite.stderr, os.ErrPermission)
	suite.Contains(suite.stderr.String(), string(errors.KindUnknown))
}

func (suite *CLITestSuite) TestConfigInit() {
	dir := filepath.Join(suite.tempDir, "config")

	code := suite.run("config", "init", "--dir", dir)
	suite.Equal(0, code, suite.stderr.String())
	suite.FileExists(filepath.Join(dir, "trading-calendar-config.json"))
	suite.FileExists(filepath.Join(dir, "trading-calendar.yaml"))

	suite.Equal(0, suite.run("config", "init", "--dir", dir))
	suite.Contains(suite.stdout.String(), "left unchanged")
}

func (suite *CLITestSuite) TestFetchWithConfigFile() {
	path := filepath.Join(suite.tempDir, "trading-calendar.yaml")
	content := "base_url: " + suite.server.URL() + "\noutput_dir: " + suite.outputDir + "\nlog_level: error\n"
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	code := suite.run("--config", path, "--env-file", filepath.Join(suite.tempDir, "missing.env"))
	suite.Equal(0, code, suite.stderr.String())
	suite.FileExists(filepath.Join(suite.outputDir, calendar.ParquetFileName))
}
