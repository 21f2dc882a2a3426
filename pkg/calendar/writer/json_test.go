package writer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type JSONWriterTestSuite struct {
	suite.Suite
}

func TestJSONWriterSuite(t *testing.T) {
	suite.Run(t, new(JSONWriterTestSuite))
}

func (suite *JSONWriterTestSuite) TestWriteJSONPrettyPrints() {
	path := filepath.Join(suite.T().TempDir(), "out.json")
	body := []byte(`{"trading_calendar":[{"Date":"2024-01-01","HolidayDivision":"0"}],"empty":[]}`)

	suite.Require().NoError(WriteJSON(path, body))

	got, err := os.ReadFile(path)
	suite.Require().NoError(err)

	want := `{
  "trading_calendar": [
    {
      "Date": "2024-01-01",
      "HolidayDivision": "0"
    }
  ],
  "empty": []
}`
	suite.Equal(want, string(got))
}

func (suite *JSONWriterTestSuite) TestWriteJSONKeepsNonASCIIAndOrder() {
	path := filepath.Join(suite.T().TempDir(), "out.json")
	body := []byte(`{"z":"元日","a":"<休場>"}`)

	suite.Require().NoError(WriteJSON(path, body))

	got, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Equal("{\n  \"z\": \"元日\",\n  \"a\": \"<休場>\"\n}", string(got))
}

func (suite *JSONWriterTestSuite) TestWriteJSONRoundTrip() {
	path := filepath.Join(suite.T().TempDir(), "out.json")
	body := []byte(`{"trading_calendar":[{"Date":"2024-01-04","HolidayDivision":1,"Note":null}],"pagination_key":"k"}`)

	suite.Require().NoError(WriteJSON(path, body))

	got, err := os.ReadFile(path)
	suite.Require().NoError(err)

	var original, readBack any
	suite.Require().NoError(json.Unmarshal(body, &original))
	suite.Require().NoError(json.Unmarshal(got, &readBack))
	suite.Equal(original, readBack)
}

func (suite *JSONWriterTestSuite) TestWriteJSONInvalidBody() {
	path := filepath.Join(suite.T().TempDir(), "out.json")

	err := WriteJSON(path, []byte(`{"broken":`))
	suite.Error(err)

	_, statErr := os.Stat(path)
	suite.True(os.IsNotExist(statErr))
}

func (suite *JSONWriterTestSuite) TestWriteJSONMissingDirectory() {
	err := WriteJSON(filepath.Join(suite.T().TempDir(), "missing", "out.json"), []byte(`{}`))
	suite.Error(err)
}

func (suite *JSONWriterTestSuite) TestWriteJSONDecodesUnicodeEscapes() {
	path := filepath.Join(suite.T().TempDir(), "out.json")
	body := []byte(`{"trading_calendar":[],"note":"\u5143\u65e5","tag":"\u003cclosed\u003e"}`)

	suite.Require().NoError(WriteJSON(path, body))

	got, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Equal("{\n  \"trading_calendar\": [],\n  \"note\": \"元日\",\n  \"tag\": \"<closed>\"\n}", string(got))
}

func (suite *JSONWriterTestSuite) TestWriteJSONLiterals() {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "numbers unchanged", body: `{"a":1.50,"b":1e3,"c":-0}`, want: "{\n  \"a\": 1.50,\n  \"b\": 1e3,\n  \"c\": -0\n}"},
		{name: "empty object", body: `{"a":{},"b":[{}]}`, want: "{\n  \"a\": {},\n  \"b\": [\n    {}\n  ]\n}"},
		{name: "required escapes kept", body: `{"q":"a\"b\\c\n"}`, want: "{\n  \"q\": \"a\\\"b\\\\c\\n\"\n}"},
		{name: "scalars", body: `[true,false,null]`, want: "[\n  true,\n  false,\n  null\n]"},
		{name: "top level string", body: `"\u5143"`, want: `"元"`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			path := filepath.Join(suite.T().TempDir(), "out.json")
			suite.Require().NoError(WriteJSON(path, []byte(tt.body)))

			got, err := os.ReadFile(path)
			suite.Require().NoError(err)
			suite.Equal(tt.want, string(got))
		})
	}
}

func (suite *JSONWriterTestSuite) TestWriteJSONTrailingData() {
	path := filepath.Join(suite.T().TempDir(), "out.json")

	suite.Error(WriteJSON(path, []byte(`{} {}`)))
	suite.NoFileExists(path)
}
