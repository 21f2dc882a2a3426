package writer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// JSONIndent is the indentation used for the JSON output file.
const JSONIndent = "  "

// WriteJSON pretty-prints body to path. Keys keep the order they have in body,
// string escapes such as \u5143 are decoded to literal UTF-8 and number
// literals are copied unchanged. Nothing is written when body is not valid JSON.
func WriteJSON(path string, body []byte) error {
	out, err := reencodeJSON(body)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// reencodeJSON returns body indented with JSONIndent. Empty arrays and objects
// are written as [] and {}.
func reencodeJSON(body []byte) ([]byte, error) {
	if !json.Valid(body) {
		return nil, errors.New("failed to format JSON: invalid JSON document")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	enc := &jsonEncoder{}
	if err := enc.value(dec, 0); err != nil {
		return nil, fmt.Errorf("failed to format JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to format JSON: trailing data after document")
	}

	return enc.buf.Bytes(), nil
}

type jsonEncoder struct {
	buf bytes.Buffer
}

func (e *jsonEncoder) value(dec *json.Decoder, depth int) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}

		return err
	}

	switch t := tok.(type) {
	case json.Delim:
		return e.container(dec, t, depth)
	case string:
		return e.str(t)
	case json.Number:
		e.buf.WriteString(t.String())
	case bool:
		if t {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case nil:
		e.buf.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %v", tok)
	}

	return nil
}

func (e *jsonEncoder) container(dec *json.Decoder, open json.Delim, depth int) error {
	closing := byte(']')
	if open == '{' {
		closing = '}'
	}

	e.buf.WriteByte(byte(open))

	n := 0
	for dec.More() {
		if n > 0 {
			e.buf.WriteByte(',')
		}

		e.newline(depth + 1)

		if open == '{' {
			key, err := dec.Token()
			if err != nil {
				return err
			}

			name, ok := key.(string)
			if !ok {
				return fmt.Errorf("object key %v is not a string", key)
			}

			if err := e.str(name); err != nil {
				return err
			}

			e.buf.WriteString(": ")
		}

		if err := e.value(dec, depth+1); err != nil {
			return err
		}

		n++
	}

	// consume the closing delimiter
	if _, err := dec.Token(); err != nil {
		return err
	}

	if n > 0 {
		e.newline(depth)
	}

	e.buf.WriteByte(closing)

	return nil
}

func (e *jsonEncoder) newline(depth int) {
	e.buf.WriteByte('\n')
	e.buf.WriteString(strings.Repeat(JSONIndent, depth))
}

// str quotes s the way encoding/json does with HTML escaping turned off, so
// <, > and & stay literal along with any non-ASCII text.
func (e *jsonEncoder) str(s string) error {
	var b bytes.Buffer

	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return err
	}

	e.buf.Write(bytes.TrimSuffix(b.Bytes(), []byte("\n")))

	return nil
}
