// Package envfile reads dotenv-style key=value files.
//
// Blank lines and lines starting with '#' are ignored. Every other line is
// split on its first '='; key and value are trimmed of whitespace and the value
// loses any wrapping single or double quotes. Later keys override earlier ones.
// Lines without '=' are handled according to a Policy.
package envfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/Porizovatel/kulda/pkg/utils"
)

var (
	ErrNotFound      = errors.New("env file not found")
	ErrMalformedLine = errors.New("malformed line")
)

// Values is the parsed content of an env file.
type Values map[string]string

// Get returns the value for key and whether it is present and non-empty.
func (v Values) Get(key string) (string, bool) {
	value, ok := v[key]
	return value, ok && value != ""
}

// LineError reports a malformed line under PolicyFail.
type LineError struct {
	Line int
	Text string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: expected KEY=VALUE, got %q", e.Line, ErrMalformedLine, e.Text)
}

func (e *LineError) Unwrap() error {
	return ErrMalformedLine
}

// Load reads the env file at path. A missing file yields ErrNotFound.
func Load(ctx context.Context, path string, policy Policy) (Values, error) {
	log := utils.ContextLogger(ctx, slog.String("context", "envfile"))

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Error(fmt.Sprintf("No %s file found", path))
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		log.Error(fmt.Sprintf("Error reading %s file: %v", path, err))
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	values, err := Parse(ctx, f, policy)
	if err != nil {
		log.Error(fmt.Sprintf("Error reading %s file: %v", path, err))
		return nil, err
	}

	log.Debug("env file loaded", slog.String("path", path), slog.Int("keys", len(values)))
	return values, nil
}

// Parse reads key=value lines from r.
func Parse(ctx context.Context, r io.Reader, policy Policy) (Values, error) {
	log := utils.ContextLogger(ctx, slog.String("context", "envfile"))

	values := Values{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := parseLine(line)
		if !ok {
			switch policy {
			case PolicyFail:
				return nil, &LineError{Line: lineNo, Text: line}
			case PolicySkipAndWarn:
				log.Warn(fmt.Sprintf("Skipping malformed line %d: expected KEY=VALUE", lineNo))
			}
			continue
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	return values, nil
}

func parseLine(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if rest, found := strings.CutPrefix(key, "export "); found {
		key = strings.TrimSpace(rest)
	}
	if key == "" {
		return "", "", false
	}
	value = strings.Trim(strings.TrimSpace(value), `"'`)
	return key, value, true
}
