// Package resultslog writes the timing results CSV.
package resultslog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mamadbah2/sortbench/internal/domain/models"
)

// Header is the first line of every results log.
const Header = "DatasetSize,Algorithm,TimeMilliseconds"

// ErrCreateLog indicates the results log could not be opened for writing.
var ErrCreateLog = errors.New("create results log")

// Log appends one row per measurement and flushes after every batch, so rows
// written before a crash survive it.
type Log struct {
	path string
	file *os.File
	w    *bufio.Writer
}

// Create truncates (or creates) the log at path and writes the header. Missing
// parent directories are created.
func Create(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrCreateLog, path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCreateLog, path, err)
	}

	l := &Log{path: path, file: f, w: bufio.NewWriter(f)}
	if _, err := l.w.WriteString(Header + "\n"); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w %s: %v", ErrCreateLog, path, err)
	}
	if err := l.w.Flush(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w %s: %v", ErrCreateLog, path, err)
	}
	return l, nil
}

// Path returns the file the log writes to.
func (l *Log) Path() string { return l.path }

// Append writes the measurements for one dataset size and flushes them to disk.
func (l *Log) Append(_ context.Context, measurements []models.Measurement) error {
	for _, m := range measurements {
		if _, err := l.w.WriteString(FormatRow(m) + "\n"); err != nil {
			return fmt.Errorf("write results row: %w", err)
		}
	}
	if err := l.w.Flush(); err != nil {
		return fmt.Errorf("flush results log: %w", err)
	}
	return nil
}

// Close flushes pending rows and closes the file.
func (l *Log) Close() error {
	flushErr := l.w.Flush()
	closeErr := l.file.Close()
	if flushErr != nil {
		return fmt.Errorf("flush results log: %w", flushErr)
	}
	return closeErr
}

// FormatRow renders m as size,"label",ms with four decimals.
func FormatRow(m models.Measurement) string {
	return fmt.Sprintf("%d,\"%s\",%.4f", m.DatasetSize, m.Algorithm, m.Milliseconds)
}
