// Package surface delivers the quote of the day to places the user sees it:
// a log line or a widget payload file.
package surface

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/filex"
	"github.com/pratish444/QuoteVault/internal/logging"
	"github.com/pratish444/QuoteVault/internal/timex"
)

// Surface shows a quote.
type Surface interface {
	Deliver(ctx context.Context, text, author string) error
}

// Log writes each delivery as a structured log line.
type Log struct {
	log logging.Logger
}

func NewLog(log logging.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Deliver(ctx context.Context, text, author string) error {
	l.log.Info(ctx, "quote of the day", "text", text, "author", author)
	return nil
}

// Payload is the widget file content.
type Payload struct {
	Text      string    `json:"quote_text"`
	Author    string    `json:"quote_author"`
	UpdatedAt time.Time `json:"updated_at"`
}

// File keeps the latest delivered quote in a JSON file for a widget to
// render.
type File struct {
	path  string
	clock timex.Clock
}

// NewFile returns a File surface at path. clock may be nil.
func NewFile(path string, clock timex.Clock) *File {
	if clock == nil {
		clock = timex.SystemClock{}
	}
	return &File{path: path, clock: clock}
}

func (f *File) Path() string { return f.path }

func (f *File) Deliver(ctx context.Context, text, author string) error {
	data, err := json.MarshalIndent(Payload{Text: text, Author: author, UpdatedAt: f.clock.Now()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode widget payload: %w", err)
	}
	if err := filex.WriteAtomic(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write widget payload: %w", err)
	}
	return nil
}

// Read returns the stored payload, or the default quote when nothing has
// been delivered yet.
func (f *File) Read() (Payload, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		def := models.DefaultQuote()
		return Payload{Text: def.Text, Author: def.Author}, nil
	}
	if err != nil {
		return Payload{}, fmt.Errorf("failed to read widget payload: %w", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("failed to decode widget payload: %w", err)
	}
	return p, nil
}

// Clear removes the stored payload.
func (f *File) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear widget payload: %w", err)
	}
	return nil
}
