package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Writer handles alert output.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc is an adapter to allow functions to be used as Writers.
type WriterFunc func(*Alert) error

// WriteAlert calls the function.
func (f WriterFunc) WriteAlert(alert *Alert) error {
	return f(alert)
}

// DiscardWriter is a Writer that discards all alerts.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// WriterConfig configures alert output behavior.
type WriterConfig struct {
	ShowTimestamp bool
	ShowDetails   bool
	UseColor      bool
}

// TextWriter writes alerts as text lines, colored on terminals.
type TextWriter struct {
	writer io.Writer
	config WriterConfig
}

// NewTextWriter creates a TextWriter for w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{
		writer: w,
		config: WriterConfig{
			ShowDetails: true,
			UseColor:    isTerminal(w) && os.Getenv("NO_COLOR") == "",
		},
	}
}

// WithConfig sets the writer configuration.
func (tw *TextWriter) WithConfig(config WriterConfig) *TextWriter {
	tw.config = config
	return tw
}

// WriteAlert writes an alert followed by its indented details.
func (tw *TextWriter) WriteAlert(alert *Alert) error {
	message := alert.String()
	if tw.config.ShowTimestamp {
		message = alert.Timestamp.Format("2006-01-02T15:04:05Z07:00") + " " + message
	}
	if tw.config.UseColor {
		message = alert.Level.Color() + message + ResetColor()
	}

	if _, err := fmt.Fprintln(tw.writer, message); err != nil {
		return err
	}

	if tw.config.ShowDetails {
		for _, detail := range alert.Details {
			if _, err := fmt.Fprintf(tw.writer, "   %s\n", detail); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteAll writes every alert, stopping at the first error.
func WriteAll(w Writer, alerts []*Alert) error {
	for _, a := range alerts {
		if err := w.WriteAlert(a); err != nil {
			return err
		}
	}
	return nil
}

// isTerminal checks if the writer is a terminal (for color support).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
