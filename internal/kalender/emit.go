package kalender

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// FormatDate formats a date without leading zeros, as kalendersiden.dk
// expects: "7.1.2025".
func FormatDate(ev ResolvedEvent) string {
	return fmt.Sprintf("%d.%d.%d", ev.Date.Day(), int(ev.Date.Month()), ev.Date.Year())
}

// FormatLine renders a resolved event as one kalendersiden.dk import
// line. The marker prefix, date format and separators are a fixed text
// contract; do not change them without checking the import tool.
func FormatLine(ev ResolvedEvent) string {
	var b strings.Builder

	if ev.Slashes > 0 && ev.Color != "" {
		b.WriteString(strings.Repeat("/", ev.Slashes))
		b.WriteString(ev.Color)
		b.WriteByte(' ')
		if ev.Flag != "" {
			b.WriteString(ev.Flag)
			b.WriteByte(' ')
		}
	}

	b.WriteString(FormatDate(ev))
	if ev.Label != "" {
		b.WriteString(": ")
		b.WriteString(ev.Label)
	}

	return b.String()
}

// WriteLines writes all events as import lines, one per line, with a
// trailing newline.
func WriteLines(w io.Writer, events []ResolvedEvent) error {
	for _, ev := range events {
		if _, err := fmt.Fprintln(w, FormatLine(ev)); err != nil {
			return fmt.Errorf("failed to write output line: %w", err)
		}
	}
	return nil
}

// WriteFile writes the resolved events to path. Callers resolve the
// full plan before calling, so an input error never leaves a truncated
// output file behind.
func WriteFile(path string, events []ResolvedEvent) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WriteLines(f, events); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
