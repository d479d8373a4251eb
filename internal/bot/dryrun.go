package bot

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// DryRunSink prints messages instead of sending them.
type DryRunSink struct {
	w io.Writer
}

func NewDryRunSink(w io.Writer) *DryRunSink {
	return &DryRunSink{w: w}
}

func (s *DryRunSink) SendMessage(text string) error {
	if _, err := fmt.Fprintf(s.w, "--- Message ---\n%s\n\n(Length: %d characters)\n", text, utf8.RuneCountInString(text)); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	return nil
}
