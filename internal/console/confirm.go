package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// LineConfirmer answers rename confirmations by reading a line from the
// same reader the REPL consumes. The prompt is shown even in silent mode.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineConfirmer creates a confirmer reading from in and prompting on out
func NewLineConfirmer(in *bufio.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: in, out: out}
}

// Confirm prints prompt and reports whether the answer was y or yes.
// End of input counts as no.
func (c *LineConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintln(c.out, prompt)

	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return IsYes(line), nil
}

// IsYes reports whether answer is an affirmative reply
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
