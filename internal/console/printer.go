// ============================================================================
// KeplerKV - Key-Value Store with Query Language
// ============================================================================
//
// Package:     console
// Description: Styled terminal output for executor messages and a
//              line-based rename confirmer
// Author:      Mike Stoffels
// Created:     2026-10-10
// License:     MIT
// ============================================================================

package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/msto63/keplerkv/foundation/kql/executor"
)

// WelcomeText is printed when an interactive session starts
const WelcomeText = `Welcome to KeplerKV! Type \q to quit!`

// Options configures a Printer
type Options struct {
	Out    io.Writer // defaults to os.Stdout
	Err    io.Writer // defaults to os.Stderr
	Silent bool
	Color  bool
}

// Printer renders executor messages on a terminal. It implements
// executor.Output. In silent mode only errors are printed.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	silent bool
	styles Styles
	mu     sync.Mutex
}

// New creates a Printer
func New(opts Options) *Printer {
	p := &Printer{
		out:    opts.Out,
		errOut: opts.Err,
		silent: opts.Silent,
		styles: PlainStyles(),
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.errOut == nil {
		p.errOut = os.Stderr
	}
	if opts.Color {
		p.styles = DefaultStyles()
	}
	return p
}

// Silent reports whether regular output is suppressed
func (p *Printer) Silent() bool {
	return p.silent
}

// Emit prints one executor message
func (p *Printer) Emit(msg executor.Message) {
	if p.silent {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if msg.Kind == executor.MessageClear {
		fmt.Fprint(p.out, executor.ClearScreen)
		return
	}
	fmt.Fprintln(p.out, p.Render(msg))
}

// Render returns the styled form of msg
func (p *Printer) Render(msg executor.Message) string {
	text := msg.String()
	switch msg.Kind {
	case executor.MessageOK:
		return p.styles.OK.Render(text)
	case executor.MessageNotFound:
		return p.styles.NotFound.Render(text)
	case executor.MessageNotice:
		return p.styles.Notice.Render(text)
	case executor.MessageItem:
		return p.styles.Key.Render(msg.Key) + " | " + msg.Text
	case executor.MessageSoftError:
		return p.styles.Error.Render(text)
	case executor.MessageBanner:
		return p.styles.Banner.Render(text)
	default:
		return text
	}
}

// Welcome prints the session banner
func (p *Printer) Welcome() {
	p.Emit(executor.Message{Kind: executor.MessageBanner, Text: WelcomeText})
}

// Prompt writes the input prompt without a newline
func (p *Printer) Prompt(prompt string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, prompt)
}

// PrintError writes err to the error stream, also in silent mode
func (p *Printer) PrintError(err error) {
	if err == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.errOut, p.styles.Error.Render("Error: "+err.Error()))
}

// Warn prints a warning line on the regular output
func (p *Printer) Warn(text string) {
	if p.silent {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, p.styles.Warning.Render("Warning: "+text))
}
