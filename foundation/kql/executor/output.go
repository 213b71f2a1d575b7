// File: output.go
// Title: Output and Confirmation
// Description: The typed messages an executor reports and the interfaces
//              front ends implement to display them and to answer rename
//              confirmations.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-06
// Modified: 2026-10-06
//
// Change History:
// - 2026-10-06 v0.1.0: Initial implementation

package executor

import (
	"context"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// ClearScreen is the terminal sequence a MessageClear stands for
const ClearScreen = "\033[H\033[2J"

// MessageKind tells a front end how to present a message
type MessageKind int

const (
	MessagePlain MessageKind = iota
	MessageOK
	MessageNotFound
	MessageItem
	MessageNotice
	MessageSoftError
	MessageClear
	MessageBanner
)

// String returns the kind name
func (k MessageKind) String() string {
	switch k {
	case MessageOK:
		return "ok"
	case MessageNotFound:
		return "not-found"
	case MessageItem:
		return "item"
	case MessageNotice:
		return "notice"
	case MessageSoftError:
		return "soft-error"
	case MessageClear:
		return "clear"
	case MessageBanner:
		return "banner"
	default:
		return "plain"
	}
}

// Message is one line of command output
type Message struct {
	Kind MessageKind
	Key  string // set for MessageItem
	Text string
}

// String renders the message without styling
func (m Message) String() string {
	switch m.Kind {
	case MessageOK:
		if m.Text == "" {
			return "OK"
		}
		return m.Text
	case MessageNotFound:
		return "NOT FOUND"
	case MessageItem:
		return m.Key + " | " + m.Text
	case MessageSoftError:
		return "Error: " + m.Text
	case MessageClear:
		return ClearScreen
	default:
		return m.Text
	}
}

// Output receives the messages produced while executing commands
type Output interface {
	Emit(msg Message)
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// OutputFunc adapts a function to Output
type OutputFunc func(msg Message)

// Emit calls f(msg)
func (f OutputFunc) Emit(msg Message) {
	f(msg)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f(ctx, prompt)
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Recorder is an Output that keeps every message
type Recorder struct {
	Messages []Message
}

// Emit records msg
func (r *Recorder) Emit(msg Message) {
	r.Messages = append(r.Messages, msg)
}

// Lines returns the unstyled rendering of every recorded message
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.Messages))
	for i, m := range r.Messages {
		lines[i] = m.String()
	}
	return lines
}

// Reset drops the recorded messages
func (r *Recorder) Reset() {
	r.Messages = nil
}

type discardOutput struct{}

func (discardOutput) Emit(Message) {}

// Discard is an Output that drops every message
var Discard Output = discardOutput{}
