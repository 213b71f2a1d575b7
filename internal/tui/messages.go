package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/keplerkv/foundation/kql/executor"
)

// Bridge carries executor output and rename confirmations from the query
// worker goroutine to the program. It implements executor.Output and
// executor.Confirmer.
type Bridge struct {
	mu       sync.Mutex
	messages []executor.Message
	requests chan confirmRequest
}

// NewBridge creates a Bridge
func NewBridge() *Bridge {
	return &Bridge{requests: make(chan confirmRequest)}
}

// Emit buffers msg until the program drains it
func (b *Bridge) Emit(msg executor.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, msg)
}

// Confirm hands the question to the program and waits for the answer
func (b *Bridge) Confirm(ctx context.Context, prompt string) (bool, error) {
	reply := make(chan bool, 1)
	select {
	case b.requests <- confirmRequest{prompt: prompt, reply: reply}:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (b *Bridge) drain() []executor.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.messages
	b.messages = nil
	return msgs
}

// wait blocks until the worker asks for a confirmation
func (b *Bridge) wait() tea.Cmd {
	return func() tea.Msg {
		return confirmRequestMsg(<-b.requests)
	}
}

type confirmRequest struct {
	prompt string
	reply  chan bool
}

// Message types for tea.Cmd async operations

// confirmRequestMsg is sent when a running query needs a yes/no answer
type confirmRequestMsg confirmRequest

// queryDoneMsg is sent when a query has finished
type queryDoneMsg struct {
	messages []executor.Message
	err      error
}
