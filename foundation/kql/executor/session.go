// File: session.go
// Title: Session State
// Description: Running flag, transaction flag and the FIFO write-ahead
//              queue of one interactive or batch session.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-06
// Modified: 2026-10-06
//
// Change History:
// - 2026-10-06 v0.1.0: Initial implementation

package executor

import (
	"github.com/google/uuid"

	"github.com/msto63/keplerkv/foundation/kql/ast"
)

// Session holds the state that outlives a single query
type Session struct {
	id            string
	running       bool
	inTransaction bool
	wal           []*ast.Command
}

// NewSession creates a running session with a fresh id
func NewSession() *Session {
	return &Session{
		id:      uuid.NewString(),
		running: true,
	}
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// Running reports whether the session still accepts queries
func (s *Session) Running() bool {
	return s.running
}

// Stop ends the session
func (s *Session) Stop() {
	s.running = false
}

// InTransaction reports whether store commands are being queued
func (s *Session) InTransaction() bool {
	return s.inTransaction
}

// Begin opens a transaction. It returns false if one is already open; the
// queue is kept in that case.
func (s *Session) Begin() bool {
	if s.inTransaction {
		return false
	}
	s.inTransaction = true
	return true
}

// Enqueue appends cmd to the write-ahead queue
func (s *Session) Enqueue(cmd *ast.Command) {
	s.wal = append(s.wal, cmd)
}

// Pending returns the number of queued commands
func (s *Session) Pending() int {
	return len(s.wal)
}

// Drain closes the transaction and returns the queued commands in the
// order they were queued
func (s *Session) Drain() []*ast.Command {
	queued := s.wal
	s.wal = nil
	s.inTransaction = false
	return queued
}

// Rollback closes the transaction, discards the queue and returns how many
// commands were dropped
func (s *Session) Rollback() int {
	n := len(s.wal)
	s.wal = nil
	s.inTransaction = false
	return n
}
