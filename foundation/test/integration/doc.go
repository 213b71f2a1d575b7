// Package integration provides integration tests for the KeplerKV
// foundation library.
//
// Package: integration
// Title: KeplerKV Foundation Integration Tests
// Description: Tests that drive whole queries through the engine and check
//              that lexer, parser, executor and store agree on error codes,
//              persistence and transactions.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-13
// Modified: 2026-10-13
//
// Change History:
// - 2026-10-13 v0.2.0: Query pipeline integration suite
//
// Test Categories:
//
// Module Integration Tests (module_integration_test.go):
// - Sessions spanning several queries
// - Save and load round trips between engines
// - Transactions mixed with references and list mutation
//
// Error Integration Tests (error_integration_test.go):
// - Every error code reachable from a query
// - Severity follows the code across module boundaries
// - Joined errors keep the codes of their parts
//
// Performance Integration Tests (performance_test.go):
// - Query throughput through the full pipeline
// - Save and load of larger stores
//
// Running Integration Tests:
//
//	go test -v ./test/integration/
//	go test -v ./test/integration/ -bench=.
package integration
