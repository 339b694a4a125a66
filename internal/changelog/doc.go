// Package changelog maintains the testing-state table in CHANGELOG.md.
//
// This package implements:
//   - parsing of the Markdown status table into rows
//   - upserting the row for a version (insert as newest, or replace in place)
//   - creating the document when no table exists yet
//   - terminal display of the table for the CLI
//
// Per-platform statuses come from the test runner output, see package testlog.
package changelog
