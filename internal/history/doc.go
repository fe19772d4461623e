// Package history persists a record of translation jobs in a local SQLite
// database so past runs can be inspected from the CLI.
package history
