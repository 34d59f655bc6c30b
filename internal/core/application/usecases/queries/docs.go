// Package queries holds the read side of the service. Handlers run plain SQL
// through gorm against the tables the repositories write and return flat read
// models; they never load aggregates or take locks.
package queries
