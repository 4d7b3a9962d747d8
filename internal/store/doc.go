// Package store defines the persistence contracts for the application.
// Implementations live under internal/platform; services depend only on
// these interfaces so the scheduling core stays testable in memory.
package store
