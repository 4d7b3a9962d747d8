// Package sqlite provides a single-file SQLite implementation of the store
// interfaces for local, single-user use. The schema is embedded and applied
// on open, so no migration tooling is needed for the local mode.
package sqlite
