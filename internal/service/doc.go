// Package service provides application-level services for registering study
// sessions, managing their scheduled reviews, and deriving the statistics
// surface. Services orchestrate the stores and the scheduling engine; all
// multi-entity writes run inside a single transaction.
package service
