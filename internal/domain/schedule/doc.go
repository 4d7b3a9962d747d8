// Package schedule implements the spaced-repetition scheduling and review
// classification engine. Everything in this package is a pure function of
// its inputs: the current time is always passed in, and no function touches
// storage, so the whole engine is reproducible and testable in memory.
package schedule
