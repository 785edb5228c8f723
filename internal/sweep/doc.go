// Package sweep evaluates many scenarios in one run for sensitivity analysis.
//
// A Grid expands a base scenario and per-field value axes into the cartesian
// product of parameter sets. The Runner evaluates them in fixed-size batches
// with bounded concurrency:
//   - a failing parameter set is recorded with its error and does not stop the run
//   - identical parameter sets are evaluated once and served from an LRU cache
//   - evaluation counts and durations are recorded as Prometheus metrics
//   - every run is identified by a ULID
package sweep
