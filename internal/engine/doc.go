// Package engine coordinates the concurrent workers of a generation run and
// folds their final states into one value. It validates the configuration,
// dispatches one goroutine per worker, joins all of them, then aggregates.
package engine
