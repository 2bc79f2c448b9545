// Package logger provides a structured logging interface for the extractor.
//
// It wraps zerolog with a small Logger interface supporting levels, bound
// fields and error fields. Console output goes to stderr so that progress
// lines printed on stdout stay readable; an optional log file receives the
// same events.
//
// Basic Usage:
//
//	err := logger.Initialize(&cfg.Logging)
//
//	logger.WithField("case_id", "12345-21").Info("Processing case")
//	logger.WithError(err).Error("Docket fetch failed")
//
// Every line carries app, version and a per-process run_id.
package logger
