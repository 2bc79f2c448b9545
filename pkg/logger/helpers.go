package logger

import (
	"time"
)

// NopLogger discards everything
type NopLogger struct{}

// NewNopLogger creates a no-operation logger for testing
func NewNopLogger() Logger {
	return NopLogger{}
}

func (n NopLogger) Debug(msg string)                                          {}
func (n NopLogger) Info(msg string)                                           {}
func (n NopLogger) Warn(msg string)                                           {}
func (n NopLogger) Error(msg string)                                          {}
func (n NopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n NopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n NopLogger) WithError(err error) Logger                                { return n }
func (n NopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n NopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n NopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n NopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}

// LogAPICall records one outbound request. Failures are logged by the caller
// with their own context, so a non-2xx status only warns here.
func LogAPICall(l Logger, endpoint string, status int, duration time.Duration) {
	fields := map[string]interface{}{
		"endpoint":    endpoint,
		"status_code": status,
		"duration_ms": duration.Milliseconds(),
	}

	switch {
	case status >= 200 && status < 300:
		l.DebugWithFields("API request completed", fields)
	case status == 0:
		l.WarnWithFields("API request did not complete", fields)
	default:
		l.WarnWithFields("API request returned error status", fields)
	}
}

// LogDownload records the outcome of one document download attempt
func LogDownload(l Logger, caseID, documentID, documentType, outcome string, err error) {
	log := l.WithFields(map[string]interface{}{
		"case_id":       caseID,
		"document_id":   documentID,
		"document_type": documentType,
		"outcome":       outcome,
	})

	switch {
	case err != nil:
		log.WithError(err).Error("Document download failed")
	case outcome == "skipped":
		log.Debug("Document already present")
	default:
		log.Info("Document downloaded")
	}
}

// LogCaseProgress records which case the extraction loop is visiting
func LogCaseProgress(l Logger, index, total int, caseID string) {
	l.DebugWithFields("Processing case", map[string]interface{}{
		"case_id": caseID,
		"index":   index,
		"total":   total,
	})
}
