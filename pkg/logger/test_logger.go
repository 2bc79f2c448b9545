package logger

import (
	"strings"
	"sync"
)

// TestLogger captures log messages so tests can assert on them
type TestLogger struct {
	mu       sync.Mutex
	messages []LogMessage
}

// LogMessage represents a captured log message
type LogMessage struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// NewTestLogger creates a new test logger
func NewTestLogger() *TestLogger {
	return &TestLogger{}
}

func (l *TestLogger) Debug(msg string) { l.log("DEBUG", msg, nil) }
func (l *TestLogger) Info(msg string)  { l.log("INFO", msg, nil) }
func (l *TestLogger) Warn(msg string)  { l.log("WARN", msg, nil) }
func (l *TestLogger) Error(msg string) { l.log("ERROR", msg, nil) }

func (l *TestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.log("DEBUG", msg, fields)
}

func (l *TestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.log("INFO", msg, fields)
}

func (l *TestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.log("WARN", msg, fields)
}

func (l *TestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.log("ERROR", msg, fields)
}

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return &boundTestLogger{root: l, fields: map[string]interface{}{key: value}}
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	return &boundTestLogger{root: l, fields: copyFields(fields)}
}

func (l *TestLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

func (l *TestLogger) log(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, LogMessage{Level: level, Message: msg, Fields: fields})
}

// GetMessages returns a copy of all captured log messages
func (l *TestLogger) GetMessages() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()

	messages := make([]LogMessage, len(l.messages))
	copy(messages, l.messages)
	return messages
}

// GetMessagesByLevel returns all messages of a specific level
func (l *TestLogger) GetMessagesByLevel(level string) []LogMessage {
	var filtered []LogMessage
	for _, msg := range l.GetMessages() {
		if msg.Level == level {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

// HasMessage checks if a message containing text was logged
func (l *TestLogger) HasMessage(text string) bool {
	for _, msg := range l.GetMessages() {
		if strings.Contains(msg.Message, text) {
			return true
		}
	}
	return false
}

// HasError checks if an error was logged
func (l *TestLogger) HasError() bool {
	return len(l.GetMessagesByLevel("ERROR")) > 0
}

// boundTestLogger carries fields and writes into its root TestLogger
type boundTestLogger struct {
	root   *TestLogger
	fields map[string]interface{}
}

func (b *boundTestLogger) Debug(msg string) { b.root.log("DEBUG", msg, b.fields) }
func (b *boundTestLogger) Info(msg string)  { b.root.log("INFO", msg, b.fields) }
func (b *boundTestLogger) Warn(msg string)  { b.root.log("WARN", msg, b.fields) }
func (b *boundTestLogger) Error(msg string) { b.root.log("ERROR", msg, b.fields) }

func (b *boundTestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	b.root.log("DEBUG", msg, b.merge(fields))
}

func (b *boundTestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	b.root.log("INFO", msg, b.merge(fields))
}

func (b *boundTestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	b.root.log("WARN", msg, b.merge(fields))
}

func (b *boundTestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	b.root.log("ERROR", msg, b.merge(fields))
}

func (b *boundTestLogger) WithField(key string, value interface{}) Logger {
	return &boundTestLogger{root: b.root, fields: b.merge(map[string]interface{}{key: value})}
}

func (b *boundTestLogger) WithFields(fields map[string]interface{}) Logger {
	return &boundTestLogger{root: b.root, fields: b.merge(fields)}
}

func (b *boundTestLogger) WithError(err error) Logger {
	if err == nil {
		return b
	}
	return b.WithField("error", err.Error())
}

func (b *boundTestLogger) merge(extra map[string]interface{}) map[string]interface{} {
	merged := copyFields(b.fields)
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

func copyFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
