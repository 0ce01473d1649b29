package logging

import (
	"time"
)

// TimedOperation logs the start of an operation immediately and its
// duration when ended, pairing every "started" line with a matching
// "finished" or "failed" line.
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}

// StartTimer logs the start of an operation and returns its timer.
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	logger.Info(msg+" started", fields...)
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// Elapsed returns the time since the operation started.
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the operation's completion with its duration.
func (t *TimedOperation) End() {
	fields := append(t.fields, Duration("took", t.Elapsed()))
	t.logger.Info(t.msg+" finished", fields...)
}

// EndError logs the operation's failure with its duration.
func (t *TimedOperation) EndError(err error) {
	fields := append(t.fields, Duration("took", t.Elapsed()), Error(err))
	t.logger.Error(t.msg+" failed", fields...)
}
