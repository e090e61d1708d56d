// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"fmt"

	"github.com/juju/loggo"
)

// NoopLogger is a logger that does nothing.
type NoopLogger struct{}

func (NoopLogger) Errorf(string, ...interface{})   {}
func (NoopLogger) Warningf(string, ...interface{}) {}
func (NoopLogger) Infof(string, ...interface{})    {}
func (NoopLogger) Debugf(string, ...interface{})   {}
func (NoopLogger) Tracef(string, ...interface{})   {}

// CheckLog is an interface that can be used to log messages to a
// *testing.T or *check.C.
type CheckLog interface {
	Logf(string, ...interface{})
}

// CheckLogger is a logger that logs to a *testing.T or *check.C.
type CheckLogger struct {
	Log CheckLog
}

// NewCheckLogger returns a CheckLogger that logs to the given CheckLog.
func NewCheckLogger(log CheckLog) CheckLogger {
	return CheckLogger{Log: log}
}

func (c CheckLogger) Errorf(msg string, args ...interface{}) {
	c.Logf(loggo.ERROR, msg, args...)
}
func (c CheckLogger) Warningf(msg string, args ...interface{}) {
	c.Logf(loggo.WARNING, msg, args...)
}
func (c CheckLogger) Infof(msg string, args ...interface{}) {
	c.Logf(loggo.INFO, msg, args...)
}
func (c CheckLogger) Debugf(msg string, args ...interface{}) {
	c.Logf(loggo.DEBUG, msg, args...)
}
func (c CheckLogger) Tracef(msg string, args ...interface{}) {
	c.Logf(loggo.TRACE, msg, args...)
}
func (c CheckLogger) Logf(level loggo.Level, msg string, args ...interface{}) {
	c.Log.Logf(fmt.Sprintf("%s: %s", level.String(), msg), args...)
}

// RecordingLogger records the messages logged through it.
type RecordingLogger struct {
	CheckLogger
	Messages []string
}

// NewRecordingLogger returns a RecordingLogger that also logs to the
// given CheckLog.
func NewRecordingLogger(log CheckLog) *RecordingLogger {
	return &RecordingLogger{CheckLogger: NewCheckLogger(log)}
}

func (r *RecordingLogger) Warningf(msg string, args ...interface{}) {
	r.record(loggo.WARNING, msg, args...)
}
func (r *RecordingLogger) Debugf(msg string, args ...interface{}) {
	r.record(loggo.DEBUG, msg, args...)
}
func (r *RecordingLogger) Tracef(msg string, args ...interface{}) {
	r.record(loggo.TRACE, msg, args...)
}

func (r *RecordingLogger) record(level loggo.Level, msg string, args ...interface{}) {
	r.Messages = append(r.Messages, fmt.Sprintf("%s: %s", level.String(), fmt.Sprintf(msg, args...)))
	r.CheckLogger.Logf(level, msg, args...)
}

// Warnings returns the recorded warnings, without their level.
func (r *RecordingLogger) Warnings() []string {
	var warnings []string
	prefix := loggo.WARNING.String() + ": "
	for _, msg := range r.Messages {
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			warnings = append(warnings, msg[len(prefix):])
		}
	}
	return warnings
}
