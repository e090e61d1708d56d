// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"github.com/juju/loggo"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

const testWriterName = "gui-test"

// BaseSuite is the suite GUI tests embed. It isolates the test from the
// environment and records everything logged through loggo.
type BaseSuite struct {
	testing.IsolationSuite

	// LogWriter holds the entries logged during the test.
	LogWriter *loggo.TestWriter
}

func (s *BaseSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.LogWriter = &loggo.TestWriter{}
	err := loggo.RegisterWriter(testWriterName, s.LogWriter)
	c.Assert(err, jc.ErrorIsNil)
	s.AddCleanup(func(*gc.C) {
		_, _ = loggo.RemoveWriter(testWriterName)
	})
}

// LoggedMessages returns the messages logged at or above the level by
// the named module.
func (s *BaseSuite) LoggedMessages(module string, level loggo.Level) []string {
	var messages []string
	for _, entry := range s.LogWriter.Log() {
		if entry.Module == module && entry.Level >= level {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}
