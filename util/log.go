// Copyright 2016, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Severity is the level attached to an audit entry
type Severity string

// Audit severities
const (
	DEBUG  Severity = "debug"
	INFO   Severity = "info"
	NOTICE Severity = "notice"
	ERROR  Severity = "error"
	FATAL  Severity = "fatal"
)

// LogContext is implemented by anything that can identify itself in the logs
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is the minimal LogContext, used when no better one exists
type BasicLogContext struct {
	sessionID string
}

// AppName returns the application name
func (c *BasicLogContext) AppName() string {
	return "bf-viirs"
}

// SessionID returns a Session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

// LogAuditInput holds the fields of an audit entry
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

var logger = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.Out = out
	l.Formatter = &logrus.JSONFormatter{}
	l.Level = logrus.DebugLevel
	return l
}

// SetLogOutput redirects all log output; mostly useful in tests
func SetLogOutput(out io.Writer) {
	logger.Out = out
}

func entry(ctx LogContext) *logrus.Entry {
	if ctx == nil {
		ctx = &BasicLogContext{}
	}
	return logger.WithFields(logrus.Fields{
		"app":     ctx.AppName(),
		"session": ctx.SessionID(),
	})
}

// LogInfo logs an informational message
func LogInfo(ctx LogContext, message string) {
	entry(ctx).Info(message)
}

// LogAlert logs a message that someone should probably look at
func LogAlert(ctx LogContext, message string) {
	entry(ctx).Warn(message)
}

// LogSimpleErr logs a message along with the error that caused it
func LogSimpleErr(ctx LogContext, message string, err error) {
	entry(ctx).WithError(err).Error(message)
}

// LogAudit logs an actor/action/actee record
func LogAudit(ctx LogContext, input LogAuditInput) {
	e := entry(ctx).WithFields(logrus.Fields{
		"actor":  input.Actor,
		"action": input.Action,
		"actee":  input.Actee,
	})
	switch input.Severity {
	case DEBUG:
		e.Debug(input.Message)
	case NOTICE:
		e.Warn(input.Message)
	case ERROR:
		e.Error(input.Message)
	case FATAL:
		e.Fatal(input.Message)
	default:
		e.Info(input.Message)
	}
}

// HTTPError logs the failure of a request and writes it back to the client
func HTTPError(request *http.Request, writer http.ResponseWriter, ctx LogContext, message string, statusCode int) {
	LogAudit(ctx, LogAuditInput{
		Actor:    request.URL.String(),
		Action:   request.Method + " response",
		Actee:    request.RemoteAddr,
		Message:  fmt.Sprintf("%d: %s", statusCode, message),
		Severity: NOTICE,
	})
	http.Error(writer, message, statusCode)
}

// PsuUUID returns a new random UUID string
func PsuUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
