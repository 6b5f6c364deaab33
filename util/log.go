// Copyright 2024, The AdaptaBrasil Metadata Authors.
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
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Severity is the severity of an audit message
type Severity string

// Audit severities
const (
	DEBUG   Severity = "DEBUG"
	INFO    Severity = "INFO"
	NOTICE  Severity = "NOTICE"
	WARNING Severity = "WARNING"
	ERROR   Severity = "ERROR"
)

// LogContext is implemented by every operation context that emits log lines
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a LogContext for code that has no operation context of its own
type BasicLogContext struct {
	sessionID string
}

// AppName returns the application name
func (c *BasicLogContext) AppName() string {
	return AppName
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

// AppName is reported by every context in this application
const AppName = "adapta-metadata"

// LogAuditInput describes a single auditable action
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

var (
	loggerMu sync.RWMutex
	logger   = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// SetupLogger replaces the process logger. Format is "text" or "json";
// level is debug, info, warn or error.
func SetupLogger(w io.Writer, level, format string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("time", a.Value.Time().Format("2006-01-02T15:04:05.000Z07:00"))
			}
			return a
		},
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	loggerMu.Lock()
	logger = slog.New(handler)
	loggerMu.Unlock()
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

func contextLogger(ctx LogContext) *slog.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if ctx == nil {
		return l
	}
	return l.With("app", ctx.AppName(), "session", ctx.SessionID())
}

// LogInfo logs an informational message
func LogInfo(ctx LogContext, message string) {
	contextLogger(ctx).Info(message)
}

// LogAlert logs a message that needs attention but does not stop the operation
func LogAlert(ctx LogContext, message string) {
	contextLogger(ctx).Warn(message)
}

// LogAudit logs an auditable action (typically a remote request)
func LogAudit(ctx LogContext, input LogAuditInput) {
	contextLogger(ctx).Log(context.Background(), severityLevel(input.Severity), input.Message,
		"actor", input.Actor,
		"action", input.Action,
		"actee", input.Actee,
	)
}

// LogSimpleErr logs an error together with a readable message and returns
// an error carrying that message
func LogSimpleErr(ctx LogContext, message string, err error) error {
	if err == nil {
		contextLogger(ctx).Error(message)
		return Error{SimpleMsg: message}
	}
	contextLogger(ctx).Error(message, "error", err.Error())
	return Error{SimpleMsg: message, LogMsg: err.Error(), cause: err}
}

func severityLevel(s Severity) slog.Level {
	switch s {
	case DEBUG:
		return slog.LevelDebug
	case WARNING, NOTICE:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
