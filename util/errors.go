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
	"fmt"
	"net/http"
)

// Error carries a short user-facing message plus the detail that only
// belongs in the log
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
	cause      error
}

// Error implements the error interface
func (e Error) Error() string {
	if e.SimpleMsg != "" {
		return e.SimpleMsg
	}
	return e.LogMsg
}

// Unwrap returns the underlying error, if any
func (e Error) Unwrap() error {
	return e.cause
}

// Log writes the full error detail to the log and returns the error
func (e Error) Log(ctx LogContext, prefix string) error {
	message := e.LogMsg
	if message == "" {
		message = e.SimpleMsg
	}
	if prefix != "" {
		message = prefix + ": " + message
	}
	args := []any{}
	if e.URL != "" {
		args = append(args, "url", e.URL)
	}
	if e.HTTPStatus != 0 {
		args = append(args, "status", e.HTTPStatus)
	}
	if e.Response != "" {
		args = append(args, "response", e.Response)
	}
	contextLogger(ctx).Error(message, args...)
	return e
}

// HTTPErr is an error with an associated HTTP status
type HTTPErr struct {
	Status  int
	Message string
}

func (err HTTPErr) Error() string {
	return fmt.Sprintf("%d: %v", err.Status, err.Message)
}

// HTTPError logs a failed request and writes the message with the given status
func HTTPError(request *http.Request, writer http.ResponseWriter, ctx LogContext, message string, status int) {
	LogAudit(ctx, LogAuditInput{
		Actor:    request.URL.String(),
		Action:   request.Method + " response",
		Actee:    request.RemoteAddr,
		Message:  message,
		Severity: WARNING,
	})
	http.Error(writer, message, status)
}
