package util

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger_JSON(t *testing.T) {
	buffer := &bytes.Buffer{}
	assert.Nil(t, SetupLogger(buffer, "debug", "json"))
	defer SetupLogger(os.Stderr, "info", "text")
	ctx := &BasicLogContext{}

	LogInfo(ctx, "hello")
	LogAudit(ctx, LogAuditInput{Actor: "a", Action: "GET", Actee: "b", Message: "request", Severity: DEBUG})

	assert.Contains(t, buffer.String(), `"msg":"hello"`)
	assert.Contains(t, buffer.String(), `"app":"adapta-metadata"`)
	assert.Contains(t, buffer.String(), `"session":"`+ctx.SessionID()+`"`)
	assert.Contains(t, buffer.String(), `"actor":"a"`)
	assert.Contains(t, buffer.String(), `"level":"DEBUG"`)
}

func TestSetupLogger_LevelFilters(t *testing.T) {
	buffer := &bytes.Buffer{}
	assert.Nil(t, SetupLogger(buffer, "warn", "text"))
	defer SetupLogger(os.Stderr, "info", "text")

	LogInfo(&BasicLogContext{}, "quiet")
	LogAlert(&BasicLogContext{}, "loud")

	assert.NotContains(t, buffer.String(), "quiet")
	assert.Contains(t, buffer.String(), "loud")
}

func TestSetupLogger_Invalid(t *testing.T) {
	assert.NotNil(t, SetupLogger(os.Stderr, "chatty", "text"))
	assert.NotNil(t, SetupLogger(os.Stderr, "info", "xml"))
}

func TestLogSimpleErr(t *testing.T) {
	cause := errors.New("connection refused")

	err := LogSimpleErr(&BasicLogContext{}, "Failed to retrieve catalog.", cause)

	assert.Equal(t, "Failed to retrieve catalog.", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestBasicLogContext_SessionIDIsStable(t *testing.T) {
	ctx := &BasicLogContext{}
	assert.NotEmpty(t, ctx.SessionID())
	assert.Equal(t, ctx.SessionID(), ctx.SessionID())
	assert.Equal(t, AppName, ctx.AppName())
}
