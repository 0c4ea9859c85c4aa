package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/JobPortal/internal/testutil"
)

func TestRecordingLogger(t *testing.T) {
	logger := testutil.NewRecordingLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)
	v, ok := messages[0].Field("key")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	logger.Clear()
	assert.Empty(t, logger.Messages())

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestRecordingLogger_ChildrenShareBuffer(t *testing.T) {
	root := testutil.NewRecordingLogger()
	child := root.Named("postgres").With(logging.String("db", "jobportal")).Named("pool")

	child.Warn("slow")

	got := root.Filter("warn", "slow")
	require.Len(t, got, 1)
	assert.Equal(t, "postgres.pool", got[0].Logger)
	v, _ := got[0].Field("db")
	assert.Equal(t, "jobportal", v)

	_, ok := got[0].Field("missing")
	assert.False(t, ok)
}

//Personal.AI order the ending
