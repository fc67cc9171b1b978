package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoggingBeforeInitDoesNotPanic(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	require.NotPanics(t, func() {
		Debug("debug message")
		Info("info message", zap.String("key", "value"))
		Warn("warn message")
		Error("error message")
		Named("subsystem").Info("named message")
		WithRequestID("req-1").Info("request message")
		Sync()
	})
}

func TestInit(t *testing.T) {
	require.NoError(t, Init("development"))
	require.NotNil(t, Logger)
	defer Sync()

	require.NotPanics(t, func() {
		Info("after init", zap.String("env", "development"))
	})
}
