package cmd

import (
	"os"
	"testing"

	"github.com/zhubert/snappy/internal/logger"
)

func TestMain(m *testing.M) {
	// Disable logging during tests to avoid polluting /tmp/snappy-debug.log
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}
