package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nel-io/netcore/logging"
)

func TestGetDefaultLoggerNonNil(t *testing.T) {
	assert.NotNil(t, logging.GetDefaultLogger())
}

func TestCreateLoggerAsLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netcore.log")
	logger, flush, err := logging.CreateLoggerAsLocalFile(path, logging.Level(0))
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Infof("hello %s", "world")
	require.NoError(t, flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello world")
}

func TestCreateLoggerAsLocalFileRejectsEmptyPath(t *testing.T) {
	_, _, err := logging.CreateLoggerAsLocalFile("", logging.Level(0))
	assert.Error(t, err)
}
