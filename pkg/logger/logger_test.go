package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "loud")
	require.Error(t, err)
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Info("CreateReservation: resource=%s", "bay-1")
	log.Debug("hidden at info level")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"CreateReservation: resource=bay-1"`)
	assert.Contains(t, string(data), `"level":"info"`)
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestNop(t *testing.T) {
	log := NewNop()
	log.With("component", "test").Warn("nothing %d", 1)
	assert.NoError(t, log.Close())
}
