package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const memoryConfig = `
[database]
driver = "memory"

[logs]
level = "error"

[sync]
enabled = false

[[resources]]
id = "bay-1"
calendar_id = "cal-1"
  [resources.hours]
  open = "10:00"
  close = "22:00"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestReconcileCommand_EmptyStoreSucceeds(t *testing.T) {
	path := writeConfig(t, memoryConfig)

	out, err := run(t, "reconcile", "--config", path, "--json")
	require.NoError(t, err)

	var batch struct {
		ID        string `json:"id"`
		Trigger   string `json:"trigger"`
		Outcome   string `json:"outcome"`
		Resources []struct {
			ResourceID string `json:"resourceId"`
		} `json:"resources"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &batch))
	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, "cli", batch.Trigger)
	assert.Equal(t, "success", batch.Outcome)
	require.Len(t, batch.Resources, 1)
}

func TestReconcileCommand_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "sqlite"
`)

	_, err := run(t, "reconcile", "--config", path)
	require.Error(t, err)

	var exitErr *exitError
	assert.False(t, errors.As(err, &exitErr), "startup errors use the default exit code")
}

func TestMigrateCommand_List(t *testing.T) {
	out, err := run(t, "migrate", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "001_reservations.sql")
	assert.Contains(t, out, "002_sync_batches.sql")
}

func TestMigrateCommand_RequiresPostgres(t *testing.T) {
	path := writeConfig(t, memoryConfig)

	_, err := run(t, "migrate", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to migrate")
}

func TestExitError(t *testing.T) {
	inner := errors.New("tick b-1 failed")
	err := error(&exitError{code: exitFailed, err: inner})

	var exitErr *exitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.code)
	assert.ErrorIs(t, err, inner)
}
