package daemon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIDFileLifecycle(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "corlevo.pid"))

	pid, err := d.ReadPID()
	require.NoError(t, err)
	assert.Zero(t, pid)

	require.NoError(t, d.WritePID())
	pid, err = d.ReadPID()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	running, runningPID, err := d.IsRunning()
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, os.Getpid(), runningPID)

	require.NoError(t, d.RemovePID())
	require.NoError(t, d.RemovePID())

	running, _, err = d.IsRunning()
	require.NoError(t, err)
	assert.False(t, running)
}

func TestReadPIDInvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corlevo.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid"), 0644))

	_, err := New(path).ReadPID()
	assert.Error(t, err)
}

func TestStopWhenNotRunning(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "corlevo.pid"))
	assert.ErrorIs(t, d.Stop(), ErrNotRunning)
}
