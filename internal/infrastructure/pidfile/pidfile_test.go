package pidfile

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	// Arrange
	pf := New(filepath.Join(t.TempDir(), "daemon.pid"))

	// Act
	require.NoError(t, pf.Acquire())
	pid, statusErr := pf.Status()

	// Assert
	assert.NoError(t, statusErr)
	assert.Equal(t, os.Getpid(), pid)

	require.NoError(t, pf.Release())
	_, err := pf.Status()
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestAcquire_FailsWhileHolderIsAlive(t *testing.T) {
	pf := New(filepath.Join(t.TempDir(), "daemon.pid"))
	require.NoError(t, pf.Acquire())

	err := New(pf.Path()).Acquire()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestAcquire_ReplacesStaleFile(t *testing.T) {
	tests := map[string]string{
		"dead process": "999999999\n",
		"garbage":      "not-a-pid",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "daemon.pid")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			require.NoError(t, New(path).Acquire())

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, strconv.Itoa(os.Getpid())+"\n", string(data))
		})
	}
}

func TestRelease_MissingFileIsNotAnError(t *testing.T) {
	pf := New(filepath.Join(t.TempDir(), "absent.pid"))

	assert.NoError(t, pf.Release())
	_, err := pf.Status()
	assert.ErrorIs(t, err, ErrNotRunning)
}
