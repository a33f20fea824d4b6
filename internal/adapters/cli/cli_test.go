package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const miniDump = "../catalogdump/testdata/mini-dump.json"

// isolate points the database and the user config at a temp dir
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("FP_DATABASE_TYPE", "sqlite")
	t.Setenv("FP_DATABASE_PATH", filepath.Join(dir, "planner.db"))
	t.Setenv("FP_LOGGING_LEVEL", "error")
	t.Setenv("FP_DAEMON_PID_FILE", filepath.Join(dir, "daemon.pid"))
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestCLI_SolveWorkflow(t *testing.T) {
	// Arrange
	isolate(t)
	execute(t, "project", "create", "gears", "--catalog", miniDump)
	execute(t, "project", "use", "gears")
	execute(t, "process", "add", "recipe", "iron-gear-wheel")
	execute(t, "output", "pin", "item:iron-gear-wheel", "10")

	// Act
	solved := execute(t, "solve", "--generate-inputs")

	// Assert
	assert.Contains(t, solved, "Unique solution")
	assert.Contains(t, solved, "recipe/iron-gear-wheel")
	assert.Contains(t, execute(t, "input", "get", "item:iron-plate"), "item:iron-plate 20/s")
	assert.Contains(t, execute(t, "history"), "one_solution")
	assert.Contains(t, execute(t, "project", "show"), "item:iron-gear-wheel")
}

func TestCLI_ProjectFlagOverridesDefault(t *testing.T) {
	isolate(t)
	execute(t, "project", "create", "a")
	execute(t, "project", "create", "b")
	execute(t, "project", "use", "a")

	out := execute(t, "--project", "b", "project", "show")

	assert.Contains(t, out, "b")
	assert.Contains(t, execute(t, "project", "list"), "a")
}

func TestCLI_MissingProjectFails(t *testing.T) {
	isolate(t)
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"solve"})

	err := cmd.Execute()

	assert.Error(t, err)
}

func TestCLI_DaemonStatusNotRunning(t *testing.T) {
	isolate(t)

	out := execute(t, "daemon", "status")

	assert.Contains(t, out, "not running")
}
