package pidfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/hellostack/hellostack/pkg/pidfile"
	"github.com/stretchr/testify/require"
)

func TestPidFileCanBeAcquiredAndReleased(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "hellostack.pid")
	f := pidfile.New(path)

	require.NoError(t, f.Acquire())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, strconv.Itoa(os.Getpid()), string(contents))

	require.NoError(t, f.Release())

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestPidFileCanBeAcquiredWhenOutdatedFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hellostack.pid")
	f := pidfile.New(path)

	require.NoError(t, os.WriteFile(path, []byte("999999\n"), 0o644))
	require.NoError(t, f.Acquire())
	require.NoError(t, f.Release())

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestPidFileCannotBeAcquiredWhileAlreadyHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hellostack.pid")
	f1 := pidfile.New(path)
	f2 := pidfile.New(path)

	require.NoError(t, f1.Acquire())
	require.Error(t, f2.Acquire())
	require.NoError(t, f1.Release())
}

func TestEmptyPathIsNoop(t *testing.T) {
	f := pidfile.New("")

	require.NoError(t, f.Acquire())
	require.NoError(t, f.Release())
}
