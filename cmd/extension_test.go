package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installExtension writes an executable shell script named pcs-<name> in a
// directory placed first in PATH.
func installExtension(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "pcs-"+name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestExtensionMechanism(t *testing.T) {
	installExtension(t, "hello", `echo "$PCS_CONFIG_FILE"
echo "$PCS_VERBOSE"
echo "$@"
`)
	oldConfig, oldVerbose := *configFile, *Verbose
	t.Cleanup(func() { *configFile, *Verbose = oldConfig, oldVerbose })
	*configFile = "random.yaml"
	*Verbose = true

	var stdout, stderr bytes.Buffer
	found, code := runExtension("hello", []string{"a", "b"}, &stdout, &stderr)

	require.True(t, found)
	assert.Equal(t, 0, code)
	assert.Equal(t, "random.yaml\ntrue\na b\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestExtensionMechanism_ExitCode(t *testing.T) {
	installExtension(t, "fail", "exit 3\n")

	found, code := runExtension("fail", nil, &bytes.Buffer{}, &bytes.Buffer{})
	assert.True(t, found)
	assert.Equal(t, 3, code)
}

func TestExtensionMechanism_NotFound(t *testing.T) {
	found, code := runExtension("does-not-exist-anywhere", nil, &bytes.Buffer{}, &bytes.Buffer{})
	assert.False(t, found)
	assert.Equal(t, 0, code)
}
