package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

const (
	EnvConfigFile = "PCS_CONFIG_FILE"
	EnvVerbose    = "PCS_VERBOSE"
)

// RunExtension attempts to find and execute an external pcs-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	return runExtension(subcommand, args, os.Stdout, os.Stderr)
}

// extensionEnv passes the global flags to extensions as environment variables.
func extensionEnv() []string {
	env := os.Environ()
	env = append(env, EnvConfigFile+"="+*configFile)
	env = append(env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
	return env
}

func runExtension(subcommand string, args []string, stdout, stderr io.Writer) (bool, int) {
	externalCmdName := "pcs-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
