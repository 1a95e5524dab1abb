package cmd

import (
	"bytes"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	cfg "github.com/cloudposse/tfmatrix/pkg/config"
	"github.com/cloudposse/tfmatrix/pkg/perf"
)

// setupCmd isolates the command from the real environment and returns a
// function that runs RootCmd with args.
func setupCmd(t *testing.T, env map[string]string) func(args ...string) error {
	t.Helper()

	home := t.TempDir()
	homedir.DisableCache = true
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv(cfg.CliConfigPathEnvVar, "")
	t.Chdir(t.TempDir())

	origGetenv := getenv
	getenv = func(k string) string { return env[k] }

	t.Cleanup(func() {
		homedir.DisableCache = false
		getenv = origGetenv
		perf.EnableTracking(false)
		resetFlags(RootCmd)
	})

	return func(args ...string) error {
		resetFlags(RootCmd)
		RootCmd.SetOut(&bytes.Buffer{})
		RootCmd.SetArgs(append(args, "--logs-file", "/dev/null"))
		return RootCmd.Execute()
	}
}

// resetFlags restores every flag of cmd and its children to its default value,
// since cobra keeps flag state between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
