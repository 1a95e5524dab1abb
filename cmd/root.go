package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	cfg "github.com/cloudposse/tfmatrix/pkg/config"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/perf"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

// cliConfig is the configuration loaded for the running command.
var cliConfig schema.Configuration

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "tfmatrix",
	Short: "Build CI matrices from Terraform workload changes",
	Long: `tfmatrix classifies changed files under a workloads/<class>/<environment>/<account>/<region> tree,
groups them per environment and builds a CI job matrix from each environment's config.yml.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		silence(cmd)
		return initCliConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		perf.LogSummary()
	},
}

// silence hides usage and cobra's own error output except when help is requested.
// Errors are printed by main.
func silence(cmd *cobra.Command) {
	isHelpRequested := cmd.Name() == "help" || cmd.Flags().Changed("help")
	cmd.SilenceUsage = !isHelpRequested
	cmd.SilenceErrors = !isHelpRequested
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String("config", "", "Path to a tfmatrix.yaml configuration file, merged on top of the discovered ones")
	flags.String("base-path", "", "Repository directory that contains the taxonomy roots")
	flags.String("logs-level", cfg.DefaultLogsLevel, "Logs level. Supported log levels are Trace, Debug, Info, Warning, Error, Off")
	flags.String("logs-file", cfg.DefaultLogsFile, "The file to write logs to. Logs can be written to any file or to '/dev/stdout', '/dev/stderr' and '/dev/null'")
	flags.StringSlice("taxonomy-root", nil, "Taxonomy root directory (repeatable): tfmatrix matrix --taxonomy-root workloads --taxonomy-root legacy")
	flags.Bool("perf", false, "Record and log per-function call counts and latencies")

	RootCmd.AddCommand(matrixCmd, environmentsCmd, scanCmd, versionCmd)
}

// initCliConfig loads the configuration with command-line overrides and sets up logging.
func initCliConfig(cmd *cobra.Command) error {
	overrides, err := configOverrides(cmd.Flags())
	if err != nil {
		return err
	}

	config, err := cfg.LoadConfig(overrides)
	if err != nil {
		return err
	}

	logger, err := log.NewLoggerFromConfig(&config)
	if err != nil {
		return err
	}
	log.SetDefault(logger)
	perf.EnableTracking(config.Perf.Enabled)

	cliConfig = config
	log.Debug("Loaded configuration", "file", config.CliConfigPath, "base_path", config.BasePath, "taxonomy_roots", config.Taxonomy.Roots)
	return nil
}

// configOverrides collects the flags that override configuration values.
// Only flags given on the command line count.
func configOverrides(flags *pflag.FlagSet) (cfg.Overrides, error) {
	var o cfg.Overrides
	var err error

	stringFlags := map[string]*string{
		"config":     &o.ConfigPath,
		"base-path":  &o.BasePath,
		"logs-level": &o.LogsLevel,
		"logs-file":  &o.LogsFile,
		"source":     &o.Source,
		"policy":     &o.Policy,
	}
	for name, v := range stringFlags {
		if !changed(flags, name) {
			continue
		}
		if *v, err = flags.GetString(name); err != nil {
			return o, err
		}
	}

	sliceFlags := map[string]*[]string{
		"taxonomy-root": &o.TaxonomyRoots,
		"ignore":        &o.IgnorePatterns,
	}
	for name, v := range sliceFlags {
		if !changed(flags, name) {
			continue
		}
		if *v, err = flags.GetStringSlice(name); err != nil {
			return o, err
		}
	}

	if changed(flags, "perf") {
		if o.Perf, err = flags.GetBool("perf"); err != nil {
			return o, err
		}
	}

	o.Source, err = impliedSource(flags, o.Source)
	return o, err
}

// impliedSource picks the change source implied by --changed-files or
// --patch-file when --source is not given.
func impliedSource(flags *pflag.FlagSet, source string) (string, error) {
	implied := ""
	for flag, src := range map[string]string{"changed-files": cfg.SourceFile, "patch-file": cfg.SourcePatch} {
		if !changed(flags, flag) {
			continue
		}
		if implied != "" {
			return "", errUtils.Build(errUtils.ErrConflictingFlags).
				WithCause(errors.New("--changed-files and --patch-file cannot be used together")).
				WithHint("Pass either a list of changed files or a unified diff").
				Err()
		}
		implied = src
	}

	switch {
	case implied == "":
		return source, nil
	case source == "" || source == implied:
		return implied, nil
	default:
		return "", errUtils.Build(errUtils.ErrConflictingFlags).
			WithCause(errors.Newf("--source %s cannot read --%s", source, flagForSource(implied))).
			WithHintf("Drop --source or use --source %s", implied).
			Err()
	}
}

func flagForSource(source string) string {
	if source == cfg.SourcePatch {
		return "patch-file"
	}
	return "changed-files"
}

func changed(flags *pflag.FlagSet, name string) bool {
	return flags.Lookup(name) != nil && flags.Changed(name)
}
