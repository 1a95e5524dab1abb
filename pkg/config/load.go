package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/retry"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

// Overrides are values given on the command line. Empty fields leave the
// configured value untouched.
type Overrides struct {
	ConfigPath     string
	BasePath       string
	LogsLevel      string
	LogsFile       string
	TaxonomyRoots  []string
	Source         string
	Policy         string
	IgnorePatterns []string
	Perf           bool
}

// LoadConfig loads the CLI configuration from the following locations (from lower to higher priority):
// system dir (`/usr/local/etc/tfmatrix` on Linux, `%LOCALAPPDATA%/tfmatrix` on Windows)
// home dir (~/.tfmatrix)
// current directory
// TFMATRIX_CLI_CONFIG_PATH
// --config
// TFMATRIX_* ENV vars
// Command-line arguments
func LoadConfig(overrides Overrides) (schema.Configuration, error) {
	var cfg schema.Configuration

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaultConfiguration(v)

	sources := []func(*viper.Viper) error{
		readSystemConfig,
		readHomeConfig,
		readWorkDirConfig,
		readEnvConfigPath,
	}
	for _, read := range sources {
		if err := read(v); err != nil {
			return cfg, err
		}
	}

	if overrides.ConfigPath != "" {
		found, err := mergeConfigFile(v, overrides.ConfigPath)
		if err != nil {
			return cfg, err
		}
		if !found {
			return cfg, errUtils.Build(errUtils.ErrReadConfig).
				WithExplanationf("config file `%s` does not exist", overrides.ConfigPath).
				WithHint("Check the path passed to --config").
				WithContext("file", overrides.ConfigPath).
				Err()
		}
	}

	cfg.CliConfigPath = v.ConfigFileUsed()
	if cfg.CliConfigPath == "" {
		log.Debug("'tfmatrix.yaml' CLI config was not found", "paths", "system dir, home dir, current dir, ENV vars")
		log.Debug("Using the default CLI config")
		cfg.Default = true
	} else if !filepath.IsAbs(cfg.CliConfigPath) {
		absPath, err := filepath.Abs(cfg.CliConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg.CliConfigPath = absPath
	}

	cliConfigPath, isDefault := cfg.CliConfigPath, cfg.Default
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return cfg, errUtils.Build(errUtils.ErrInvalidConfig).
			WithCause(err).
			WithContext("file", cliConfigPath).
			Err()
	}
	cfg.CliConfigPath, cfg.Default = cliConfigPath, isDefault

	applyOverrides(&cfg, overrides)

	if err := Validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setDefaultConfiguration sets default configuration for the viper instance.
// Every key needs a default so that AutomaticEnv can override it on Unmarshal.
func setDefaultConfiguration(v *viper.Viper) {
	v.SetDefault("base_path", DefaultBasePath)
	v.SetDefault("taxonomy.roots", []string{DefaultTaxonomyRoot})
	v.SetDefault("matrix.file_suffix", DefaultFileSuffix)
	v.SetDefault("matrix.config_files", DefaultConfigFiles)
	v.SetDefault("changes.source", DefaultSource)
	v.SetDefault("changes.policy", DefaultPolicy)
	v.SetDefault("changes.ignore_patterns", []string{})
	v.SetDefault("logs.file", DefaultLogsFile)
	v.SetDefault("logs.level", DefaultLogsLevel)
	v.SetDefault("perf.enabled", false)

	r := retry.DefaultConfig()
	v.SetDefault("github.retry.max_attempts", r.MaxAttempts)
	v.SetDefault("github.retry.backoff_strategy", string(r.BackoffStrategy))
	v.SetDefault("github.retry.initial_delay", r.InitialDelay)
	v.SetDefault("github.retry.max_delay", r.MaxDelay)
	v.SetDefault("github.retry.random_jitter", r.RandomJitter)
	v.SetDefault("github.retry.multiplier", r.Multiplier)
	v.SetDefault("github.retry.max_elapsed_time", r.MaxElapsedTime)
}

func applyOverrides(cfg *schema.Configuration, o Overrides) {
	if o.BasePath != "" {
		cfg.BasePath = o.BasePath
	}
	if o.LogsLevel != "" {
		cfg.Logs.Level = o.LogsLevel
	}
	if o.LogsFile != "" {
		cfg.Logs.File = o.LogsFile
	}
	if len(o.TaxonomyRoots) > 0 {
		cfg.Taxonomy.Roots = o.TaxonomyRoots
	}
	if o.Source != "" {
		cfg.Changes.Source = o.Source
	}
	if o.Policy != "" {
		cfg.Changes.Policy = o.Policy
	}
	if len(o.IgnorePatterns) > 0 {
		cfg.Changes.IgnorePatterns = append(cfg.Changes.IgnorePatterns, o.IgnorePatterns...)
	}
	if o.Perf {
		cfg.Perf.Enabled = true
	}
}

// readSystemConfig loads config from the system dir.
func readSystemConfig(v *viper.Viper) error {
	dir := SystemDirConfigFilePath
	if runtime.GOOS == "windows" {
		appData := os.Getenv(WindowsAppDataEnvVar)
		if appData == "" {
			return nil
		}
		dir = filepath.Join(appData, CliConfigFileName)
	}
	return mergeConfigDir(v, dir)
}

// readHomeConfig loads config from the user's HOME dir.
func readHomeConfig(v *viper.Viper) error {
	home, err := homedir.Dir()
	if err != nil {
		return err
	}
	return mergeConfigDir(v, filepath.Join(home, DotCliConfigDirName))
}

// readWorkDirConfig loads config from the current working directory.
func readWorkDirConfig(v *viper.Viper) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	return mergeConfigDir(v, wd)
}

func readEnvConfigPath(v *viper.Viper) error {
	dir := os.Getenv(CliConfigPathEnvVar)
	if dir == "" {
		return nil
	}
	if err := mergeConfigDir(v, dir); err != nil {
		return err
	}
	log.Debug("Checked config ENV", CliConfigPathEnvVar, dir)
	return nil
}

// mergeConfigDir merges tfmatrix.yaml (or tfmatrix.yml) from dir when present.
func mergeConfigDir(v *viper.Viper, dir string) error {
	for _, ext := range []string{".yaml", ".yml"} {
		found, err := mergeConfigFile(v, filepath.Join(dir, CliConfigFileName+ext))
		if err != nil || found {
			return err
		}
	}
	return nil
}

// mergeConfigFile merges one config file into v. A missing file is not an error.
func mergeConfigFile(v *viper.Viper, path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		log.Trace("config not found", "file", path)
		return false, nil
	case err != nil:
		return false, errUtils.Build(errUtils.ErrReadConfig).WithCause(err).WithContext("file", path).Err()
	case info.IsDir():
		return false, nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return false, errUtils.Build(errUtils.ErrReadConfig).
			WithCause(errors.Wrapf(err, "parse %s", path)).
			WithHint("tfmatrix.yaml must be valid YAML").
			WithContext("file", path).
			Err()
	}
	log.Debug("Merged config", "file", path)
	return true, nil
}
