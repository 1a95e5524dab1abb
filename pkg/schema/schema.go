package schema

// Configuration is the tfmatrix CLI configuration, assembled from tfmatrix.yaml
// files, TFMATRIX_* environment variables and command-line flags.
type Configuration struct {
	BasePath string   `yaml:"base_path" json:"base_path" mapstructure:"base_path"`
	Taxonomy Taxonomy `yaml:"taxonomy" json:"taxonomy" mapstructure:"taxonomy"`
	Matrix   Matrix   `yaml:"matrix" json:"matrix" mapstructure:"matrix"`
	Changes  Changes  `yaml:"changes" json:"changes" mapstructure:"changes"`
	GitHub   GitHub   `yaml:"github" json:"github" mapstructure:"github"`
	Logs     Logs     `yaml:"logs" json:"logs" mapstructure:"logs"`
	Perf     Perf     `yaml:"perf" json:"perf" mapstructure:"perf"`

	// CliConfigPath is the absolute path of the config file that was used, if any.
	CliConfigPath string `yaml:"-" json:"cli_config_path,omitempty" mapstructure:"-"`
	// Default is true when no config file was found and built-in defaults apply.
	Default bool `yaml:"-" json:"-" mapstructure:"-"`
}

// Taxonomy describes the workloads/<class>/<environment>/<account>/<region> layout.
type Taxonomy struct {
	// Roots are the top-level directories scanned for environments, in output order.
	Roots []string `yaml:"roots" json:"roots" mapstructure:"roots" validate:"required,min=1,dive,required,excludesall=/\\"`
}

// Matrix configures how matrix entries are assembled.
type Matrix struct {
	// ConfigFiles are the patterns used to find an environment's config document.
	// {root}, {class} and {environment} are substituted; doublestar globs are allowed.
	ConfigFiles []string `yaml:"config_files" json:"config_files" mapstructure:"config_files" validate:"required,min=1,dive,required,glob"`
	// FileSuffix selects which changed files are listed in changed_files.
	FileSuffix string `yaml:"file_suffix" json:"file_suffix" mapstructure:"file_suffix"`
}

// Changes configures how the changed-file set is obtained.
type Changes struct {
	Source string `yaml:"source" json:"source" mapstructure:"source" validate:"oneof=git github patch file"`
	Policy string `yaml:"policy" json:"policy" mapstructure:"policy" validate:"oneof=auto merge-base previous-commit range all"`
	// IgnorePatterns are doublestar globs; matching changed paths are dropped.
	IgnorePatterns []string `yaml:"ignore_patterns" json:"ignore_patterns" mapstructure:"ignore_patterns" validate:"dive,required,glob"`
}

// Logs configures logging.
type Logs struct {
	File  string `yaml:"file" json:"file" mapstructure:"file"`
	Level string `yaml:"level" json:"level" mapstructure:"level" validate:"omitempty,oneof=Trace Debug Info Warning Error Off"`
}

// Perf configures function timing.
type Perf struct {
	Enabled bool `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
}
