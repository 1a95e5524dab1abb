package config

import (
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("glob", validateGlob)
	})
	return validate
}

// validateGlob accepts doublestar patterns, with {root}-style placeholders
// treated as literal text.
func validateGlob(fl validator.FieldLevel) bool {
	pattern := strings.NewReplacer("{root}", "r", "{class}", "c", "{environment}", "e").Replace(fl.Field().String())
	return doublestar.ValidatePattern(pattern)
}

// Validate checks a decoded configuration.
func Validate(cfg *schema.Configuration) error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errUtils.Build(errUtils.ErrInvalidConfig).WithCause(err).Err()
	}

	fe := validationErrs[0]
	builder := errUtils.Build(errUtils.ErrInvalidConfig).
		WithCause(errors.Newf("%s failed the %q check", fe.Namespace(), fe.Tag())).
		WithContext("field", fe.Namespace()).
		WithContext("value", fe.Value())

	switch fe.StructField() {
	case "Roots":
		builder = builder.WithHint("taxonomy.roots must list at least one single-segment directory name, e.g. `workloads`")
	case "Source":
		builder = builder.WithSentinel(errUtils.ErrInvalidChangeSource).
			WithHint("Use one of: git, github, patch, file")
	case "Policy":
		builder = builder.WithSentinel(errUtils.ErrInvalidRevisionRange).
			WithHint("Use one of: auto, merge-base, previous-commit, range, all")
	case "Level":
		builder = builder.WithSentinel(errUtils.ErrInvalidLogLevel).
			WithHint("Use one of: Trace, Debug, Info, Warning, Error, Off")
	case "BackoffStrategy":
		builder = builder.WithHint("Use one of: constant, linear, exponential")
	case "ConfigFiles", "IgnorePatterns":
		builder = builder.WithHint("Patterns use doublestar glob syntax")
	}
	return builder.Err()
}
