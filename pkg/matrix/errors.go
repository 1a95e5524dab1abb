package matrix

import (
	"github.com/cockroachdb/errors"

	errUtils "github.com/cloudposse/tfmatrix/errors"
)

var errEmptyConfig = errUtils.Build(errUtils.ErrEnvironmentConfigInvalid).
	WithCause(errors.New("document is empty")).
	WithHint("Add at least one key to the environment config, e.g. `runner: ubuntu-latest`").
	Err()
