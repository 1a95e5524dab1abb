package exec

import (
	"io"
	"strconv"

	"github.com/cloudposse/tfmatrix/pkg/ci"
	"github.com/cloudposse/tfmatrix/pkg/filesystem"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	u "github.com/cloudposse/tfmatrix/pkg/utils"
)

const defaultFilePermissions = 0o644

// printer writes a JSON document to stdout or, when file is set, to file.
type printer struct {
	stdout io.Writer
	fs     filesystem.FileSystem
}

func (p printer) printOrWriteToFile(file string, data any) error {
	if file == "" {
		return u.PrintAsJSON(p.stdout, data)
	}
	if err := u.WriteToFileAsJSON(p.fs, file, data, defaultFilePermissions); err != nil {
		return err
	}
	log.Debug("Wrote output to file", "file", file)
	return nil
}

// writeGitHubOutputs publishes key=<compact json> and, when hasChanges is not
// nil, has_changes=<bool>.
func writeGitHubOutputs(w ci.OutputWriter, key string, data any, hasChanges *bool) error {
	j, err := u.ConvertToJSONCompact(data)
	if err != nil {
		return err
	}
	if err := w.WriteOutput(key, j); err != nil {
		return err
	}
	if hasChanges != nil {
		if err := w.WriteOutput("has_changes", strconv.FormatBool(*hasChanges)); err != nil {
			return err
		}
	}
	return nil
}
