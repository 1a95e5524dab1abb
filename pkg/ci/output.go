package ci

import (
	"fmt"
	"os"
	"strings"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	"github.com/cloudposse/tfmatrix/pkg/perf"
)

// OutputWriter publishes step outputs to the CI system.
type OutputWriter interface {
	WriteOutput(key, value string) error
}

// NoopOutputWriter is an OutputWriter that does nothing.
// Used when not running in CI or when CI outputs are disabled.
type NoopOutputWriter struct{}

// WriteOutput implements OutputWriter.
func (w *NoopOutputWriter) WriteOutput(_, _ string) error {
	return nil
}

// FileOutputWriter appends outputs to a file such as $GITHUB_OUTPUT.
type FileOutputWriter struct {
	outputPath string
}

// NewFileOutputWriter creates a new FileOutputWriter.
func NewFileOutputWriter(outputPath string) *FileOutputWriter {
	return &FileOutputWriter{outputPath: outputPath}
}

// NewOutputWriter returns a FileOutputWriter for path, or a NoopOutputWriter
// when path is empty.
func NewOutputWriter(path string) OutputWriter {
	if path == "" {
		return &NoopOutputWriter{}
	}
	return NewFileOutputWriter(path)
}

// WriteOutput writes a key-value pair to the output file.
// Format: key=value (single line) or key<<EOF\nvalue\nEOF (multiline).
func (w *FileOutputWriter) WriteOutput(key, value string) error {
	defer perf.Track(nil, "ci.FileOutputWriter.WriteOutput")()

	if w.outputPath == "" {
		return nil
	}

	f, err := os.OpenFile(w.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errUtils.Build(errUtils.ErrWriteOutput).
			WithCause(err).
			WithContext("file", w.outputPath).
			Err()
	}
	defer f.Close()

	if strings.Contains(value, "\n") {
		delimiter := "EOF"
		// The delimiter must not appear in the value.
		for strings.Contains(value, delimiter) {
			delimiter += "_"
		}
		_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter)
	} else {
		_, err = fmt.Fprintf(f, "%s=%s\n", key, value)
	}
	if err != nil {
		return errUtils.Build(errUtils.ErrWriteOutput).WithCause(err).WithContext("file", w.outputPath).Err()
	}
	return nil
}
