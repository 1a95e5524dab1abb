package utils

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	"github.com/cloudposse/tfmatrix/pkg/filesystem"
	"github.com/cloudposse/tfmatrix/pkg/perf"
)

// json keeps map keys sorted so output is stable across runs.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ConvertToJSON converts the provided value to a JSON string indented with two spaces.
func ConvertToJSON(data any) (string, error) {
	defer perf.Track(nil, "utils.ConvertToJSON")()

	j, err := json.Marshal(data)
	if err != nil {
		return "", errUtils.Build(errUtils.ErrEncodeOutput).WithCause(err).Err()
	}

	// jsoniter's MarshalIndent loses the indentation of arrays nested in
	// sorted maps, so the compact document is indented afterwards.
	var buf bytes.Buffer
	if err := stdjson.Indent(&buf, j, "", strings.Repeat(" ", 2)); err != nil {
		return "", errUtils.Build(errUtils.ErrEncodeOutput).WithCause(err).Err()
	}
	return buf.String(), nil
}

// ConvertToJSONCompact converts the provided value to a single-line JSON string.
func ConvertToJSONCompact(data any) (string, error) {
	defer perf.Track(nil, "utils.ConvertToJSONCompact")()

	j, err := json.Marshal(data)
	if err != nil {
		return "", errUtils.Build(errUtils.ErrEncodeOutput).WithCause(err).Err()
	}
	return string(j), nil
}

// PrintAsJSON writes the provided value to w as an indented JSON document.
func PrintAsJSON(w io.Writer, data any) error {
	defer perf.Track(nil, "utils.PrintAsJSON")()

	j, err := ConvertToJSON(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, j); err != nil {
		return errUtils.Build(errUtils.ErrWriteOutput).WithCause(err).Err()
	}
	return nil
}

// WriteToFileAsJSON converts the provided value to JSON and writes it to
// filePath atomically, creating parent directories as needed.
func WriteToFileAsJSON(fs filesystem.FileSystem, filePath string, data any, fileMode os.FileMode) error {
	defer perf.Track(nil, "utils.WriteToFileAsJSON")()

	j, err := ConvertToJSON(data)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return errUtils.Build(errUtils.ErrWriteOutput).
				WithCause(err).
				WithContext("file", filePath).
				Err()
		}
	}

	if err := fs.WriteFile(filePath, []byte(j+"\n"), fileMode); err != nil {
		return errUtils.Build(errUtils.ErrWriteOutput).
			WithCause(err).
			WithHint("Check that the output directory is writable").
			WithContext("file", filePath).
			Err()
	}
	return nil
}
