package exec

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudposse/tfmatrix/pkg/ci"
	"github.com/cloudposse/tfmatrix/pkg/filesystem"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

func testConfig() *schema.Configuration {
	return &schema.Configuration{
		BasePath: ".",
		Taxonomy: schema.Taxonomy{Roots: []string{"workloads"}},
		Matrix:   schema.Matrix{FileSuffix: ".tf"},
		Changes:  schema.Changes{Source: "git", Policy: "auto"},
	}
}

// testPrinter captures stdout and writes files to disk.
func testPrinter() (printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return printer{stdout: &buf, fs: filesystem.NewOSFileSystem()}, &buf
}

// githubOutput returns an output writer factory backed by a temp file and a
// function that reads the file back.
func githubOutput(t *testing.T) (func(string) ci.OutputWriter, func() string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "github_output")
	factory := func(string) ci.OutputWriter { return ci.NewFileOutputWriter(path) }
	read := func() string {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return ""
		}
		require.NoError(t, err)
		return string(data)
	}
	return factory, read
}
