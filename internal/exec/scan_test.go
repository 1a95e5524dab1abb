package exec

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/tfmatrix/errors"
)

func TestScanExecute(t *testing.T) {
	fsys := fstest.MapFS{
		"workloads/network/prod/1234/us-east-1/main.tf": {},
		"workloads/network/dev/5678/eu-west-1/main.tf":  {},
		"workloads/network/qa/config.yml":               {},
	}

	p, stdout := testPrinter()
	outputs, readOutputs := githubOutput(t)
	s := &scanExec{
		newFS:           func(string) fs.FS { return fsys },
		newOutputWriter: outputs,
		printer:         p,
	}

	require.NoError(t, s.Execute(context.Background(), &ScanCmdArgs{Config: testConfig()}))

	assert.JSONEq(t, `{
  "dev": {"region": "eu-west-1", "account": "5678", "role_arn": "arn:aws:iam::5678:role/deployment-role", "class": "network"},
  "prod": {"region": "us-east-1", "account": "1234", "role_arn": "arn:aws:iam::1234:role/deployment-role", "class": "network"}
}`, stdout.String())
	assert.Contains(t, readOutputs(), `environments={"dev":`)
	assert.NotContains(t, readOutputs(), "has_changes")
}

func TestScanExecuteMissingRoot(t *testing.T) {
	p, stdout := testPrinter()
	s := &scanExec{
		newFS:   func(string) fs.FS { return fstest.MapFS{} },
		printer: p,
	}

	err := s.Execute(context.Background(), &ScanCmdArgs{Config: testConfig()})
	assert.ErrorIs(t, err, errUtils.ErrScanTaxonomy)
	assert.Empty(t, stdout.String())
}
