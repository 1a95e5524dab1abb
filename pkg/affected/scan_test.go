package affected

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

func TestScan(t *testing.T) {
	fsys := fstest.MapFS{
		"workloads/network/prod/1234/us-east-1/main.tf": {},
		"workloads/network/prod/1234/us-west-2/main.tf": {},
		"workloads/network/prod/0999/eu-west-1/main.tf": {},
		"workloads/network/prod/config.yml":             {},
		"workloads/apps/dev/5678/eu-central-1/main.tf":  {},
		"workloads/apps/noregion/5678/README.md":        {},
		"workloads/apps/noaccount/config.yml":           {},
		"workloads/apps/prod/4444/us-east-1/main.tf":    {},
		"workloads/README.md":                           {},
	}

	changes, err := Scan(fsys, "workloads")
	require.NoError(t, err)

	assert.Equal(t, []string{"dev", "prod"}, changes.Environments())

	// "apps" sorts before "network", so its prod wins.
	assert.Equal(t, schema.EnvironmentView{
		Region:  "us-east-1",
		Account: "4444",
		RoleArn: "arn:aws:iam::4444:role/deployment-role",
		Class:   "apps",
	}, changes["prod"].View())

	assert.Equal(t, schema.EnvironmentView{
		Region:  "eu-central-1",
		Account: "5678",
		RoleArn: "arn:aws:iam::5678:role/deployment-role",
		Class:   "apps",
	}, changes["dev"].View())
}

func TestScanFirstAccountAndRegion(t *testing.T) {
	fsys := fstest.MapFS{
		"workloads/network/prod/1234/us-east-1/main.tf": {},
		"workloads/network/prod/1234/us-west-2/main.tf": {},
		"workloads/network/prod/0999/eu-west-1/main.tf": {},
	}

	changes, err := Scan(fsys, "workloads")
	require.NoError(t, err)
	assert.Equal(t, "0999", changes["prod"].Account)
	assert.Equal(t, "eu-west-1", changes["prod"].Region)
	assert.Empty(t, changes["prod"].View().TfBuildPaths)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(fstest.MapFS{}, "workloads")
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrScanTaxonomy)
}
