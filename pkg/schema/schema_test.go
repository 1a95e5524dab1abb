package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixEntryFields(t *testing.T) {
	entry := MatrixEntry{
		Config: map[string]any{
			"region":         "us-east-1",
			"environment":    "from-config",
			"terraform_path": "ignored",
		},
		TerraformPath: "workloads",
		Environment:   "prod",
	}

	fields := entry.Fields()

	assert.Equal(t, "us-east-1", fields["region"])
	assert.Equal(t, "prod", fields[MatrixKeyEnvironment], "reserved keys override config keys")
	assert.Equal(t, "workloads", fields[MatrixKeyTerraformPath])
	assert.Equal(t, []string{}, fields[MatrixKeyChangedFiles], "changed_files is never null")
	assert.Equal(t, "from-config", entry.Config["environment"], "config map is not mutated")
}

func TestMatrixResultView(t *testing.T) {
	t.Run("empty result renders null include", func(t *testing.T) {
		view := MatrixResult{}.View()
		assert.Nil(t, view.Include)
		assert.False(t, view.HasChanges)
	})

	t.Run("entries keep order", func(t *testing.T) {
		result := MatrixResult{
			Include: []MatrixEntry{
				{TerraformPath: "workloads", Environment: "dev"},
				{TerraformPath: "workloads", Environment: "prod", ChangedFiles: []string{"a.tf"}},
			},
			HasChanges: true,
		}

		view := result.View()

		assert.True(t, view.HasChanges)
		assert.Len(t, view.Include, 2)
		assert.Equal(t, "dev", view.Include[0][MatrixKeyEnvironment])
		assert.Equal(t, []string{"a.tf"}, view.Include[1][MatrixKeyChangedFiles])
	})
}

func TestEnvironmentChange(t *testing.T) {
	record := &TaxonomyRecord{
		ClassType:   "network",
		Environment: "prod",
		Account:     "1234",
		Region:      "us-east-1",
		BuildPath:   "workloads/network/prod/1234/us-east-1",
	}
	change := NewEnvironmentChange("workloads", record, "arn:aws:iam::1234:role/deployment-role")
	change.AddBuildPath("workloads/network/prod/1234/us-east-1/vpc")
	change.AddBuildPath(record.BuildPath)
	change.AddBuildPath(record.BuildPath)

	assert.Equal(t, []string{
		"workloads/network/prod/1234/us-east-1",
		"workloads/network/prod/1234/us-east-1/vpc",
	}, change.SortedBuildPaths())

	view := change.View()
	assert.Equal(t, EnvironmentView{
		Region:  "us-east-1",
		Account: "1234",
		RoleArn: "arn:aws:iam::1234:role/deployment-role",
		Class:   "network",
		TfBuildPaths: []string{
			"workloads/network/prod/1234/us-east-1",
			"workloads/network/prod/1234/us-east-1/vpc",
		},
	}, view)
}

func TestAddBuildPathOnZeroValue(t *testing.T) {
	var change EnvironmentChange
	change.AddBuildPath("workloads/a/b/c/d")
	assert.Equal(t, []string{"workloads/a/b/c/d"}, change.SortedBuildPaths())
}
