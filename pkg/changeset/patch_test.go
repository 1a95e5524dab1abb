package changeset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/tfmatrix/errors"
)

const samplePatch = `diff --git a/workloads/network/prod/1234/us-east-1/main.tf b/workloads/network/prod/1234/us-east-1/main.tf
index 1111111..2222222 100644
--- a/workloads/network/prod/1234/us-east-1/main.tf
+++ b/workloads/network/prod/1234/us-east-1/main.tf
@@ -1,3 +1,3 @@
 module "vpc" {
-  cidr = "10.0.0.0/16"
+  cidr = "10.1.0.0/16"
 }
diff --git a/workloads/apps/dev/5678/eu-west-1/new.tf b/workloads/apps/dev/5678/eu-west-1/new.tf
new file mode 100644
index 0000000..3333333
--- /dev/null
+++ b/workloads/apps/dev/5678/eu-west-1/new.tf
@@ -0,0 +1 @@
+locals {}
diff --git a/workloads/apps/old/5678/eu-west-1/gone.tf b/workloads/apps/old/5678/eu-west-1/gone.tf
deleted file mode 100644
index 4444444..0000000
--- a/workloads/apps/old/5678/eu-west-1/gone.tf
+++ /dev/null
@@ -1 +0,0 @@
-locals {}
diff --git a/workloads/apps/qa/1/us-east-1/a.tf b/workloads/apps/uat/1/us-east-1/a.tf
similarity index 90%
rename from workloads/apps/qa/1/us-east-1/a.tf
rename to workloads/apps/uat/1/us-east-1/a.tf
index 5555555..6666666 100644
--- a/workloads/apps/qa/1/us-east-1/a.tf
+++ b/workloads/apps/uat/1/us-east-1/a.tf
@@ -1 +1 @@
-locals { a = 1 }
+locals { a = 2 }
`

func TestParsePatch(t *testing.T) {
	paths, err := ParsePatch([]byte(samplePatch))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"workloads/network/prod/1234/us-east-1/main.tf",
		"workloads/apps/dev/5678/eu-west-1/new.tf",
		"workloads/apps/old/5678/eu-west-1/gone.tf",
		"workloads/apps/qa/1/us-east-1/a.tf",
		"workloads/apps/uat/1/us-east-1/a.tf",
	}, paths)
}

func TestParsePatchEmpty(t *testing.T) {
	paths, err := ParsePatch(nil)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestPatchPath(t *testing.T) {
	assert.Equal(t, "x/y.tf", patchPath("a/x/y.tf"))
	assert.Equal(t, "x/y.tf", patchPath("b/x/y.tf"))
	assert.Equal(t, "x/y.tf", patchPath("x/y.tf"))
	assert.Equal(t, "x/y.tf", patchPath("b/x/y.tf\t2024-01-01 00:00:00"))
	assert.Empty(t, patchPath("/dev/null"))
}

func TestPatchProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changes.diff")
	require.NoError(t, os.WriteFile(path, []byte(samplePatch), 0o644))

	files, err := (&PatchProvider{Path: path}).ChangedFiles(context.Background(), RevisionRange{})
	require.NoError(t, err)
	assert.Len(t, files, 5)

	files, err = (&PatchProvider{Path: Stdin, Stdin: strings.NewReader(samplePatch)}).ChangedFiles(context.Background(), RevisionRange{})
	require.NoError(t, err)
	assert.Len(t, files, 5)
}

func TestPatchProviderMissingFile(t *testing.T) {
	_, err := (&PatchProvider{Path: filepath.Join(t.TempDir(), "nope.diff")}).ChangedFiles(context.Background(), RevisionRange{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrReadChangedFileList)
}
