package exec

import (
	"context"
	"os"

	"github.com/cloudposse/tfmatrix/pkg/ci"
	"github.com/cloudposse/tfmatrix/pkg/filesystem"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/matrix"
	"github.com/cloudposse/tfmatrix/pkg/perf"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

// MatrixCmdArgs are the arguments of `tfmatrix matrix`.
type MatrixCmdArgs struct {
	Params           ResolveParams
	OutputFile       string
	GithubOutputFile string
}

// MatrixExec builds the CI matrix for a change set.
//
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
type MatrixExec interface {
	Execute(ctx context.Context, args *MatrixCmdArgs) error
}

type matrixExec struct {
	newProvider     ProviderFactory
	newLoader       func(config *schema.Configuration) matrix.ConfigLoader
	newOutputWriter func(path string) ci.OutputWriter
	printer         printer
}

// NewMatrixExec creates a new `matrix` executor.
func NewMatrixExec() MatrixExec {
	defer perf.Track(nil, "exec.NewMatrixExec")()

	return &matrixExec{
		newProvider:     NewProvider,
		newLoader:       newConfigLoader,
		newOutputWriter: ci.NewOutputWriter,
		printer:         printer{stdout: os.Stdout, fs: filesystem.NewOSFileSystem()},
	}
}

func newConfigLoader(config *schema.Configuration) matrix.ConfigLoader {
	return matrix.NewYAMLConfigLoader(config.BasePath, config.Matrix.ConfigFiles)
}

// Execute resolves the change set, builds the matrix and writes it.
// Nothing is written when any step before output fails.
func (m *matrixExec) Execute(ctx context.Context, a *MatrixCmdArgs) error {
	defer perf.Track(a.Params.Config, "exec.matrixExec.Execute")()

	params := &a.Params
	config := params.Config

	provider, err := m.newProvider(ctx, params)
	if err != nil {
		return err
	}
	res, err := ResolveChanges(ctx, params, provider)
	if err != nil {
		return err
	}

	result, warnings := matrix.Build(
		res.Aggregated,
		config.Taxonomy.Roots,
		m.newLoader(config),
		res.ChangedPaths,
		matrix.WithFileSuffix(config.Matrix.FileSuffix),
	)
	log.Info("Built matrix", "entries", len(result.Include), "skipped", len(warnings))

	return m.write(a, result)
}

func (m *matrixExec) write(a *MatrixCmdArgs, result schema.MatrixResult) error {
	view := result.View()
	if err := m.printer.printOrWriteToFile(a.OutputFile, view); err != nil {
		return err
	}
	return writeGitHubOutputs(m.newOutputWriter(a.GithubOutputFile), "matrix", view, &result.HasChanges)
}
