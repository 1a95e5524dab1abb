package exec

import (
	"context"
	"os"

	"github.com/cloudposse/tfmatrix/pkg/ci"
	"github.com/cloudposse/tfmatrix/pkg/filesystem"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/perf"
)

// EnvironmentsCmdArgs are the arguments of `tfmatrix environments`.
type EnvironmentsCmdArgs struct {
	Params           ResolveParams
	OutputFile       string
	GithubOutputFile string
}

// EnvironmentsExec lists the environments touched by a change set.
//
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
type EnvironmentsExec interface {
	Execute(ctx context.Context, args *EnvironmentsCmdArgs) error
}

type environmentsExec struct {
	newProvider     ProviderFactory
	newOutputWriter func(path string) ci.OutputWriter
	printer         printer
}

// NewEnvironmentsExec creates a new `environments` executor.
func NewEnvironmentsExec() EnvironmentsExec {
	defer perf.Track(nil, "exec.NewEnvironmentsExec")()

	return &environmentsExec{
		newProvider:     NewProvider,
		newOutputWriter: ci.NewOutputWriter,
		printer:         printer{stdout: os.Stdout, fs: filesystem.NewOSFileSystem()},
	}
}

// Execute resolves the change set and writes the environments view.
func (e *environmentsExec) Execute(ctx context.Context, a *EnvironmentsCmdArgs) error {
	defer perf.Track(a.Params.Config, "exec.environmentsExec.Execute")()

	params := &a.Params
	provider, err := e.newProvider(ctx, params)
	if err != nil {
		return err
	}
	res, err := ResolveChanges(ctx, params, provider)
	if err != nil {
		return err
	}

	view := MergeEnvironments(res.Aggregated, params.Config.Taxonomy.Roots)
	hasChanges := len(view) > 0
	log.Info("Resolved environments", "count", len(view))

	if err := e.printer.printOrWriteToFile(a.OutputFile, view); err != nil {
		return err
	}
	return writeGitHubOutputs(e.newOutputWriter(a.GithubOutputFile), "environments", view, &hasChanges)
}
