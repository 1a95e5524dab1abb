package exec

import (
	"context"
	"io/fs"
	"os"

	"github.com/cloudposse/tfmatrix/pkg/affected"
	"github.com/cloudposse/tfmatrix/pkg/ci"
	"github.com/cloudposse/tfmatrix/pkg/filesystem"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/perf"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

// ScanCmdArgs are the arguments of `tfmatrix scan`.
type ScanCmdArgs struct {
	Config           *schema.Configuration
	OutputFile       string
	GithubOutputFile string
}

// ScanExec lists every environment found in the taxonomy tree on disk.
//
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
type ScanExec interface {
	Execute(ctx context.Context, args *ScanCmdArgs) error
}

type scanExec struct {
	newFS           func(basePath string) fs.FS
	newOutputWriter func(path string) ci.OutputWriter
	printer         printer
}

// NewScanExec creates a new `scan` executor.
func NewScanExec() ScanExec {
	defer perf.Track(nil, "exec.NewScanExec")()

	return &scanExec{
		newFS:           os.DirFS,
		newOutputWriter: ci.NewOutputWriter,
		printer:         printer{stdout: os.Stdout, fs: filesystem.NewOSFileSystem()},
	}
}

// Execute walks every taxonomy root and writes the environments view without
// build paths.
func (s *scanExec) Execute(ctx context.Context, a *ScanCmdArgs) error {
	defer perf.Track(a.Config, "exec.scanExec.Execute")()

	fsys := s.newFS(a.Config.BasePath)
	aggregated := make(map[string]affected.Changes, len(a.Config.Taxonomy.Roots))
	for _, root := range a.Config.Taxonomy.Roots {
		if err := ctx.Err(); err != nil {
			return err
		}
		changes, err := affected.Scan(fsys, root)
		if err != nil {
			return err
		}
		aggregated[root] = changes
	}

	view := MergeEnvironments(aggregated, a.Config.Taxonomy.Roots)
	log.Info("Scanned environments", "count", len(view))

	if err := s.printer.printOrWriteToFile(a.OutputFile, view); err != nil {
		return err
	}
	return writeGitHubOutputs(s.newOutputWriter(a.GithubOutputFile), "environments", view, nil)
}
