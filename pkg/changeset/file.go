package changeset

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	"github.com/cloudposse/tfmatrix/pkg/perf"
)

// Stdin is the path that makes FileProvider read standard input.
const Stdin = "-"

// FileProvider reads a newline-separated list of changed paths, such as the
// output of `git diff --name-only`. The revision range is ignored.
type FileProvider struct {
	Path string
	// Stdin is read when Path is "-". Nil means os.Stdin.
	Stdin io.Reader
}

// ChangedFiles implements Provider.
func (p *FileProvider) ChangedFiles(ctx context.Context, _ RevisionRange) ([]string, error) {
	defer perf.Track(nil, "changeset.FileProvider.ChangedFiles")()

	r, closeFn, err := p.open()
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errUtils.Build(errUtils.ErrReadChangedFileList).
			WithCause(err).
			WithContext("file", p.Path).
			Err()
	}
	return Unique(paths), nil
}

func (p *FileProvider) open() (io.Reader, func(), error) {
	if p.Path == Stdin {
		if p.Stdin != nil {
			return p.Stdin, func() {}, nil
		}
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(p.Path)
	if err != nil {
		return nil, nil, errUtils.Build(errUtils.ErrReadChangedFileList).
			WithCause(err).
			WithHint("Pass the file with --changed-files, or `-` to read standard input").
			WithContext("file", p.Path).
			Err()
	}
	return f, func() { _ = f.Close() }, nil
}
