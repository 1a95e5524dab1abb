package changeset

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	"github.com/cloudposse/tfmatrix/pkg/perf"
)

const devNull = "/dev/null"

// PatchProvider reads changed paths from a unified diff, such as the output of
// `git diff` or a pull request's .diff. Renamed files contribute both names.
// The revision range is ignored.
type PatchProvider struct {
	Path string
	// Stdin is read when Path is "-". Nil means os.Stdin.
	Stdin io.Reader
}

// ChangedFiles implements Provider.
func (p *PatchProvider) ChangedFiles(_ context.Context, _ RevisionRange) ([]string, error) {
	defer perf.Track(nil, "changeset.PatchProvider.ChangedFiles")()

	data, err := p.read()
	if err != nil {
		return nil, err
	}
	return ParsePatch(data)
}

func (p *PatchProvider) read() ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case p.Path == Stdin && p.Stdin != nil:
		data, err = io.ReadAll(p.Stdin)
	case p.Path == Stdin:
		data, err = io.ReadAll(os.Stdin)
	default:
		data, err = os.ReadFile(p.Path)
	}
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrReadChangedFileList).
			WithCause(err).
			WithContext("file", p.Path).
			Err()
	}
	return data, nil
}

// ParsePatch returns the paths touched by a unified diff in the order they appear.
func ParsePatch(data []byte) ([]string, error) {
	fileDiffs, err := diff.NewMultiFileDiffReader(bytes.NewReader(data)).ReadAllFiles()
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrParsePatch).
			WithCause(err).
			WithHint("Pass the output of `git diff` without color codes").
			Err()
	}

	paths := make([]string, 0, len(fileDiffs)*2)
	for _, fd := range fileDiffs {
		paths = append(paths, patchPath(fd.OrigName), patchPath(fd.NewName))
	}
	return Unique(paths), nil
}

// patchPath strips the a/ and b/ prefixes and any trailing timestamp. /dev/null
// becomes empty.
func patchPath(name string) string {
	if i := strings.IndexByte(name, '\t'); i >= 0 {
		name = name[:i]
	}
	if name == devNull {
		return ""
	}
	if strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/") {
		return name[2:]
	}
	return name
}
