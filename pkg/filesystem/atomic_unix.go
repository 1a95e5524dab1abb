//go:build !windows

package filesystem

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomicImpl hands the write to renameio, which fsyncs the temporary
// file before the rename.
func writeFileAtomicImpl(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
