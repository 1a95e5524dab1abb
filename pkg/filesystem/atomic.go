package filesystem

import "os"

// WriteFileAtomic writes data to filename through a temporary file and a
// rename, so the file either keeps its old content or holds all of data.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return writeFileAtomicImpl(filename, data, perm)
}
