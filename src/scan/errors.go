package scan

import "fmt"

// DirectoryAccessError means a directory under the scan root could not be
// opened or listed. It aborts the scan.
type DirectoryAccessError struct {
	Path string
	Err  error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("scan: cannot read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

// FileReadError means a file with the scanned extension could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("scan: cannot read file %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }
