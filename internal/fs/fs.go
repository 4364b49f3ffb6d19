// Package fs provides the filesystem abstraction the GET and PUT handlers
// use to reach the server's working directory.
//
// The main types are:
//   - [FS]: interface for the handful of filesystem operations the handlers need
//   - [File]: interface for an open file (satisfied by [os.File])
//   - [Real]: production implementation backed by the [os] package
//
// Handlers depend on [FS] rather than calling [os] directly so that the
// GET/PUT error dispositions (not-found, access-denied, other-error) can be
// exercised deterministically in tests without touching the real
// filesystem.
package fs

import (
	"io"
	"os"
)

// File represents an open file descriptor.
//
// Satisfied by [os.File]. Handlers only need read/write/close and [File.Stat]
// (for the Content-Length on a successful GET).
type File interface {
	io.Reader
	io.Writer
	io.Closer

	// Stat returns file info for the open file. See [os.File.Stat].
	Stat() (os.FileInfo, error)
}

// FS defines the filesystem operations the GET/PUT handlers use.
//
// Implementations in this package:
//   - [Real]: production use, wraps [os]
//   - [Fault]: test use, injects deterministic per-path errors
//
// Implementations must be safe for concurrent use by multiple goroutines.
type FS interface {
	// Open opens a file for reading. See [os.Open].
	Open(path string) (File, error)

	// OpenFile opens a file with the given flags and permissions. See
	// [os.OpenFile]. Handlers use this for the directory probe
	// (os.O_RDONLY|syscall.O_DIRECTORY — os.OpenFile passes extra flag bits
	// straight through to the open(2) syscall on unix) and for PUT's
	// O_CREATE|O_EXCL / O_TRUNC sequence.
	OpenFile(path string, flag int, perm os.FileMode) (File, error)
}

// Compile-time interface check.
var _ File = (*os.File)(nil)
