package fs

import "os"

// Fault wraps an [FS] and injects deterministic, caller-configured errors.
//
// Unlike a probabilistic fault injector, [Fault] is built for exercising one
// specific disposition at a time — "this path's Open call returns EACCES" —
// which is what the GET/PUT error-kind table needs: each row (not-found,
// access-denied, other-error) is its own deterministic test case, not a
// fuzzing target. Calls for paths with no configured hook pass straight
// through to the wrapped [FS].
type Fault struct {
	fs FS

	// OpenErr, when non-nil, is returned by Open for the matching path
	// instead of delegating to the wrapped FS.
	OpenErr map[string]error

	// OpenFileErr, when non-nil, is returned by OpenFile for the matching
	// path instead of delegating to the wrapped FS.
	OpenFileErr map[string]error
}

// NewFault wraps fs with a [Fault] that has no configured errors yet.
func NewFault(fs FS) *Fault {
	return &Fault{
		fs:          fs,
		OpenErr:     map[string]error{},
		OpenFileErr: map[string]error{},
	}
}

// Open returns the configured error for path, if any, otherwise delegates.
func (f *Fault) Open(path string) (File, error) {
	if err, ok := f.OpenErr[path]; ok {
		return nil, err
	}

	return f.fs.Open(path)
}

// OpenFile returns the configured error for path, if any, otherwise delegates.
func (f *Fault) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	if err, ok := f.OpenFileErr[path]; ok {
		return nil, err
	}

	return f.fs.OpenFile(path, flag, perm)
}

// Compile-time interface check.
var _ FS = (*Fault)(nil)
