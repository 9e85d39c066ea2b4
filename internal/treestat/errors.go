package treestat

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a failure met during a walk.
type Kind int

const (
	// KindUnclassified failures abort the walk.
	KindUnclassified Kind = iota
	// KindPermission marks a path that could not be read for lack of permission.
	KindPermission
	// KindNotFound marks a path that vanished or never existed.
	KindNotFound
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not-found"
	default:
		return "unclassified"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Classify maps err to its Kind.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	default:
		return KindUnclassified
	}
}

// Skipped is a path left out of the total.
type Skipped struct {
	// Path is the file or directory path.
	Path string
	// Kind is why the path was skipped.
	Kind Kind
	// Err is the underlying error.
	Err error
}

// String renders the diagnostic line for the skipped path.
func (s Skipped) String() string {
	if s.Kind == KindPermission {
		return "Permission Error: " + s.Path
	}

	return "Directory Does Not Exist: " + s.Path
}

// MarshalJSON encodes the skipped path with its error as text.
func (s Skipped) MarshalJSON() ([]byte, error) {
	msg := ""
	if s.Err != nil {
		msg = s.Err.Error()
	}

	return json.Marshal(struct {
		Path  string `json:"path"`
		Kind  Kind   `json:"kind"`
		Error string `json:"error"`
	}{
		Path:  s.Path,
		Kind:  s.Kind,
		Error: msg,
	})
}

// ErrNotDirectory is returned when the walk root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// PatternError reports an exclusion pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("compiling exclusion pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// walkError is an unclassified failure below the root. It aborts the walk and
// is passed through unchanged when fastwalk reports it again for a parent.
type walkError struct {
	path string
	err  error
}

func (e *walkError) Error() string {
	return fmt.Sprintf("walking %q: %v", e.path, e.err)
}

func (e *walkError) Unwrap() error {
	return e.err
}
