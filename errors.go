package wfobj

import "errors"

// Sentinel errors for the hard-failure causes this package can report.
var (
	// ErrBadExtension is returned when the OBJ path does not end in ".obj"
	// (case-sensitive, see DESIGN.md Open Question (d)).
	ErrBadExtension = errors.New("wfobj: path does not end in \".obj\"")

	// ErrZeroIndex is returned when a face-vertex index token contains 0;
	// OBJ indices are 1-based and 0 is never valid.
	ErrZeroIndex = errors.New("wfobj: face-vertex index is 0")

	// ErrMalformedFace is returned when a face token cannot be decoded into
	// a vertex-index triple.
	ErrMalformedFace = errors.New("wfobj: malformed face token")

	// ErrUnresolvedReference is returned at end-of-parse when some face
	// referenced a pool position that was never defined.
	ErrUnresolvedReference = errors.New("wfobj: forward reference never resolved")
)
