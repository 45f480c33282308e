package imf

import (
	"errors"
	"io"
)

// Error taxonomy. Errors from CPL and Asset Map parsing, UUID
// resolution and the scheduler's resource selection wrap exactly one of
// these sentinels (via fmt.Errorf("...: %w", ...)), so callers dispatch
// with errors.Is while the wrapped message keeps the offending element
// or URI. Errors from opening or fetching a URI and from the essence
// backend wrap the underlying error instead and match none of them.
var (
	// ErrInvalidData marks a structural XML or semantic violation: a
	// missing required element, an unparsable UUID/rational/integer, a
	// duplicate singleton track with a mismatched id, or a wrong root
	// element.
	ErrInvalidData = errors.New("imf: invalid data")

	// ErrPatchWelcome marks well-formed input that uses a feature the
	// core deliberately does not implement (stereoscopic image
	// sequences).
	ErrPatchWelcome = errors.New("imf: not yet implemented")

	// ErrStreamNotFound marks a reference to a UUID with no backing
	// asset, or a scheduler call that cannot select an active resource.
	ErrStreamNotFound = errors.New("imf: stream not found")

	// ErrOutOfMemory marks an allocation failure.
	ErrOutOfMemory = errors.New("imf: out of memory")

	// ErrEndOfStream is the non-error termination of playback: every
	// track has reached its duration. It is io.EOF so that the
	// scheduler composes naturally with callers written against Go's
	// usual EOF convention.
	ErrEndOfStream = io.EOF
)
