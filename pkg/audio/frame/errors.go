// ABOUTME: Error kinds returned by frame operations
// ABOUTME: Sentinels for errors.Is checks by callers
package frame

import "errors"

var (
	// ErrAllocation reports that the native layer could not allocate a
	// handle or buffer: out of memory, or an invalid size/format combination.
	ErrAllocation = errors.New("frame: allocation failed")

	// ErrPrecondition reports an operation invoked in a state that does not
	// permit it, such as allocating before sizing metadata is set or copying
	// between frames of different shape.
	ErrPrecondition = errors.New("frame: precondition violated")

	// ErrStaleView is returned by a Samples view whose frame has since been
	// reshaped, overwritten or closed.
	ErrStaleView = errors.New("frame: samples view is stale")

	// ErrReadOnly is returned when writing through a view that does not
	// permit writes.
	ErrReadOnly = errors.New("frame: samples view is read-only")
)
