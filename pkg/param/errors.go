package param

import "errors"

// Error kinds surfaced by the synchronization engine. None of them is
// fatal to a panel: writes that fail are corrected by the next pull cycle.
var (
	// ErrUnknownParameter is a catalog miss - a programming error.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrUnsupported means the hardware does not expose this control.
	// A capability fact, not a failure.
	ErrUnsupported = errors.New("parameter not supported by hardware")

	// ErrWriteRejected means the hardware refused a value.
	ErrWriteRejected = errors.New("hardware rejected parameter write")

	// ErrPartialStereoWrite means exactly one of the two sensors accepted
	// a stereo write. The succeeded side is not rolled back; the mismatch
	// is surfaced and re-read on the next pull cycle.
	ErrPartialStereoWrite = errors.New("stereo write applied to one sensor only")

	// ErrNoCamera means no camera session is active.
	ErrNoCamera = errors.New("no active camera")
)
