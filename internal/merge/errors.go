package merge

import "errors"

// ErrMissingClockReference indicates a document whose meta block has no
// usable startTime, leaving the two captures impossible to align.
var ErrMissingClockReference = errors.New("missing clock reference")

// ErrAmbiguousProcessMatch indicates that more than one marker-capture
// process carries the name of a retained sample-capture process.
var ErrAmbiguousProcessMatch = errors.New("ambiguous process match")

// ErrNoMatchingProcess indicates that the process-name prefix filter
// retained no sample-capture process at all.
var ErrNoMatchingProcess = errors.New("no matching process")
