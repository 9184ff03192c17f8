package shifts

import "errors"

// ErrPatternNotFound is returned by AddPattern for unknown preset names.
var ErrPatternNotFound = errors.New("shift pattern not found")
