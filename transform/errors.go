package transform

import "fmt"

// MissingMappingError reports a read whose first variant position has no
// entry in the position-to-component mapping. This is a configuration error:
// the caller must supply a mapping covering every position of every read.
type MissingMappingError struct {
	ReadName string
	Position int
}

func (e *MissingMappingError) Error() string {
	return fmt.Sprintf("transform: no component mapping for position %d of read %q", e.Position, e.ReadName)
}

// DuplicatePositionError reports an output read carrying two variants at the
// same position. This is an internal consistency violation, not an input
// error: it means the accumulator associated one read with two clusters at a
// single column.
type DuplicatePositionError struct {
	ReadName string
	Position int
}

func (e *DuplicatePositionError) Error() string {
	return fmt.Sprintf("transform: duplicate position %d in output read %q", e.Position, e.ReadName)
}
