package rect

import "fmt"

// DegenerateSegmentError reports a segment whose endpoints share the same x
// coordinate. Such segments have no orientation under the atan-based solver
// and are rejected before any rectangle is built.
type DegenerateSegmentError struct {
	ID int
}

func (e *DegenerateSegmentError) Error() string {
	return fmt.Sprintf("segment %d: head and tail share the same x coordinate", e.ID)
}

// ZeroLengthSegmentError reports a segment of zero planar length. The
// elevation slope is undefined for such segments.
type ZeroLengthSegmentError struct {
	ID int
}

func (e *ZeroLengthSegmentError) Error() string {
	return fmt.Sprintf("segment %d: zero planar length", e.ID)
}
