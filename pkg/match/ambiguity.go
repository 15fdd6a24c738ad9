package match

import (
	"fmt"

	"github.com/mattclark/SHARE/pkg/errors"
)

// AmbiguityError signals that a node required to resolve to a single record
// has more than one plausible match. NodeID is the node whose matches
// conflict, Relation the relation that required a single match, Candidates
// the full conflicting set. The caller decides how to merge; resolution
// never picks silently.
type AmbiguityError struct {
	NodeID     string
	Relation   string
	Candidates []Candidate
}

// Error implements the error interface.
func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("multiple matches for node %s via %s (%d candidates)", e.NodeID, e.Relation, len(e.Candidates))
}

// Is implements errors.Is support.
func (e *AmbiguityError) Is(target error) bool {
	return target == errors.ErrAmbiguousMatch
}
