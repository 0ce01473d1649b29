package repack

import (
	"errors"
)

// Repack sentinel errors. A failed repack leaves the link-phase
// annotations untouched and reusable; only the clustering annotation
// under construction is discarded.
var (
	// ErrConstraintConflict reports design constraints contradicting
	// each other or the packing
	ErrConstraintConflict = errors.New("design constraint conflict")

	// ErrUnboundAtom reports an atom whose operating pb has no
	// physical binding from the link phase
	ErrUnboundAtom = errors.New("atom has no physical binding")
)
