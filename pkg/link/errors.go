package link

import (
	"errors"

	"github.com/TOM-once/OpenFPGA/pkg/tiledirect"
)

// Link-phase sentinel errors. Structural errors abort the whole
// phase; configuration errors abort the pass that hit them. Neither
// is retried: the checks are deterministic.
var (
	// ErrUnsupportedTopology reports a routing resource graph this
	// pipeline cannot consume (bi-directional routing tracks)
	ErrUnsupportedTopology = errors.New("unsupported routing topology")

	// ErrMissingCircuitModel reports an architecture element whose
	// required circuit model reference does not resolve
	ErrMissingCircuitModel = errors.New("missing circuit model")

	// ErrIllegalNodeSharing reports a routing resource node occupied
	// by two nets; routing legality is guaranteed upstream, so this
	// indicates upstream corruption
	ErrIllegalNodeSharing = errors.New("illegal routing node sharing")

	// ErrInvalidPhysicalBinding reports an operating pb element that
	// cannot be bound to a physical counterpart
	ErrInvalidPhysicalBinding = errors.New("invalid physical binding")

	// ErrInvalidModeBits reports a mode-selection bit string with
	// characters other than 0 and 1
	ErrInvalidModeBits = errors.New("invalid mode bits")

	// ErrUnplacedBlock reports a clustered block the placement
	// solution does not cover
	ErrUnplacedBlock = errors.New("unplaced block")

	// ErrInvalidDirectRule mirrors the tiledirect sentinel so callers
	// can match the whole link taxonomy in one package
	ErrInvalidDirectRule = tiledirect.ErrInvalidDirectRule
)
