package annotation

import (
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// PlacementAnnotation records the grid location of every clustered
// block exactly as the upstream placer produced it.
type PlacementAnnotation struct {
	locs map[vpr.ClusterBlockID]vpr.BlockLocation
}

// NewPlacementAnnotation creates an empty placement annotation.
func NewPlacementAnnotation() *PlacementAnnotation {
	return &PlacementAnnotation{locs: make(map[vpr.ClusterBlockID]vpr.BlockLocation)}
}

// SetLocation records the placed location of a block.
func (a *PlacementAnnotation) SetLocation(block vpr.ClusterBlockID, loc vpr.BlockLocation) {
	a.locs[block] = loc
}

// Location returns the recorded location of a block.
func (a *PlacementAnnotation) Location(block vpr.ClusterBlockID) (vpr.BlockLocation, bool) {
	loc, ok := a.locs[block]
	return loc, ok
}

// NumBlocks returns the number of annotated blocks.
func (a *PlacementAnnotation) NumBlocks() int {
	return len(a.locs)
}
