package vpr

// BlockLocation is the placed position of a clustered block.
type BlockLocation struct {
	X int
	Y int
	// SubTile is the capacity slot inside the tile, 0-based
	SubTile int
}

// Placement maps every clustered block to its grid location.
type Placement struct {
	locs map[ClusterBlockID]BlockLocation
}

// NewPlacement creates an empty placement solution.
func NewPlacement() *Placement {
	return &Placement{locs: make(map[ClusterBlockID]BlockLocation)}
}

// Place records the location of a clustered block.
func (p *Placement) Place(block ClusterBlockID, loc BlockLocation) {
	p.locs[block] = loc
}

// Location returns the placed location of a block. The second return
// is false for unplaced blocks, which indicates an upstream defect.
func (p *Placement) Location(block ClusterBlockID) (BlockLocation, bool) {
	loc, ok := p.locs[block]
	return loc, ok
}
