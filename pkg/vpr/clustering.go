package vpr

// ClusterBlockID identifies a clustered block (one placed tile occupant).
type ClusterBlockID int

// AtomSlot records where one atom ended up inside its cluster: the
// operating pb-graph node hosting it, and the rotation the packer
// applied to its input pins.
type AtomSlot struct {
	Atom AtomBlockID
	// OperatingPb is the hierarchical path of the operating pb-graph
	// node the atom occupies, e.g. "clb[0].fle[2].lut4[0]"
	OperatingPb string
	// PinRotation maps each logical input pin of the atom to the
	// operating pb-graph input pin index it was packed onto; -1 for
	// unconnected inputs. Nil means the identity rotation.
	PinRotation []int
	// PinInverted flags logical input pins the packer routed through
	// an inverting path. Nil means no inversions.
	PinInverted []bool
}

// ClusterBlock is one clustered block of the packed design.
type ClusterBlock struct {
	ID   ClusterBlockID
	Name string
	// PbType names the root pb-type the cluster instantiates
	PbType string
	Slots  []AtomSlot
}

// Clustering is the packing solution: which atoms live in which
// clustered block, and at which operating pb.
type Clustering struct {
	blocks []ClusterBlock
}

// NewClustering creates an empty clustering solution.
func NewClustering() *Clustering {
	return &Clustering{}
}

// AddBlock appends a clustered block and returns its ID.
func (c *Clustering) AddBlock(block ClusterBlock) ClusterBlockID {
	id := ClusterBlockID(len(c.blocks))
	block.ID = id
	c.blocks = append(c.blocks, block)
	return id
}

// NumBlocks returns the number of clustered blocks.
func (c *Clustering) NumBlocks() int {
	return len(c.blocks)
}

// Block returns the clustered block with the given ID.
func (c *Clustering) Block(id ClusterBlockID) ClusterBlock {
	return c.blocks[id]
}

// Blocks returns all clustered block IDs in ascending order.
func (c *Clustering) Blocks() []ClusterBlockID {
	ids := make([]ClusterBlockID, len(c.blocks))
	for i := range c.blocks {
		ids[i] = ClusterBlockID(i)
	}
	return ids
}
