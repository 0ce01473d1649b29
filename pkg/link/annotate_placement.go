package link

import (
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/annotation"
	"github.com/TOM-once/OpenFPGA/pkg/logging"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// annotateMappedBlocks records the placed grid location and capacity
// slot of every clustered block, exactly as the upstream placer
// produced them. Pure recording; no placement decisions happen here.
func annotateMappedBlocks(device *vpr.Device, ann *annotation.PlacementAnnotation, log logging.Logger) error {
	for _, blockID := range device.Clusters.Blocks() {
		loc, ok := device.Placement.Location(blockID)
		if !ok {
			return fmt.Errorf("%w: clustered block %q", ErrUnplacedBlock,
				device.Clusters.Block(blockID).Name)
		}
		ann.SetLocation(blockID, loc)
		log.Debug("annotated placed block",
			logging.BlockName(device.Clusters.Block(blockID).Name),
			logging.Coord(loc.X, loc.Y),
			logging.Int("sub_tile", loc.SubTile))
	}
	return nil
}
