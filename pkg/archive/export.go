package archive

import (
	"github.com/TOM-once/OpenFPGA/pkg/annotation"
	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/link"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// BuildDocument flattens a completed run into its exportable form.
// The clustering annotation may be nil when only the link phase ran.
func BuildDocument(device *vpr.Device, a *arch.Architecture,
	linkCtx *link.Context, clusterAnn *annotation.ClusteringAnnotation) *Document {

	doc := &Document{
		RunID:         linkCtx.RunID(),
		NumGSBs:       linkCtx.DeviceRRGSB().NumGSBs(),
		NumUniqueGSBs: len(linkCtx.DeviceRRGSB().UniqueGSBs()),
		Placement:     make(map[string]Location),
		NetNodes:      make(map[string][]int),

		OperatingClockFrequencyHz: linkCtx.SimSetting().OperatingClockFrequencyHz,
		NumClockCycles:            linkCtx.SimSetting().NumClockCycles,
	}

	for _, entry := range linkCtx.MuxLibrary().Entries() {
		model := a.CircuitLib.Model(entry.Signature.Model)
		doc.MuxEntries = append(doc.MuxEntries, MuxEntry{
			ID:         int(entry.ID),
			Model:      model.Name,
			Size:       entry.Signature.Size,
			Topology:   entry.Signature.Topology.String(),
			NumLevels:  entry.Graph.NumLevels,
			NumMemBits: entry.Graph.NumMemBits,
		})
	}

	for _, d := range linkCtx.TileDirect().Directs() {
		doc.Directs = append(doc.Directs, DirectEntry{
			Rule:     d.Rule,
			FromX:    d.From.X,
			FromY:    d.From.Y,
			FromPort: d.From.Port,
			ToX:      d.To.X,
			ToY:      d.To.Y,
			ToPort:   d.To.Port,
		})
	}

	for _, blockID := range device.Clusters.Blocks() {
		if loc, ok := linkCtx.PlacementAnnotation().Location(blockID); ok {
			doc.Placement[device.Clusters.Block(blockID).Name] = Location{
				X: loc.X, Y: loc.Y, SubTile: loc.SubTile,
			}
		}
	}

	routing := linkCtx.RoutingAnnotation()
	for i := 0; i < routing.NumNodes(); i++ {
		node := vpr.RRNodeID(i)
		if net := routing.Net(node); net != vpr.InvalidAtomNetID {
			name := device.Atom.Net(net).Name
			doc.NetNodes[name] = append(doc.NetNodes[name], i)
		}
	}

	if clusterAnn != nil {
		doc.TruthTables = make(map[string][]string)
		for _, blockID := range device.Clusters.Blocks() {
			for _, slot := range device.Clusters.Block(blockID).Slots {
				if tt := clusterAnn.PhysicalTruthTable(slot.Atom); tt != nil {
					doc.TruthTables[device.Atom.Block(slot.Atom).Name] = tt.Lines
				}
			}
		}
	}

	return doc
}
