package link

import (
	"github.com/TOM-once/OpenFPGA/pkg/annotation"
	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/gsb"
	"github.com/TOM-once/OpenFPGA/pkg/muxlib"
	"github.com/TOM-once/OpenFPGA/pkg/tiledirect"
)

// Context owns every product of the link phase for the lifetime of
// one run. Each pass constructs the structure it owns; once Link
// returns, the context is read-only. A failed Link discards the
// context entirely, so partially built products are never observed.
type Context struct {
	runID string

	deviceAnnotation    *annotation.DeviceAnnotation
	routingAnnotation   *annotation.RoutingAnnotation
	placementAnnotation *annotation.PlacementAnnotation
	pbGraphs            map[string]*arch.PbGraph
	deviceRRGSB         *gsb.DeviceRRGSB
	muxLibrary          *muxlib.Library
	tileDirect          *tiledirect.TileDirect
	simSetting          arch.SimulationSetting
}

// RunID identifies this pipeline run in logs and exports.
func (c *Context) RunID() string {
	return c.runID
}

// DeviceAnnotation returns the physical binding annotation.
func (c *Context) DeviceAnnotation() *annotation.DeviceAnnotation {
	return c.deviceAnnotation
}

// RoutingAnnotation returns the node-to-net occupancy annotation.
func (c *Context) RoutingAnnotation() *annotation.RoutingAnnotation {
	return c.routingAnnotation
}

// PlacementAnnotation returns the block-to-location annotation.
func (c *Context) PlacementAnnotation() *annotation.PlacementAnnotation {
	return c.placementAnnotation
}

// PbGraph returns the instantiated pb graph of a root pb-type.
func (c *Context) PbGraph(rootName string) *arch.PbGraph {
	return c.pbGraphs[rootName]
}

// DeviceRRGSB returns the per-tile switch block grouping.
func (c *Context) DeviceRRGSB() *gsb.DeviceRRGSB {
	return c.deviceRRGSB
}

// MuxLibrary returns the deduplicated multiplexer catalog.
func (c *Context) MuxLibrary() *muxlib.Library {
	return c.muxLibrary
}

// TileDirect returns the resolved tile-to-tile direct connections.
func (c *Context) TileDirect() *tiledirect.TileDirect {
	return c.tileDirect
}

// SimSetting returns the simulation setting after annotation.
func (c *Context) SimSetting() arch.SimulationSetting {
	return c.simSetting
}
