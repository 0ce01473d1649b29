package gsb

import (
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// Coord addresses one switch block position on the grid.
type Coord struct {
	X int
	Y int
}

// DeviceRRGSB is the device-wide collection of general switch
// blocks, keyed by coordinate, with the list of structurally unique
// patterns discovered while building. Immutable after Build.
type DeviceRRGSB struct {
	gsbs        map[Coord]*RRGSB
	coords      []Coord
	unique      []*RRGSB
	uniqueIndex map[Coord]int
}

// Build groups the routing resource graph into one GSB per channel
// crossing of the grid. It is a pure function of its inputs: the
// same grid and graph always produce the same grouping, and unique
// patterns are numbered in first-seen scan order (x-major).
func Build(grid *vpr.DeviceGrid, g *vpr.RRGraph) *DeviceRRGSB {
	d := &DeviceRRGSB{
		gsbs:        make(map[Coord]*RRGSB),
		uniqueIndex: make(map[Coord]int),
	}
	seen := make(map[string]int)
	for x := 0; x < grid.Width-1; x++ {
		for y := 0; y < grid.Height-1; y++ {
			c := Coord{X: x, Y: y}
			sb := buildOne(g, x, y)
			d.gsbs[c] = sb
			d.coords = append(d.coords, c)
			sig := sb.Signature()
			idx, ok := seen[sig]
			if !ok {
				idx = len(d.unique)
				seen[sig] = idx
				d.unique = append(d.unique, sb)
			}
			d.uniqueIndex[c] = idx
		}
	}
	return d
}

// buildOne collects the four sides of the switch block at (x, y).
// Side conventions follow the channel layout: the top side faces the
// vertical channel above the crossing, the right side the horizontal
// channel to its right, and so on. A track flows out of the GSB when
// its direction carries it away from the crossing.
func buildOne(g *vpr.RRGraph, x, y int) *RRGSB {
	sb := &RRGSB{X: x, Y: y}

	type sideSpec struct {
		side     vpr.Side
		chanType vpr.RRNodeType
		chanX    int
		chanY    int
		// outDir is the direction that leaves the GSB on this side
		outDir vpr.Direction
	}
	specs := [4]sideSpec{
		{vpr.SideTop, vpr.RRChanY, x, y + 1, vpr.DirInc},
		{vpr.SideRight, vpr.RRChanX, x + 1, y, vpr.DirInc},
		{vpr.SideBottom, vpr.RRChanY, x, y, vpr.DirDec},
		{vpr.SideLeft, vpr.RRChanX, x, y, vpr.DirDec},
	}

	for _, spec := range specs {
		for _, id := range g.NodesInRange(spec.chanType, spec.chanX, spec.chanY) {
			node := g.Node(id)
			flow := FlowIn
			if node.Direction == spec.outDir {
				flow = FlowOut
			}
			sb.sides[spec.side] = append(sb.sides[spec.side], SideNode{
				Node:      id,
				Type:      node.Type,
				Flow:      flow,
				Ptc:       node.Ptc,
				SegmentID: node.SegmentID,
				FanIn:     g.FanInCount(id),
			})
		}
		// Block pins facing this side's channel: output pins feed the
		// switch block, input pins are reached through its connection
		// block muxes.
		for _, id := range g.NodesInRange(vpr.RROPin, spec.chanX, spec.chanY) {
			node := g.Node(id)
			if node.Side != spec.side {
				continue
			}
			sb.sides[spec.side] = append(sb.sides[spec.side], SideNode{
				Node: id, Type: node.Type, Flow: FlowIn,
				Ptc: node.Ptc, SegmentID: -1, FanIn: g.FanInCount(id),
			})
		}
		for _, id := range g.NodesInRange(vpr.RRIPin, spec.chanX, spec.chanY) {
			node := g.Node(id)
			if node.Side != spec.side {
				continue
			}
			sb.sides[spec.side] = append(sb.sides[spec.side], SideNode{
				Node: id, Type: node.Type, Flow: FlowOut,
				Ptc: node.Ptc, SegmentID: -1, FanIn: g.FanInCount(id),
			})
		}
	}
	return sb
}

// NumGSBs returns the number of switch blocks on the device.
func (d *DeviceRRGSB) NumGSBs() int {
	return len(d.gsbs)
}

// GSB returns the switch block at a coordinate.
func (d *DeviceRRGSB) GSB(c Coord) (*RRGSB, error) {
	sb, ok := d.gsbs[c]
	if !ok {
		return nil, fmt.Errorf("no GSB at (%d, %d)", c.X, c.Y)
	}
	return sb, nil
}

// Coords returns every switch block coordinate in build (x-major) order.
func (d *DeviceRRGSB) Coords() []Coord {
	return d.coords
}

// UniqueGSBs returns one representative per structurally unique
// pattern, in first-seen order.
func (d *DeviceRRGSB) UniqueGSBs() []*RRGSB {
	return d.unique
}

// UniqueIndex returns which unique pattern the GSB at a coordinate
// instantiates.
func (d *DeviceRRGSB) UniqueIndex(c Coord) int {
	idx, ok := d.uniqueIndex[c]
	if !ok {
		return -1
	}
	return idx
}
