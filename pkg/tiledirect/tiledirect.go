// Package tiledirect derives the concrete tile-to-tile direct
// connections a device realizes from the architecture's declared
// direct rules. Directs bypass the routing fabric entirely: each one
// is a dedicated wire between two specific tile pins.
package tiledirect

import (
	"errors"
	"fmt"

	"github.com/TOM-once/OpenFPGA/pkg/arch"
	"github.com/TOM-once/OpenFPGA/pkg/vpr"
)

// ErrInvalidDirectRule reports a mandatory rule resolving to zero
// concrete connections.
var ErrInvalidDirectRule = errors.New("invalid direct rule")

// TilePin addresses one pin of one tile.
type TilePin struct {
	X    int
	Y    int
	Port string
}

// Direct is one concrete point-to-point connection.
type Direct struct {
	Rule string
	From TilePin
	To   TilePin
}

// TileDirect is the resolved set of direct connections, in rule and
// grid scan order.
type TileDirect struct {
	directs []Direct
}

// Build enumerates every concrete tile pair satisfying each declared
// rule across the grid. A Required rule that matches no tile pair
// fails with ErrInvalidDirectRule; optional rules may resolve empty.
func Build(grid *vpr.DeviceGrid, rules []arch.DirectRule) (*TileDirect, error) {
	td := &TileDirect{}
	for _, rule := range rules {
		matched := 0
		for x := 0; x < grid.Width; x++ {
			for y := 0; y < grid.Height; y++ {
				if grid.Tile(x, y).Name != rule.FromTile {
					continue
				}
				tx, ty := x+rule.XOffset, y+rule.YOffset
				if !grid.Contains(tx, ty) {
					continue
				}
				if grid.Tile(tx, ty).Name != rule.ToTile {
					continue
				}
				td.directs = append(td.directs, Direct{
					Rule: rule.Name,
					From: TilePin{X: x, Y: y, Port: rule.FromPort},
					To:   TilePin{X: tx, Y: ty, Port: rule.ToPort},
				})
				matched++
			}
		}
		if matched == 0 && rule.Required {
			return nil, fmt.Errorf("%w: mandatory rule %q matches no tile pair",
				ErrInvalidDirectRule, rule.Name)
		}
	}
	return td, nil
}

// Directs returns every resolved connection.
func (t *TileDirect) Directs() []Direct {
	return t.directs
}

// NumDirects returns the number of resolved connections.
func (t *TileDirect) NumDirects() int {
	return len(t.directs)
}
