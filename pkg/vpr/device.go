package vpr

// TileType describes what occupies one grid location.
type TileType struct {
	// Name matches a root pb-type in the architecture, or the
	// reserved names "EMPTY" and "IO"
	Name string
	// Capacity is the number of identical blocks the tile can host
	Capacity int
	// Height in grid units; wide/tall tiles anchor at their lowest corner
	Height int
}

// IsEmpty reports whether the tile hosts no logic.
func (t TileType) IsEmpty() bool {
	return t.Name == "" || t.Name == "EMPTY"
}

// DeviceGrid is the FPGA tile grid, indexed [x][y]. The outermost
// ring is the IO ring; switch blocks sit at channel crossings
// (x, y) for 0 <= x < Width-1, 0 <= y < Height-1.
type DeviceGrid struct {
	Width  int
	Height int
	tiles  [][]TileType
}

// NewDeviceGrid creates a grid of the given size with empty tiles.
func NewDeviceGrid(width, height int) *DeviceGrid {
	tiles := make([][]TileType, width)
	for x := range tiles {
		tiles[x] = make([]TileType, height)
	}
	return &DeviceGrid{Width: width, Height: height, tiles: tiles}
}

// SetTile places a tile type at (x, y).
func (g *DeviceGrid) SetTile(x, y int, t TileType) {
	g.tiles[x][y] = t
}

// Tile returns the tile type at (x, y).
func (g *DeviceGrid) Tile(x, y int) TileType {
	return g.tiles[x][y]
}

// Contains reports whether (x, y) lies inside the grid.
func (g *DeviceGrid) Contains(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Device bundles the read-only outputs of the upstream place-and-route
// engine for one design. The linking pipeline never mutates it.
type Device struct {
	Grid      *DeviceGrid
	RRGraph   *RRGraph
	Atom      *AtomNetlist
	Clusters  *Clustering
	Placement *Placement
	Routing   *Routing
	Timing    TimingAnalyzer
}
