package arch

// DirectRule declares a point-to-point wire between pins of two
// tiles, bypassing the routing fabric. Offsets are applied to the
// source tile's coordinates to locate the destination.
type DirectRule struct {
	Name     string
	FromTile string
	FromPort string
	ToTile   string
	ToPort   string
	XOffset  int
	YOffset  int
	// Required rules must resolve to at least one concrete tile pair;
	// optional rules may resolve to none on small grids
	Required bool
}
