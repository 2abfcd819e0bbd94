// Package arena describes the playable space: axis-aligned wall blocks and
// spawn points on the XZ plane. Layouts are loaded from Tiled maps or built
// programmatically; both client prediction and server authority construct
// their collision space from the same layout so movement stays
// deterministic across the two.
package arena

// Wall is an axis-aligned solid block occupying [X, X+W) x [Z, Z+D) on the
// ground plane. Walls are treated as full height.
type Wall struct {
	X, Z float64
	W, D float64
}

// Spawn is a player spawn point.
type Spawn struct {
	X, Z float64
	Idx  int
}

// Layout is a complete arena description in world units (one Tiled tile maps
// to one world unit).
type Layout struct {
	Name   string
	Width  float64
	Depth  float64
	Walls  []Wall
	Spawns []Spawn
}

// SpawnAt returns the spawn for a join index, wrapping around when more
// players join than spawns exist. Falls back to the arena center when the
// layout carries no spawns at all.
func (l *Layout) SpawnAt(i int) Spawn {
	if len(l.Spawns) == 0 {
		return Spawn{X: l.Width / 2, Z: l.Depth / 2}
	}
	return l.Spawns[i%len(l.Spawns)]
}
