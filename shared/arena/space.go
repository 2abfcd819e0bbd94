package arena

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"

	"github.com/automoto/ironsight-mp/shared/fpsmath"
)

const (
	TagWall   = "wall"
	TagPlayer = "player"

	// PlayerRadius is the half-extent of the square player footprint on the
	// XZ plane.
	PlayerRadius = 0.4
)

// Space is the collision world for one arena: walls and player footprints
// projected onto the XZ plane, with the floor as a flat plane at y=0.
// resolv's X axis maps to world X and its Y axis to world Z.
type Space struct {
	space   *resolv.Space
	walls   []*resolv.Object
	players map[*resolv.Object]uint
}

// NewSpace builds a collision space from a layout. Client prediction and
// server authority must build from the same layout or replayed inputs
// resolve differently on each side.
func NewSpace(l *Layout) *Space {
	s := &Space{
		space:   resolv.NewSpace(int(l.Width)+1, int(l.Depth)+1, 1, 1),
		players: make(map[*resolv.Object]uint),
	}

	for _, w := range l.Walls {
		obj := resolv.NewObject(w.X, w.Z, w.W, w.D, TagWall)
		obj.SetShape(resolv.NewRectangle(0, 0, w.W, w.D))
		s.space.Add(obj)
		obj.Update()
		s.walls = append(s.walls, obj)
	}
	return s
}

// AddPlayer inserts a player footprint at the given XZ position and returns
// its collision object. id tags the object for hit-scan attribution.
func (s *Space) AddPlayer(id uint, x, z float64) *resolv.Object {
	size := PlayerRadius * 2
	obj := resolv.NewObject(x-PlayerRadius, z-PlayerRadius, size, size, TagPlayer)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	s.space.Add(obj)
	obj.Update()
	s.players[obj] = id
	return obj
}

// RemovePlayer removes a player footprint from the space.
func (s *Space) RemovePlayer(obj *resolv.Object) {
	if obj == nil {
		return
	}
	delete(s.players, obj)
	s.space.Remove(obj)
}

// Teleport moves a player footprint without collision checks (spawn,
// respawn, reconciliation snap).
func (s *Space) Teleport(obj *resolv.Object, x, z float64) {
	obj.X = x - PlayerRadius
	obj.Y = z - PlayerRadius
	obj.Update()
}

// Slide applies collision response to a freshly stepped state. prev is the
// state before the step, next the pure integration result; next's position
// and velocity are corrected in place against the walls and the floor
// plane. Returns whether the player has ground contact afterward.
func (s *Space) Slide(obj *resolv.Object, prev fpsmath.State, next *fpsmath.State) bool {
	dx := next.Position[0] - prev.Position[0]
	dz := next.Position[2] - prev.Position[2]

	if dx != 0 {
		if check := obj.Check(dx, 0, TagWall); check != nil {
			if solids := check.ObjectsByTags(TagWall); len(solids) > 0 {
				contact := check.ContactWithObject(solids[0])
				dx = contact.X()
				next.Velocity[0] = 0
			}
		}
		obj.X += dx
		obj.Update()
	}

	if dz != 0 {
		if check := obj.Check(0, dz, TagWall); check != nil {
			if solids := check.ObjectsByTags(TagWall); len(solids) > 0 {
				contact := check.ContactWithObject(solids[0])
				dz = contact.Y()
				next.Velocity[2] = 0
			}
		}
		obj.Y += dz
		obj.Update()
	}

	next.Position[0] = obj.X + PlayerRadius
	next.Position[2] = obj.Y + PlayerRadius

	grounded := false
	if next.Position[1] <= 0 {
		next.Position[1] = 0
		if next.Velocity[1] < 0 {
			next.Velocity[1] = 0
		}
		grounded = true
	}
	return grounded
}

// RayHit describes the nearest hit-scan intersection.
type RayHit struct {
	Point    mgl64.Vec3
	Dist     float64
	PlayerID uint // 0 when a wall was hit
}

// Raycast traces a view ray from origin along yaw/pitch up to maxDist and
// returns the nearest wall or player intersection. exclude skips the
// shooter's own footprint. A miss returns false; callers treat that as
// "shot hit nothing".
func (s *Space) Raycast(origin mgl64.Vec3, yaw, pitch, maxDist float64, exclude *resolv.Object) (RayHit, bool) {
	dir := fpsmath.ViewDir(yaw, pitch)
	flat := math.Hypot(dir[0], dir[2])
	if flat < 1e-9 {
		// Straight up or down: nothing to hit in a walls-only world.
		return RayHit{}, false
	}

	ox, oz := origin[0], origin[2]
	line := resolv.NewLine(ox, oz, ox+dir[0]*maxDist, oz+dir[2]*maxDist)

	bestFlat := math.MaxFloat64
	var bestID uint
	found := false

	test := func(obj *resolv.Object, id uint) {
		if obj == exclude || obj.Shape == nil {
			return
		}
		contacts := line.Intersection(0, 0, obj.Shape)
		if contacts == nil {
			return
		}
		for _, p := range contacts.Points {
			d := math.Hypot(p.X()-ox, p.Y()-oz)
			if d < bestFlat {
				bestFlat = d
				bestID = id
				found = true
			}
		}
	}

	for _, w := range s.walls {
		test(w, 0)
	}
	for obj, id := range s.players {
		test(obj, id)
	}

	if !found {
		return RayHit{}, false
	}

	t := bestFlat / flat
	return RayHit{
		Point:    origin.Add(dir.Mul(t)),
		Dist:     t,
		PlayerID: bestID,
	}, true
}
