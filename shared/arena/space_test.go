package arena

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/automoto/ironsight-mp/shared/fpsmath"
)

func TestSpawnAtWrapsAround(t *testing.T) {
	t.Parallel()

	l := Builtin()
	if got, want := l.SpawnAt(0), l.Spawns[0]; got != want {
		t.Fatalf("SpawnAt(0) = %+v, want %+v", got, want)
	}
	if got, want := l.SpawnAt(len(l.Spawns)+1), l.Spawns[1]; got != want {
		t.Fatalf("SpawnAt wraparound = %+v, want %+v", got, want)
	}

	empty := &Layout{Width: 10, Depth: 20}
	if got := empty.SpawnAt(0); got.X != 5 || got.Z != 10 {
		t.Fatalf("empty layout should spawn at center, got %+v", got)
	}
}

func TestSlideFreeMovement(t *testing.T) {
	t.Parallel()

	s := NewSpace(Builtin())
	obj := s.AddPlayer(1, 16, 16)

	prev := fpsmath.State{Position: mgl64.Vec3{16, 0, 16}}
	next := fpsmath.State{
		Position: mgl64.Vec3{16.5, 0, 16.5},
		Velocity: mgl64.Vec3{3, 0, 3},
	}

	grounded := s.Slide(obj, prev, &next)

	if !grounded {
		t.Fatalf("player on the floor should be grounded")
	}
	if math.Abs(next.Position[0]-16.5) > 1e-9 || math.Abs(next.Position[2]-16.5) > 1e-9 {
		t.Fatalf("open-field movement was altered: %+v", next.Position)
	}
	if next.Velocity[0] != 3 || next.Velocity[2] != 3 {
		t.Fatalf("open-field velocity was altered: %+v", next.Velocity)
	}
}

func TestSlideStopsAtWall(t *testing.T) {
	t.Parallel()

	s := NewSpace(Builtin())
	// Near the left border wall, which spans x in [0, 1).
	obj := s.AddPlayer(1, 2, 16)

	prev := fpsmath.State{Position: mgl64.Vec3{2, 0, 16}}
	next := fpsmath.State{
		Position: mgl64.Vec3{0.5, 0, 16},
		Velocity: mgl64.Vec3{-8, 0, 0},
	}

	s.Slide(obj, prev, &next)

	// The footprint edge can reach x=1, so the center stops at 1+radius.
	if next.Position[0] < 1+PlayerRadius-1e-6 {
		t.Fatalf("player pushed into the wall: x=%v", next.Position[0])
	}
	if next.Velocity[0] != 0 {
		t.Fatalf("velocity into the wall should be zeroed, got %v", next.Velocity[0])
	}
}

func TestSlideAirborneUntilFloor(t *testing.T) {
	t.Parallel()

	s := NewSpace(Builtin())
	obj := s.AddPlayer(1, 16, 16)

	prev := fpsmath.State{Position: mgl64.Vec3{16, 1.5, 16}}
	next := fpsmath.State{
		Position: mgl64.Vec3{16, 1.2, 16},
		Velocity: mgl64.Vec3{0, -3, 0},
	}
	if s.Slide(obj, prev, &next) {
		t.Fatalf("player above the floor reported grounded")
	}

	prev = next
	next.Position[1] = -0.1
	if !s.Slide(obj, prev, &next) {
		t.Fatalf("player at the floor not grounded")
	}
	if next.Position[1] != 0 || next.Velocity[1] != 0 {
		t.Fatalf("floor contact should clamp y and vertical velocity: %+v", next)
	}
}

func TestRaycastHitsWall(t *testing.T) {
	t.Parallel()

	s := NewSpace(Builtin())
	origin := mgl64.Vec3{16, 1.6, 16}

	// Looking along -Z from the center: both cover blocks are off the x=16
	// line, so the first solid is the border wall at z in [0,1).
	hit, ok := s.Raycast(origin, 0, 0, 100, nil)
	if !ok {
		t.Fatalf("expected a wall hit looking across the arena")
	}
	if hit.PlayerID != 0 {
		t.Fatalf("wall hit attributed to player %d", hit.PlayerID)
	}
	if math.Abs(hit.Point[2]-1) > 1e-6 {
		t.Fatalf("hit.Point Z = %v, want the wall face at 1", hit.Point[2])
	}
	if math.Abs(hit.Dist-15) > 1e-6 {
		t.Fatalf("hit.Dist = %v, want 15", hit.Dist)
	}
}

func TestRaycastHitsPlayerBeforeWall(t *testing.T) {
	t.Parallel()

	s := NewSpace(Builtin())
	shooter := s.AddPlayer(1, 16, 16)
	s.AddPlayer(2, 16, 8)

	origin := mgl64.Vec3{16, 1.6, 16}
	hit, ok := s.Raycast(origin, 0, 0, 100, shooter)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if hit.PlayerID != 2 {
		t.Fatalf("hit player %d, want 2", hit.PlayerID)
	}
	if hit.Dist >= 15 {
		t.Fatalf("player hit should be nearer than the wall, dist=%v", hit.Dist)
	}
}

func TestRaycastExcludesShooterAndRespectsRange(t *testing.T) {
	t.Parallel()

	s := NewSpace(Builtin())
	shooter := s.AddPlayer(1, 16, 16)

	// Range too short to reach anything.
	if _, ok := s.Raycast(mgl64.Vec3{16, 1.6, 16}, 0, 0, 2, shooter); ok {
		t.Fatalf("hit reported beyond max range")
	}

	// A ray starting inside the shooter's own footprint must not hit it.
	hit, ok := s.Raycast(mgl64.Vec3{16, 1.6, 16}, 0, 0, 100, shooter)
	if !ok {
		t.Fatalf("expected the border wall hit")
	}
	if hit.PlayerID != 0 {
		t.Fatalf("ray hit the excluded shooter (player %d)", hit.PlayerID)
	}
}

func TestRaycastPitchExtendsDistance(t *testing.T) {
	t.Parallel()

	s := NewSpace(Builtin())
	origin := mgl64.Vec3{16, 1.6, 16}

	level, ok := s.Raycast(origin, 0, 0, 100, nil)
	if !ok {
		t.Fatalf("level ray missed")
	}
	pitched, ok := s.Raycast(origin, 0, 0.5, 100, nil)
	if !ok {
		t.Fatalf("pitched ray missed")
	}
	want := level.Dist / math.Cos(0.5)
	if math.Abs(pitched.Dist-want) > 1e-6 {
		t.Fatalf("pitched dist = %v, want %v", pitched.Dist, want)
	}
}
