package fpsmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tickDt = 1.0 / 60.0

func TestStepIsDeterministic(t *testing.T) {
	t.Parallel()

	tun := DefaultTuning()
	in := Input{
		Move: mgl64.Vec2{0.5, -1},
		Look: mgl64.Vec2{0.013, -0.007},
		Jump: true,
	}
	st := State{
		Position: mgl64.Vec3{3.25, 0, -7.5},
		Yaw:      1.1,
		Pitch:    -0.3,
		Velocity: mgl64.Vec3{0.1, 0, -0.2},
	}

	a := Step(tickDt, in, st, true, tun)
	b := Step(tickDt, in, st, true, tun)

	if a != b {
		t.Fatalf("same inputs produced different states: %+v vs %+v", a, b)
	}
}

func TestStepForwardMovement(t *testing.T) {
	t.Parallel()

	tun := DefaultTuning()
	in := Input{Move: mgl64.Vec2{0, -1}}

	var st State
	st = Step(tickDt, in, st, true, tun)

	// One tick at 8 u/s forward covers 8/60 ≈ 0.1333 units along -Z.
	if math.Abs(st.Position[2]+tun.MoveSpeed*tickDt) > 1e-9 {
		t.Fatalf("Z = %v, want %v", st.Position[2], -tun.MoveSpeed*tickDt)
	}

	for i := 0; i < 7; i++ {
		st = Step(tickDt, in, st, true, tun)
	}
	want := -8 * tun.MoveSpeed * tickDt
	if math.Abs(st.Position[2]-want) > 1e-9 {
		t.Fatalf("Z after 8 ticks = %v, want %v", st.Position[2], want)
	}
	if st.Position[0] != 0 || st.Position[1] != 0 {
		t.Fatalf("movement leaked onto other axes: %+v", st.Position)
	}
}

func TestStepMovementFollowsYaw(t *testing.T) {
	t.Parallel()

	tun := DefaultTuning()
	in := Input{Move: mgl64.Vec2{0, -1}}
	st := State{Yaw: math.Pi / 2}

	st = Step(tickDt, in, st, true, tun)

	// Facing yaw=pi/2, "forward" is -X.
	if st.Position[0] >= 0 {
		t.Fatalf("expected -X movement at yaw pi/2, got %+v", st.Position)
	}
	if math.Abs(st.Position[2]) > 1e-9 {
		t.Fatalf("expected no Z movement at yaw pi/2, got %v", st.Position[2])
	}
}

func TestStepPitchClamped(t *testing.T) {
	t.Parallel()

	tun := DefaultTuning()
	var st State

	for i := 0; i < 200; i++ {
		st = Step(tickDt, Input{Look: mgl64.Vec2{0, -0.1}}, st, true, tun)
	}
	if st.Pitch != PitchLimit {
		t.Fatalf("pitch = %v, want clamp at %v", st.Pitch, PitchLimit)
	}

	for i := 0; i < 400; i++ {
		st = Step(tickDt, Input{Look: mgl64.Vec2{0, 0.1}}, st, true, tun)
	}
	if st.Pitch != -PitchLimit {
		t.Fatalf("pitch = %v, want clamp at %v", st.Pitch, -PitchLimit)
	}
}

func TestStepZeroMoveStopsHorizontalVelocity(t *testing.T) {
	t.Parallel()

	tun := DefaultTuning()
	st := State{Velocity: mgl64.Vec3{5, 0, 5}}

	st = Step(tickDt, Input{}, st, true, tun)

	if st.Velocity[0] != 0 || st.Velocity[2] != 0 {
		t.Fatalf("horizontal velocity should stop without input, got %+v", st.Velocity)
	}
}

func TestStepJumpAndGravity(t *testing.T) {
	t.Parallel()

	tun := DefaultTuning()
	var st State

	st = Step(tickDt, Input{Jump: true}, st, true, tun)
	if st.Velocity[1] != tun.JumpSpeed {
		t.Fatalf("jump velocity = %v, want %v", st.Velocity[1], tun.JumpSpeed)
	}
	if st.Position[1] <= 0 {
		t.Fatalf("expected upward motion after jump, got y=%v", st.Position[1])
	}

	// Airborne now: gravity pulls velocity down each tick.
	prev := st.Velocity[1]
	st = Step(tickDt, Input{}, st, false, tun)
	if st.Velocity[1] >= prev {
		t.Fatalf("gravity did not reduce vertical velocity: %v -> %v", prev, st.Velocity[1])
	}

	// Jump while airborne must not re-trigger.
	withJump := Step(tickDt, Input{Jump: true}, st, false, tun)
	without := Step(tickDt, Input{}, st, false, tun)
	if withJump != without {
		t.Fatalf("airborne jump changed the outcome")
	}
}

func TestViewDir(t *testing.T) {
	t.Parallel()

	d := ViewDir(0, 0)
	if math.Abs(d[0]) > 1e-12 || math.Abs(d[1]) > 1e-12 || math.Abs(d[2]+1) > 1e-12 {
		t.Fatalf("ViewDir(0,0) = %v, want (0,0,-1)", d)
	}

	up := ViewDir(0, PitchLimit)
	if up[1] <= 0 {
		t.Fatalf("positive pitch should look up, got %v", up)
	}

	if l := ViewDir(0.7, -0.4).Len(); math.Abs(l-1) > 1e-12 {
		t.Fatalf("ViewDir is not unit length: %v", l)
	}
}

func TestWrapAndLerpAngle(t *testing.T) {
	t.Parallel()

	if got := WrapAngle(3 * math.Pi); math.Abs(got-math.Pi) > 1e-12 {
		t.Fatalf("WrapAngle(3pi) = %v, want pi", got)
	}

	// Shortest arc from just below pi to just above -pi crosses the seam.
	a, b := math.Pi-0.1, -math.Pi+0.1
	mid := LerpAngle(a, b, 0.5)
	if math.Abs(math.Abs(mid)-math.Pi) > 1e-9 {
		t.Fatalf("LerpAngle crossed the long way: %v", mid)
	}
}
