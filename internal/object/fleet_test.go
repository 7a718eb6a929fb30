package object

import (
	"math"
	"testing"
)

func TestFleet_VelocityFromDirection(t *testing.T) {
	from := NewPlanet(0, 0, 0, 30, Player, 50)
	to := NewPlanet(1, 300, 400, 30, Neutral, 10)

	f := NewFleet("Alpha", Player, from, to, 20)
	vx, vy := f.Velocity()
	if math.Abs(vx-120) > 1e-9 || math.Abs(vy-160) > 1e-9 {
		t.Fatalf("expected velocity (120,160), got (%f,%f)", vx, vy)
	}
	if f.Origin() != 0 || f.Target() != 1 {
		t.Fatalf("expected origin 0 and target 1, got %d and %d", f.Origin(), f.Target())
	}
}

func TestFleet_ArrivesByDistance(t *testing.T) {
	from := NewPlanet(0, 0, 0, 30, Player, 50)
	to := NewPlanet(1, 1000, 0, 30, Neutral, 10)
	f := NewFleet("Alpha", Player, from, to, 5)

	ticks := 0
	for !f.Advance(1.0 / 60.0) {
		ticks++
		if ticks > 1000 {
			t.Fatal("fleet never arrived")
		}
	}
	// 1000 units at 200 u/s takes 5 seconds, minus the 5 unit arrival radius.
	if ticks < 295 || ticks > 300 {
		t.Fatalf("expected arrival after ~298 ticks, got %d", ticks)
	}
	if f.RemainingDistance() >= 5 {
		t.Fatalf("expected remaining distance < 5, got %f", f.RemainingDistance())
	}
}

func TestFleet_LargeStepDoesNotOvershoot(t *testing.T) {
	from := NewPlanet(0, 0, 0, 30, Player, 50)
	to := NewPlanet(1, 100, 0, 30, Neutral, 10)
	f := NewFleet("Alpha", Player, from, to, 5)

	if !f.Advance(10) {
		t.Fatal("expected arrival on a step longer than the trip")
	}
	x, y := f.Position()
	if x != 100 || y != 0 {
		t.Fatalf("expected fleet at destination, got (%f,%f)", x, y)
	}

	// Arrived fleets stay put.
	f.Advance(1)
	if x2, _ := f.Position(); x2 != 100 {
		t.Fatalf("expected arrived fleet not to move, got x=%f", x2)
	}
}

func TestFleet_SamePlanetArrivesImmediately(t *testing.T) {
	p := NewPlanet(0, 50, 50, 30, Player, 50)
	f := NewFleet("Alpha", Player, p, p, 5)
	vx, vy := f.Velocity()
	if vx != 0 || vy != 0 {
		t.Fatalf("expected zero velocity, got (%f,%f)", vx, vy)
	}
	if !f.Advance(0.016) {
		t.Fatal("expected immediate arrival")
	}
}

func TestFleet_ZeroSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for empty fleet")
		}
	}()
	p := NewPlanet(0, 0, 0, 30, Player, 50)
	NewFleet("Alpha", Player, p, p, 0)
}
