package object

import (
	"math"
	"testing"
)

// --- Activation ---

func TestAbility_SingleUse(t *testing.T) {
	for _, kind := range AbilityKinds {
		t.Run(kind.String(), func(t *testing.T) {
			a := NewAbility(kind)
			if !a.Activate(3) {
				t.Fatal("expected first activation to succeed")
			}
			active, remaining, target := a.IsActive(), a.TimeRemaining(), a.Target()

			if a.Activate(5) {
				t.Fatal("expected second activation to fail")
			}
			if a.IsActive() != active || a.TimeRemaining() != remaining || a.Target() != target {
				t.Fatal("failed activation must not change state")
			}
			if a.IsAvailable() {
				t.Fatal("expected ability to be consumed")
			}

			// Still unusable after expiry.
			a.Update(kind.Duration() + 1)
			if a.Activate(NoPlanet) {
				t.Fatal("expected consumed ability to stay consumed")
			}
		})
	}
}

func TestAbility_ActivateSetsDuration(t *testing.T) {
	cases := []struct {
		kind AbilityKind
		want float64
	}{
		{Recall, 0},
		{ProductionSurge, 10},
		{Shield, 15},
	}
	for _, tc := range cases {
		a := NewAbility(tc.kind)
		a.Activate(NoPlanet)
		if a.TimeRemaining() != tc.want {
			t.Errorf("%s: expected %.0fs remaining, got %.2f", tc.kind, tc.want, a.TimeRemaining())
		}
		if !a.IsActive() {
			t.Errorf("%s: expected active after activation", tc.kind)
		}
	}
}

// --- Expiry ---

func TestAbility_ExpiresAfterDuration(t *testing.T) {
	a := NewAbility(Shield)
	a.Activate(7)

	a.Update(14.9)
	if !a.IsActive() || a.Target() != 7 {
		t.Fatal("expected shield to still be active before 15s")
	}

	a.Update(0.2)
	if a.IsActive() {
		t.Fatal("expected shield to expire after 15s")
	}
	if a.TimeRemaining() != 0 {
		t.Fatalf("expected 0 time remaining, got %f", a.TimeRemaining())
	}
	if a.Target() != NoPlanet {
		t.Fatalf("expected target cleared, got %d", a.Target())
	}
}

func TestAbility_SmallStepsSumCorrectly(t *testing.T) {
	a := NewAbility(ProductionSurge)
	a.Activate(NoPlanet)

	for i := 0; i < 300; i++ {
		a.Update(1.0 / 60.0)
	}
	if math.Abs(a.TimeRemaining()-5.0) > 1e-9 {
		t.Fatalf("expected 5s remaining, got %f", a.TimeRemaining())
	}
}

func TestAbility_InstantIgnoresUpdate(t *testing.T) {
	a := NewAbility(Recall)
	a.Activate(NoPlanet)
	a.Update(100)
	if !a.IsActive() || a.TimeRemaining() != 0 {
		t.Fatal("expected instant ability state to be untouched by Update")
	}
}

func TestAbility_UpdateInactiveNoop(t *testing.T) {
	a := NewAbility(Shield)
	a.Update(5)
	if !a.IsAvailable() || a.IsActive() || a.TimeRemaining() != 0 {
		t.Fatal("expected unused ability to be untouched by Update")
	}
}

// --- Set ---

func TestAbilitySet_Helpers(t *testing.T) {
	s := NewAbilitySet()
	if s.ProductionMultiplier() != 1 {
		t.Fatalf("expected multiplier 1, got %f", s.ProductionMultiplier())
	}
	s.Get(ProductionSurge).Activate(NoPlanet)
	if s.ProductionMultiplier() != 2 {
		t.Fatalf("expected multiplier 2, got %f", s.ProductionMultiplier())
	}

	s.Get(Shield).Activate(4)
	if !s.ShieldsPlanet(4) || s.ShieldsPlanet(5) {
		t.Fatal("expected shield to cover planet 4 only")
	}

	s.Update(16)
	if s.ShieldsPlanet(4) || s.ProductionMultiplier() != 1 {
		t.Fatal("expected both timed abilities to expire")
	}
}
