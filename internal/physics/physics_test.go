package physics

import (
	"sort"
	"testing"
)

func TestCirclesSeparated(t *testing.T) {
	cases := []struct {
		name string
		x2   float64
		want bool
	}{
		{"exactly at gap", 300, true}, // 50 + 70 + 180
		{"one unit short", 299, false},
		{"far apart", 1000, true},
		{"overlapping", 10, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CirclesSeparated(0, 0, 50, tc.x2, 0, 70, 180); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPointInRect(t *testing.T) {
	if !PointInRect(0, 0, 0, 0, 350, 320) {
		t.Fatal("expected corner to be inside")
	}
	if PointInRect(350, 10, 0, 0, 350, 320) {
		t.Fatal("expected right edge to be outside")
	}
	if PointInRect(10, 320, 0, 0, 350, 320) {
		t.Fatal("expected bottom edge to be outside")
	}
}

func TestMirrorX(t *testing.T) {
	if got := MirrorX(120, 1000); got != 880 {
		t.Fatalf("expected 880, got %f", got)
	}
}

func TestSpatialGrid_QueryAround(t *testing.T) {
	g := NewSpatialGrid(1000, 1000, 100)
	g.Insert(50, 50, 0)
	g.Insert(150, 150, 1)
	g.Insert(500, 500, 2)
	g.Insert(-20, 980, 3) // clamped into the bottom-left cell

	var found []int
	g.QueryAround(60, 60, func(i int) bool {
		found = append(found, i)
		return false
	})
	sort.Ints(found)
	if len(found) != 2 || found[0] != 0 || found[1] != 1 {
		t.Fatalf("expected [0 1], got %v", found)
	}

	// No wrap-around: the far corner is not a neighbor of the origin.
	found = found[:0]
	g.QueryAround(990, 990, func(i int) bool {
		found = append(found, i)
		return false
	})
	if len(found) != 0 {
		t.Fatalf("expected no neighbors at the far corner, got %v", found)
	}

	found = found[:0]
	g.QueryAround(10, 990, func(i int) bool {
		found = append(found, i)
		return false
	})
	if len(found) != 1 || found[0] != 3 {
		t.Fatalf("expected [3], got %v", found)
	}

	g.Clear()
	g.QueryAround(60, 60, func(i int) bool {
		t.Fatalf("expected empty grid after Clear, got item %d", i)
		return true
	})
}

func TestSpatialGrid_EarlyStop(t *testing.T) {
	g := NewSpatialGrid(100, 100, 50)
	for i := 0; i < 5; i++ {
		g.Insert(10, 10, i)
	}
	calls := 0
	g.QueryAround(10, 10, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}
