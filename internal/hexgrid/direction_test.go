package hexgrid

import "testing"

func TestDirectionOpposite(t *testing.T) {
	pairs := [][2]Direction{
		{NE, SW}, {E, W}, {SE, NW},
	}
	for _, p := range pairs {
		if p[0].Opposite() != p[1] || p[1].Opposite() != p[0] {
			t.Errorf("%v and %v are not opposites", p[0], p[1])
		}
	}
}

func TestDirectionCycle(t *testing.T) {
	d := NE
	for i := 0; i < 6; i++ {
		d = d.Next()
	}
	if d != NE {
		t.Errorf("six Next steps from NE = %v, want NE", d)
	}
	for i := 0; i < 6; i++ {
		d = d.Previous()
	}
	if d != NE {
		t.Errorf("six Previous steps from NE = %v, want NE", d)
	}
}
