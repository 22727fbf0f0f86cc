package board

import (
	"math"
	"testing"
)

func TestRadiusBaseline(t *testing.T) {
	p := Player{HeightIn: 70, WeightLb: 170}
	if got := p.Radius(); got != 14 {
		t.Fatalf("expected base radius 14 for a small player, got %f", got)
	}
}

func TestRadiusExample(t *testing.T) {
	// 6'9", 250lb: bonus = (81-72)*0.3 + (250-180)*0.05 = 6.2
	p := Player{HeightIn: 81, WeightLb: 250}
	if got := p.Radius(); math.Abs(got-20.2) > 1e-9 {
		t.Fatalf("expected radius 20.2, got %f", got)
	}
}

func TestRadiusCapped(t *testing.T) {
	p := Player{HeightIn: 100, WeightLb: 400}
	if got := p.Radius(); got != 22 {
		t.Fatalf("expected capped radius 22, got %f", got)
	}
}

func TestRadiusMonotonic(t *testing.T) {
	prev := 0.0
	for h := 60.0; h <= 90; h += 2 {
		r := Player{HeightIn: h, WeightLb: 200}.Radius()
		if r < prev {
			t.Fatalf("radius decreased from %f to %f at height %f", prev, r, h)
		}
		if r < 14 || r > 22 {
			t.Fatalf("radius %f out of [14, 22] at height %f", r, h)
		}
		prev = r
	}
	prev = 0
	for w := 150.0; w <= 350; w += 10 {
		r := Player{HeightIn: 75, WeightLb: w}.Radius()
		if r < prev {
			t.Fatalf("radius decreased from %f to %f at weight %f", prev, r, w)
		}
		prev = r
	}
}
