package object

import (
	"math"
	"testing"

	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/rng"
)

var testStats = PlayerStats{
	MoveSpeed:    360,
	DashDuration: 0.16,
	DashCooldown: 0.9,
	DashesMax:    1,
}

var testBounds = physics.Rect{Max: physics.V(1280, 720)}

func TestTryDashFromRestHeadsRight(t *testing.T) {
	p := NewPlayer(physics.V(640, 360))

	if !p.TryDash(testStats) {
		t.Fatal("expected dash to succeed with a full charge")
	}
	if p.Vel != physics.V(DashSpeed, 0) {
		t.Fatalf("dash velocity = %v, want (%v, 0)", p.Vel, DashSpeed)
	}
	if math.Abs(p.Vel.Len()-DashSpeed) > 1e-9 {
		t.Fatalf("dash speed = %f, want %f", p.Vel.Len(), DashSpeed)
	}
	if p.Dashes != 0 {
		t.Fatalf("dashes = %d, want 0", p.Dashes)
	}
	if p.DashCooldown != testStats.DashCooldown {
		t.Fatalf("cooldown = %f, want %f", p.DashCooldown, testStats.DashCooldown)
	}
	if p.Invuln != testStats.DashDuration || p.DashTime != testStats.DashDuration {
		t.Fatalf("invuln/dash time = %f/%f, want %f", p.Invuln, p.DashTime, testStats.DashDuration)
	}
}

func TestTryDashKeepsMovementHeading(t *testing.T) {
	p := NewPlayer(physics.V(640, 360))
	p.Update(1.0/60, physics.V(0, -1), testStats, testBounds)

	if !p.TryDash(testStats) {
		t.Fatal("expected dash to succeed")
	}
	if p.Vel != physics.V(0, -DashSpeed) {
		t.Fatalf("dash velocity = %v, want upward", p.Vel)
	}
}

func TestTryDashRefused(t *testing.T) {
	t.Run("no charges", func(t *testing.T) {
		p := NewPlayer(physics.V(640, 360))
		p.Dashes = 0
		if p.TryDash(testStats) {
			t.Fatal("dash must fail with zero charges")
		}
	})
	t.Run("already dashing", func(t *testing.T) {
		p := NewPlayer(physics.V(640, 360))
		stats := testStats
		stats.DashesMax = 2
		p.Dashes = 2
		if !p.TryDash(stats) {
			t.Fatal("first dash should succeed")
		}
		if p.TryDash(stats) {
			t.Fatal("dash must fail while a dash is active")
		}
		if p.Dashes != 1 {
			t.Fatalf("dashes = %d, want 1", p.Dashes)
		}
	})
}

func TestCooldownRefillsCharges(t *testing.T) {
	p := NewPlayer(physics.V(640, 360))
	p.TryDash(testStats)

	for i := 0; i < 120; i++ {
		p.Update(0.01, physics.Zero, testStats, testBounds)
	}
	if p.Dashes != testStats.DashesMax {
		t.Fatalf("dashes = %d, want %d after cooldown", p.Dashes, testStats.DashesMax)
	}
	if p.DashCooldown != 0 {
		t.Fatalf("cooldown = %f, want clamped to 0", p.DashCooldown)
	}
}

func TestDashChargesStayInRange(t *testing.T) {
	r := rng.New(11)
	p := NewPlayer(physics.V(640, 360))
	stats := testStats
	stats.DashesMax = 2

	for i := 0; i < 5000; i++ {
		intent := physics.FromAngle(rng.Angle(r))
		if r.Float64() < 0.3 {
			dashes := p.Dashes
			dashing := p.IsDashing()
			ok := p.TryDash(stats)
			if ok && (dashes == 0 || dashing) {
				t.Fatalf("tick %d: dash succeeded with %d charges, dashing=%v", i, dashes, dashing)
			}
		}
		p.Update(1.0/60, intent, stats, testBounds)
		if p.Dashes < 0 || p.Dashes > stats.DashesMax {
			t.Fatalf("tick %d: dashes = %d out of [0,%d]", i, p.Dashes, stats.DashesMax)
		}
	}
}

func TestPlayerClampedToBounds(t *testing.T) {
	p := NewPlayer(physics.V(20, 20))
	intent := physics.V(-1, -1).Normalize()

	for i := 0; i < 30; i++ {
		p.Update(1.0/60, intent, testStats, testBounds)
	}
	if p.Pos != physics.V(PlayerRadius, PlayerRadius) {
		t.Fatalf("pos = %v, want clamped to (%v,%v)", p.Pos, PlayerRadius, PlayerRadius)
	}

	p = NewPlayer(physics.V(1270, 710))
	for i := 0; i < 30; i++ {
		p.Update(1.0/60, physics.V(1, 1).Normalize(), testStats, testBounds)
	}
	want := physics.V(1280-PlayerRadius, 720-PlayerRadius)
	if p.Pos != want {
		t.Fatalf("pos = %v, want %v", p.Pos, want)
	}
}

func TestDashIgnoresInput(t *testing.T) {
	p := NewPlayer(physics.V(640, 360))
	p.TryDash(testStats)
	p.Update(0.01, physics.V(0, 1), testStats, testBounds)

	if p.Vel != physics.V(DashSpeed, 0) {
		t.Fatalf("velocity changed during dash: %v", p.Vel)
	}
}

func TestTrailCappedAndFades(t *testing.T) {
	p := NewPlayer(physics.V(640, 360))
	for i := 0; i < 100; i++ {
		p.Update(0.001, physics.V(1, 0), testStats, testBounds)
		if len(p.Trail) > TrailMax {
			t.Fatalf("trail length %d exceeds %d", len(p.Trail), TrailMax)
		}
	}
	last := p.Trail[len(p.Trail)-1]
	if last.Pos != p.Pos {
		t.Fatalf("newest trail point = %v, want current position %v", last.Pos, p.Pos)
	}

	for i := 0; i < 40; i++ {
		p.Update(0.01, physics.Zero, testStats, testBounds)
	}
	for _, tp := range p.Trail {
		if tp.Fade <= 0 {
			t.Fatalf("faded trail point kept: %+v", tp)
		}
	}
}

func TestGrantAndClampDashes(t *testing.T) {
	p := NewPlayer(physics.V(0, 0))
	p.GrantDash(2)
	p.GrantDash(2)
	if p.Dashes != 2 {
		t.Fatalf("dashes = %d, want 2", p.Dashes)
	}
	p.ClampDashes(1)
	if p.Dashes != 1 {
		t.Fatalf("dashes = %d, want 1", p.Dashes)
	}
}
