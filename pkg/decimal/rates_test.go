package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestGrowthFactor(t *testing.T) {
	cases := []struct {
		rate  string
		years int
		want  string
	}{
		{"0.10", 0, "1"},
		{"0.10", -3, "1"},
		{"0.10", 1, "1.1"},
		{"0.10", 2, "1.21"},
		{"0.03", 3, "1.092727"},
		{"0", 40, "1"},
	}
	for _, c := range cases {
		got := GrowthFactor(stddec.RequireFromString(c.rate), c.years)
		if !got.Equal(stddec.RequireFromString(c.want)) {
			t.Fatalf("GrowthFactor(%s, %d) = %s, want %s", c.rate, c.years, got, c.want)
		}
	}
}

func TestCompound(t *testing.T) {
	got := Compound(stddec.NewFromInt(10000), stddec.NewFromFloat(0.10), 3)
	if !got.Equal(stddec.NewFromInt(13310)) {
		t.Fatalf("Compound mismatch: got %s", got)
	}
}

func TestSafeDiv(t *testing.T) {
	if got := SafeDiv(stddec.NewFromInt(5), stddec.Zero); !got.IsZero() {
		t.Fatalf("division by zero should yield zero, got %s", got)
	}
	if got := SafeDiv(stddec.NewFromInt(1), stddec.NewFromInt(4)); !got.Equal(stddec.NewFromFloat(0.25)) {
		t.Fatalf("SafeDiv(1,4) = %s", got)
	}
}

func TestClampAndRange(t *testing.T) {
	if !ClampZero(stddec.NewFromInt(-3)).IsZero() {
		t.Fatalf("negative should clamp to zero")
	}
	if !ClampZero(stddec.NewFromInt(3)).Equal(stddec.NewFromInt(3)) {
		t.Fatalf("positive should pass through")
	}
	if !InRange(stddec.NewFromFloat(0.5), stddec.Zero, One) {
		t.Fatalf("0.5 should be in [0,1]")
	}
	if InRange(stddec.NewFromFloat(1.5), stddec.Zero, One) {
		t.Fatalf("1.5 should not be in [0,1]")
	}
	if !Percent(stddec.NewFromFloat(0.04)).Equal(stddec.NewFromInt(4)) {
		t.Fatalf("Percent(0.04) should be 4")
	}
	if !Sum(stddec.NewFromInt(1), stddec.NewFromInt(2), stddec.NewFromInt(3)).Equal(stddec.NewFromInt(6)) {
		t.Fatalf("Sum mismatch")
	}
}
