package confidence

import "testing"

func TestCompute_FullDataIsHigh(t *testing.T) {
	got := Compute(100, 90, 1, 1)
	if got.Score != 100 {
		t.Errorf("score = %d, want 100", got.Score)
	}
	if got.Level != LevelHigh {
		t.Errorf("level = %q, want high", got.Level)
	}
	if got.Factors.DataCompleteness != 100 {
		t.Errorf("data completeness = %d, want 100", got.Factors.DataCompleteness)
	}
}

func TestCompute_Levels(t *testing.T) {
	tests := []struct {
		name                string
		txCount, days       int
		consistency, streng float64
		wantLevel           Level
	}{
		{"empty data is low", 0, 0, 0, 0, LevelLow},
		{"moderate data is medium", 25, 45, 0.5, 0.5, LevelMedium},
		{"rich data is high", 80, 90, 0.9, 0.9, LevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.txCount, tt.days, tt.consistency, tt.streng)
			if got.Level != tt.wantLevel {
				t.Errorf("level = %q (score %d), want %q", got.Level, got.Score, tt.wantLevel)
			}
		})
	}
}

// Increasing transaction count or days of data must never decrease the data
// completeness factor.
func TestCompute_Monotonicity(t *testing.T) {
	prev := -1
	for count := 0; count <= 120; count += 10 {
		got := Compute(count, 30, 0.5, 0.5)
		if got.Factors.DataCompleteness < prev {
			t.Fatalf("data completeness decreased at count=%d: %d < %d",
				count, got.Factors.DataCompleteness, prev)
		}
		prev = got.Factors.DataCompleteness
	}

	prev = -1
	for days := 0; days <= 180; days += 15 {
		got := Compute(20, days, 0.5, 0.5)
		if got.Factors.DataCompleteness < prev {
			t.Fatalf("data completeness decreased at days=%d: %d < %d",
				days, got.Factors.DataCompleteness, prev)
		}
		prev = got.Factors.DataCompleteness
	}
}

func TestCompute_ClampsInputs(t *testing.T) {
	got := Compute(10, 10, 5, -3)
	if got.Factors.HistoricalConsistency != 100 {
		t.Errorf("consistency should clamp to 100, got %d", got.Factors.HistoricalConsistency)
	}
	if got.Factors.PatternStrength != 0 {
		t.Errorf("pattern strength should clamp to 0, got %d", got.Factors.PatternStrength)
	}
}

func TestCompute_Stable(t *testing.T) {
	first := Compute(42, 60, 0.7, 0.3)
	for i := 0; i < 20; i++ {
		if got := Compute(42, 60, 0.7, 0.3); got != first {
			t.Fatalf("score changed between identical calls: %+v vs %+v", got, first)
		}
	}
}
