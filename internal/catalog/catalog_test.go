package catalog

import "testing"

func TestResolveLevel(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   int
	}{
		{"zero points", 0, 1},
		{"just below level 2", 999, 1},
		{"exactly one level", 1000, 2},
		{"mid level 1", 170, 1},
		{"several levels", 4500, 5},
		{"high roller", 49000, 50},
		{"negative clamps to level 1", -50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLevel(tt.points); got != tt.want {
				t.Errorf("ResolveLevel(%d) = %d, want %d", tt.points, got, tt.want)
			}
		})
	}
}

func TestResolveTitle(t *testing.T) {
	cat := Default()

	tests := []struct {
		level int
		want  string
	}{
		{1, "Rookie Lifter"},
		{4, "Rookie Lifter"},
		{5, "Gym Rat Apprentice"},
		{9, "Gym Rat Apprentice"},
		{10, "Certified Gains Enjoyer"},
		{25, "Swoledier"},
		{49, "Fitness CEO"},
		{50, "Gigachad/Gigastacy"},
		{99, "Gigachad/Gigastacy"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := cat.ResolveTitle(tt.level); got != tt.want {
				t.Errorf("ResolveTitle(%d) = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestDefaultCatalogIsValid(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}

	if len(cat.Achievements) == 0 {
		t.Fatal("default catalog has no achievement rules")
	}
	if len(cat.Titles) == 0 {
		t.Fatal("default catalog has no title tiers")
	}
	if len(cat.DailyChallenges) == 0 || len(cat.WeeklyChallenges) == 0 {
		t.Fatal("default catalog is missing challenge templates")
	}

	for _, rule := range cat.Achievements {
		if rule.Metric == "" {
			t.Errorf("rule %q has no metric", rule.Name)
		}
		if rule.Threshold <= 0 {
			t.Errorf("rule %q has non-positive threshold", rule.Name)
		}
	}

	// Titles must be sorted ascending for ResolveTitle's scan to work.
	for i := 1; i < len(cat.Titles); i++ {
		if cat.Titles[i-1].MinLevel >= cat.Titles[i].MinLevel {
			t.Errorf("titles not strictly ascending at index %d", i)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/catalog.json"); err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}
