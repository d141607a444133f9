package domain

import "testing"

func boolPtr(b bool) *bool { return &b }

func TestClassifyHealthByGreenCount(t *testing.T) {
	yes := boolPtr(true)
	no := boolPtr(false)

	cases := []struct {
		name   string
		fields StatusFields
		green  int
		want   Health
	}{
		{"all true", StatusFields{IsOnScope: yes, IsOnTime: yes, IsOnBudget: yes}, 3, HealthGreen},
		{"two true", StatusFields{IsOnScope: yes, IsOnTime: yes, IsOnBudget: no}, 2, HealthYellow},
		{"two true one nil", StatusFields{IsOnScope: yes, IsOnTime: yes}, 2, HealthYellow},
		{"one true", StatusFields{IsOnScope: yes, IsOnTime: no, IsOnBudget: no}, 1, HealthRed},
		{"none true", StatusFields{IsOnScope: no, IsOnTime: no, IsOnBudget: no}, 0, HealthRed},
		{"all nil", StatusFields{}, 0, HealthRed},
	}

	for _, tc := range cases {
		if got := GreenCount(tc.fields); got != tc.green {
			t.Errorf("%s: GreenCount() = %d, want %d", tc.name, got, tc.green)
		}
		if got := ClassifyHealth(tc.fields); got != tc.want {
			t.Errorf("%s: ClassifyHealth() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFalseFlagsDoNotCountAsGreen(t *testing.T) {
	// Only exact true counts; non-false is not enough.
	fields := StatusFields{IsOnScope: boolPtr(false), IsOnTime: nil, IsOnBudget: boolPtr(true)}
	if got := GreenCount(fields); got != 1 {
		t.Fatalf("GreenCount() = %d, want 1", got)
	}
}

func TestHealthLabel(t *testing.T) {
	if got := HealthLabel(HealthGreen); got != "Healthy" {
		t.Fatalf("HealthLabel(green) = %q", got)
	}
	if got := HealthLabel(HealthYellow); got != "At Risk" {
		t.Fatalf("HealthLabel(yellow) = %q", got)
	}
	if got := HealthLabel(HealthRed); got != "Critical" {
		t.Fatalf("HealthLabel(red) = %q", got)
	}
}
