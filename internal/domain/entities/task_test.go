package entities

import "testing"

func TestNormalizePriority(t *testing.T) {
	cases := []struct {
		raw  string
		want TaskPriority
	}{
		{"low", TaskPriorityLow},
		{"MEDIUM", TaskPriorityMedium},
		{" High ", TaskPriorityHigh},
		{"urgent", TaskPriorityMedium},
		{"", TaskPriorityMedium},
		{"p1", TaskPriorityMedium},
	}
	for _, tc := range cases {
		if got := NormalizePriority(tc.raw); got != tc.want {
			t.Errorf("NormalizePriority(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}
