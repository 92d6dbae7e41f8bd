package utils

import "testing"

func TestClampLimit(t *testing.T) {
	tests := map[string]struct {
		in            string
		def, max, out int
	}{
		"blank uses default":        {"", 50, 200, 50},
		"within range":              {"10", 50, 200, 10},
		"surrounding spaces":        {" 25 ", 50, 200, 25},
		"above max":                 {"500", 50, 200, 200},
		"zero":                      {"0", 50, 200, 50},
		"negative":                  {"-3", 50, 200, 50},
		"not a number":              {"ten", 50, 200, 50},
		"overflow":                  {"99999999999999999999999", 50, 200, 50},
		"non-positive default":      {"", 0, 200, 1},
		"default above max":         {"", 300, 200, 200},
		"no upper bound":            {"1000", 50, 0, 1000},
		"leading zeros still parse": {"007", 50, 200, 7},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ClampLimit(tc.in, tc.def, tc.max); got != tc.out {
				t.Fatalf("ClampLimit(%q, %d, %d) = %d, want %d", tc.in, tc.def, tc.max, got, tc.out)
			}
		})
	}
}
