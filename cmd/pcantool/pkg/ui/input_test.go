package ui

import "testing"

func TestTrimLine(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"0x7E8\n":      "0x7E8",
		"0x7E8,100 \n": "0x7E8,100",
		"\n\n":         "",
	}
	for in, want := range tests {
		if got := trimLine(in); got != want {
			t.Errorf("trimLine(%q) = %q, want %q", in, got, want)
		}
	}
}
