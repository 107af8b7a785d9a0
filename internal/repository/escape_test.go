package repository

import "testing"

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"love", "love"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
		{"Кино", "Кино"},
	}

	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
