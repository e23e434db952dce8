package security

import "testing"

func TestSanitize_StripsMarkup(t *testing.T) {
	s := NewFormSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Sunrise Engineering College", "Sunrise Engineering College"},
		{"script removed", `<script>alert(1)</script>Sunrise`, "Sunrise"},
		{"tags stripped, text kept", "<b>Principal</b>", "Principal"},
		{"event handler removed", `<img src=x onerror=alert(1)>R. Iyer`, "R. Iyer"},
		{"whitespace trimmed", "  Bengaluru  ", "Bengaluru"},
		{"ampersand survives", "Arts & Science", "Arts & Science"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	s := NewFormSanitizer()

	once := s.Sanitize(`<i>Lakeside</i> Polytechnic`)
	twice := s.Sanitize(once)
	if once != twice {
		t.Errorf("not idempotent: %q vs %q", once, twice)
	}
}
