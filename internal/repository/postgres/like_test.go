package postgres

import "testing"

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{name: "plain term untouched", term: "report", want: "report"},
		{name: "percent escaped", term: "100%", want: `100\%`},
		{name: "underscore escaped", term: "my_file", want: `my\_file`},
		{name: "backslash escaped first", term: `a\b`, want: `a\\b`},
		{name: "all metacharacters", term: `\%_`, want: `\\\%\_`},
		{name: "empty term", term: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeLike(tt.term); got != tt.want {
				t.Errorf("EscapeLike(%q) = %q, want %q", tt.term, got, tt.want)
			}
		})
	}
}
