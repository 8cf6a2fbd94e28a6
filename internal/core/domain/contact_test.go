package domain

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"5511999999999":      "5511999999999",
		"+55 11 99999-9999":  "5511999999999",
		"+55 (11) 9999-9999": "551199999999",
		"5511999999999@c.us": "5511999999999",
		"":                   "",
		"abc":                "",
	}
	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}
