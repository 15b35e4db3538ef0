package utils

import "testing"

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{10000, "100.00"},
		{29999, "299.99"},
		{-150, "-1.50"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.cents); got != tc.want {
			t.Fatalf("FormatMoney(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"100", 10000},
		{"100.5", 10050},
		{"100.50", 10050},
		{"0.05", 5},
		{" 299.99 ", 29999},
		{"-1.50", -150},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if err != nil {
			t.Fatalf("ParseMoney(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMoney(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "abc", "1.234", "10.x"} {
		if _, err := ParseMoney(bad); err == nil {
			t.Fatalf("ParseMoney(%q) should fail", bad)
		}
	}
}
