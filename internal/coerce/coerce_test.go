package coerce

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // "2006-01-02", or "" for null
	}{
		{"iso date", "2024-03-05", "2024-03-05"},
		{"iso datetime", "2024-03-05 00:00:00", "2024-03-05"},
		{"day first slash", "05/03/2024", "2024-03-05"},
		{"day first single digits", "5/3/2024", "2024-03-05"},
		{"day first dash", "05-03-2024", "2024-03-05"},
		{"iso wins over day first", "2024-03-05", "2024-03-05"},
		{"excel serial", "45356", "2024-03-05"},
		{"surrounding whitespace", "  2024-03-05  ", "2024-03-05"},
		{"not a date", "not-a-date", ""},
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"out of range serial", "99999999", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.input)
			if tt.want == "" {
				if ok {
					t.Fatalf("Date(%q) = %v, want null", tt.input, got)
				}
				return
			}
			if !ok {
				t.Fatalf("Date(%q) = null, want %s", tt.input, tt.want)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("Date(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
			if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
				t.Errorf("Date(%q) kept a time component: %v", tt.input, got)
			}
		})
	}
}

func TestDate_DayFirstPrecedence(t *testing.T) {
	// 05/03/2024 must be March 5th (day first), never May 3rd.
	got, ok := Date("05/03/2024")
	if !ok {
		t.Fatal("Date(05/03/2024) = null")
	}
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Date(05/03/2024) = %v, want %v", got, want)
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
		ok    bool
	}{
		{"integer", "3", 3, true},
		{"integer with spaces", " 12 ", 12, true},
		{"float rendering of integer", "3.0", 3, true},
		{"zero", "0", 0, true},
		{"negative", "-2", -2, true},
		{"fractional", "3.5", 0, false},
		{"non numeric", "three", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Quantity(tt.input)
			if ok != tt.ok {
				t.Fatalf("Quantity(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Quantity(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain decimal", "19.90", "19.9", true},
		{"integer price", "20", "20", true},
		{"whitespace", " 7.25 ", "7.25", true},
		{"comma decimal is invalid", "19,90", "", false},
		{"currency symbol is invalid", "R$ 19.90", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Price(tt.input)
			if ok != tt.ok {
				t.Fatalf("Price(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got.String() != tt.want {
				t.Errorf("Price(%q) = %s, want %s", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestIdentifier(t *testing.T) {
	if got, ok := Identifier("  7  "); !ok || got != "7" {
		t.Errorf("Identifier(\"  7  \") = %q, %v; want \"7\", true", got, ok)
	}
	// Identifiers are opaque: "7.0" stays "7.0", no numeric normalization.
	if got, ok := Identifier("7.0"); !ok || got != "7.0" {
		t.Errorf("Identifier(\"7.0\") = %q, %v; want \"7.0\", true", got, ok)
	}
	if _, ok := Identifier("   "); ok {
		t.Error("Identifier(blank) ok = true, want false")
	}
}
