package brightness

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		in   int
		want Level
	}{
		{math.MinInt, 0},
		{-50, 0},
		{-1, 0},
		{0, 0},
		{35, 35},
		{100, 100},
		{101, 100},
		{200, 100},
		{math.MaxInt, 100},
	}

	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClampIdempotent(t *testing.T) {
	for v := -300; v <= 300; v++ {
		once := Clamp(v)
		if once < Min || once > Max {
			t.Fatalf("Clamp(%d) = %d, out of range", v, once)
		}
		if twice := once.Clamp(); twice != once {
			t.Fatalf("Clamp(Clamp(%d)) = %d, want %d", v, twice, once)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		current Level
		arg     string
		want    Level
		wantErr bool
	}{
		{"absolute", 50, "40", 40, false},
		{"percent suffix", 50, "40%", 40, false},
		{"above range", 50, "200", 100, false},
		{"relative below range", 50, "-200", 0, false},
		{"relative up", 50, "+10", 60, false},
		{"relative down", 50, "-5", 45, false},
		{"relative clamps", 95, "+10", 100, false},
		{"whitespace", 50, " 20 ", 20, false},
		{"empty", 50, "", 50, true},
		{"garbage", 50, "bright", 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.current, tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%d, %q) error = %v, wantErr %v", tt.current, tt.arg, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%d, %q) = %d, want %d", tt.current, tt.arg, got, tt.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	if got := Tooltip(35); got != "Brightness Control - 35%" {
		t.Errorf("Tooltip(35) = %q", got)
	}
	if got := Label(35); got != "Brightness: 35%" {
		t.Errorf("Label(35) = %q", got)
	}
	if got := Level(35).String(); got != "35%" {
		t.Errorf("String() = %q", got)
	}
}
