package param

import (
	"errors"
	"testing"
)

func TestIDOf_RoundTripsCatalog(t *testing.T) {
	for _, id := range All {
		got, err := IDOf(id.String())
		if err != nil {
			t.Fatalf("IDOf(%q): %v", id.String(), err)
		}
		if got != id {
			t.Errorf("IDOf(%q) = %d, want %d", id.String(), got, id)
		}
	}
}

func TestIDOf_UnknownName(t *testing.T) {
	_, err := IDOf("focus")
	if !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("IDOf(focus) error = %v, want ErrUnknownParameter", err)
	}
}

func TestIDValues_MatchHardwareEnum(t *testing.T) {
	// The numeric ids are a wire contract with the sensor layer.
	want := map[ID]int{
		Brightness:   0,
		Contrast:     1,
		Saturation:   2,
		Gain:         3,
		ExposureTime: 4,
		WhiteBalance: 5,
		Gamma:        6,
		Backlight:    7,
		AutoExposure: 8,
		AutoWhiteBal: 9,
	}
	for id, n := range want {
		if int(id) != n {
			t.Errorf("%s = %d, want %d", id, int(id), n)
		}
	}
}

func TestStaticDefault_TotalOverCatalog(t *testing.T) {
	for _, id := range All {
		if _, err := StaticDefault(id); err != nil {
			t.Errorf("StaticDefault(%s): %v", id, err)
		}
	}
	if _, err := StaticDefault(ID(99)); !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("StaticDefault(99) error = %v, want ErrUnknownParameter", err)
	}
}

func TestModeCodes_DistinctEncodings(t *testing.T) {
	// The two toggles use different hardware encodings.
	manual, auto, ok := AutoExposure.ModeCodes()
	if !ok || manual != 1 || auto != 3 {
		t.Errorf("AutoExposure codes = (%d, %d, %v), want (1, 3, true)", manual, auto, ok)
	}
	manual, auto, ok = AutoWhiteBal.ModeCodes()
	if !ok || manual != 0 || auto != 1 {
		t.Errorf("AutoWhiteBal codes = (%d, %d, %v), want (0, 1, true)", manual, auto, ok)
	}
	if _, _, ok := Brightness.ModeCodes(); ok {
		t.Error("Brightness should not have mode codes")
	}
}

func TestDependentValue(t *testing.T) {
	if dep, ok := AutoExposure.DependentValue(); !ok || dep != ExposureTime {
		t.Errorf("AutoExposure dependent = (%s, %v), want exposure_time", dep, ok)
	}
	if dep, ok := AutoWhiteBal.DependentValue(); !ok || dep != WhiteBalance {
		t.Errorf("AutoWhiteBal dependent = (%s, %v), want white_balance", dep, ok)
	}
	if _, ok := Gamma.DependentValue(); ok {
		t.Error("Gamma should have no dependent value")
	}
}

func TestRange_Supported(t *testing.T) {
	if (Range{Min: 5, Max: 5}).Supported() {
		t.Error("degenerate range (min == max) must report unsupported")
	}
	if !(Range{Min: -64, Max: 64}).Supported() {
		t.Error("proper range must report supported")
	}
}

func TestRange_Quantize(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		in   int
		want int
	}{
		{"clamp high", Range{Min: -64, Max: 64, Step: 1}, 100, 64},
		{"clamp low", Range{Min: -64, Max: 64, Step: 1}, -200, -64},
		{"passthrough", Range{Min: -64, Max: 64, Step: 1}, 10, 10},
		{"step rounding down", Range{Min: 2800, Max: 6500, Step: 10}, 4604, 4600},
		{"step rounding up", Range{Min: 2800, Max: 6500, Step: 10}, 4606, 4610},
		{"zero step treated as one", Range{Min: 3, Max: 2047}, 55, 55},
		{"round before clamp", Range{Min: 0, Max: 10, Step: 4}, 11, 10},
		{"negative step rounding", Range{Min: -100, Max: 100, Step: 5}, -13, -15},
	}
	for _, tt := range tests {
		if got := tt.r.Quantize(tt.in); got != tt.want {
			t.Errorf("%s: Quantize(%d) = %d, want %d", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestRange_DefaultInRange(t *testing.T) {
	if !(Range{Min: 0, Max: 100, Default: 50}).DefaultInRange() {
		t.Error("default 50 in [0,100] should be usable")
	}
	if (Range{Min: 0, Max: 100, Default: 200}).DefaultInRange() {
		t.Error("default 200 outside [0,100] should not be usable")
	}
}

func TestIsModeToggle(t *testing.T) {
	for _, id := range All {
		want := id == AutoExposure || id == AutoWhiteBal
		if id.IsModeToggle() != want {
			t.Errorf("%s IsModeToggle = %v, want %v", id, id.IsModeToggle(), want)
		}
	}
}
