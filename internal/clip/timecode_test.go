package clip

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTimecode(t *testing.T) {
	cases := []struct {
		raw     string
		want    Timecode
		wantErr bool
	}{
		{"", "", false},
		{"00:10", "00:10", false},
		{"01:02:03", "01:02:03", false},
		{"1:02:03", "1:02:03", false},
		{"123:00:00", "123:00:00", false},
		{"00:00.5", "00:00.5", false},
		{"00:00:00.000001", "00:00:00.000001", false},
		{"99:99", "99:99", false},
		{"1:2:3", "", true},
		{"0:10", "", true},
		{"10", "", true},
		{"00:10.", "", true},
		{":00:10", "", true},
		{"00:10 ", "", true},
		{" 00:10", "", true},
		{"00:10\n", "", true},
		{"-00:10", "", true},
		{"٠٠:١٠", "", true},
		{"00:00:00:00", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ValidateTimecode(tc.raw)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateTimecode(%q) error = %v, wantErr %v", tc.raw, err, tc.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidTimecode) {
					t.Errorf("error %v does not wrap ErrInvalidTimecode", err)
				}
				if !strings.Contains(err.Error(), tc.raw) {
					t.Errorf("error %q does not contain raw text %q", err.Error(), tc.raw)
				}
				return
			}
			if got != tc.want {
				t.Errorf("ValidateTimecode(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestTimecodeSeconds(t *testing.T) {
	cases := []struct {
		tc   Timecode
		want float64
	}{
		{"", 0},
		{"00:10", 10},
		{"01:30", 90},
		{"00:75", 75},
		{"01:02:03", 3723},
		{"100:00:00", 360000},
		{"00:01.5", 1.5},
	}
	for _, tc := range cases {
		if got := tc.tc.Seconds(); got != tc.want {
			t.Errorf("Timecode(%q).Seconds() = %v, want %v", tc.tc, got, tc.want)
		}
	}
}

func TestTimecodeIsSet(t *testing.T) {
	if Timecode("").IsSet() {
		t.Error("empty timecode should be unset")
	}
	if !Timecode("00:01").IsSet() {
		t.Error("non-empty timecode should be set")
	}
}
