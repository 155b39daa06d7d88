package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
		{"typical clip 700 MiB", 734003200, "700.0 MiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00.000"},
		{"negative clamps", -3, "00:00.000"},
		{"fraction", 125.5, "02:05.500"},
		{"one hour", 3600, "1:00:00.000"},
		{"long", 36000 + 61.25, "10:01:01.250"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSeconds(tt.seconds); got != tt.want {
				t.Errorf("FormatSeconds(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"#", "File", "Start", "End"},
		[][]string{{"1", "a.mp4", "00:01", "00:02"}, {"10", "b.mp4"}},
		[]Alignment{AlignRight},
	)
	tests := []struct {
		name string
		line string
	}{
		{"header keeps case", "│ #  │ File  │ Start │ End   │"},
		{"right aligned first column", "│  1 │ a.mp4 │ 00:01 │ 00:02 │"},
		{"short row padded", "│ 10 │ b.mp4 │       │       │"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(out, tt.line) {
				t.Errorf("table missing line %q:\n%s", tt.line, out)
			}
		})
	}
	if strings.Contains(out, "FILE") {
		t.Errorf("header upper-cased:\n%s", out)
	}
	if RenderTable(nil, nil, nil) != "" {
		t.Error("empty headers should render nothing")
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	if !strings.Contains(buf.String(), "|_|") {
		t.Errorf("banner output unexpected: %q", buf.String())
	}
}
