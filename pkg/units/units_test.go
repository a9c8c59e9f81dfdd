package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentageValue(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   float64
		wantOK bool
	}{
		{"integer percent", "42%", 42, true},
		{"decimal percent", "3.5%", 3.5, true},
		{"no percent sign", "17", 17, true},
		{"zero is a value", "0%", 0, true},
		{"surrounding space", " 8% ", 8, true},
		{"placeholder", "-", 0, false},
		{"ssd marker", "SSD", 0, false},
		{"negative", "-4%", 0, false},
		{"empty", "", 0, false},
		{"only sign", "%", 0, false},
		{"trailing dot", "5.%", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PercentageValue(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSizeToBytes(t *testing.T) {
	tests := []struct {
		n    float64
		unit string
		want int64
	}{
		{1, "B", 1},
		{1, "kB", 1000},
		{2.5, "MB", 2_500_000},
		{4.0, "TB", 4_000_000_000_000},
		{1, "KiB", 1024},
		{3, "MiB", 3 * 1024 * 1024},
		{1.5, "GiB", 1610612736},
		{1, "K", 1024},
		{2, "G", 2 * 1024 * 1024 * 1024},
		{12, "parsecs", 12},
		{0.4, "B", 0},
		{0.6, "B", 1},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			assert.Equal(t, tt.want, SizeToBytes(tt.n, tt.unit))
		})
	}
}

func TestSizeToBytesFamilies(t *testing.T) {
	for _, n := range []float64{0, 1, 1.25, 7.77, 1023.5, 123456.789} {
		assert.Equal(t, int64(math.Round(n*1024*1024)), SizeToBytes(n, "MiB"), "MiB %v", n)
		assert.Equal(t, int64(math.Round(n*1_000_000)), SizeToBytes(n, "MB"), "MB %v", n)
	}
}

func TestParseSize(t *testing.T) {
	n, unit, ok := ParseSize("12.5 GiB")
	assert.True(t, ok)
	assert.Equal(t, 12.5, n)
	assert.Equal(t, "GiB", unit)

	n, unit, ok = ParseSize("300MB")
	assert.True(t, ok)
	assert.Equal(t, 300.0, n)
	assert.Equal(t, "MB", unit)

	n, unit, ok = ParseSize("47357 M")
	assert.True(t, ok)
	assert.Equal(t, 47357.0, n)
	assert.Equal(t, "M", unit)

	_, _, ok = ParseSize("lots")
	assert.False(t, ok)
}

func TestDurationToSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"83:45", 5025},
		{"1:23:45", 5025 + 3600},
		{"0:59", 59},
		{"00:00:01", 1},
		{"1:30.6", 91},
		{"", 0},
		{"45", 0},
		{"a:b", 0},
		{"1:2:3:4", 0},
		{"-1:30", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DurationToSeconds(tt.in))
		})
	}
}
