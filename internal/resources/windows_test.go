package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWindowsMemory(t *testing.T) {
	s := &Snapshot{}
	// 16GB total, 8GB free, in KB.
	parseWindowsMemory(`{"TotalVisibleMemorySize":16777216,"FreePhysicalMemory":8388608}`, s)

	assert.InDelta(t, 16.0, s.MemoryTotalGB, 0.001)
	assert.InDelta(t, 8.0, s.MemoryUsedGB, 0.001)
	assert.InDelta(t, 50.0, s.MemoryUsagePct, 0.001)
}

func TestParseWindowsMemoryBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "TotalVisibleMemorySize: 123"},
		{"empty", ""},
		{"wrong types", `{"TotalVisibleMemorySize":"lots"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Snapshot{}
			parseWindowsMemory(tt.in, s)
			assert.InDelta(t, 0.0, s.MemoryTotalGB, 0.001)
			assert.InDelta(t, 0.0, s.MemoryUsagePct, 0.001)
		})
	}
}

func TestParseWindowsMemoryNegativeClamped(t *testing.T) {
	s := &Snapshot{}
	// Free larger than total should clamp used to zero, not go negative.
	parseWindowsMemory(`{"TotalVisibleMemorySize":1000,"FreePhysicalMemory":2000}`, s)

	assert.GreaterOrEqual(t, s.MemoryUsedGB, 0.0)
	assert.GreaterOrEqual(t, s.MemoryUsagePct, 0.0)
}

func TestParseWindowsDisk(t *testing.T) {
	s := &Snapshot{}
	// 100GB size, 25GB free, in bytes.
	parseWindowsDisk(`{"Size":107374182400,"FreeSpace":26843545600}`, s)

	assert.Equal(t, "100.0GB", s.DiskTotal)
	assert.Equal(t, "25.0GB", s.DiskFree)
	assert.Equal(t, "75.0GB", s.DiskUsed)
	assert.InDelta(t, 75.0, s.DiskUsagePct, 0.001)
}

func TestParseWindowsDiskZeroSize(t *testing.T) {
	s := &Snapshot{DiskUsed: "0GB", DiskTotal: "0GB", DiskFree: "0GB"}
	parseWindowsDisk(`{"Size":0,"FreeSpace":0}`, s)

	// No division by zero; percentage stays at its default.
	assert.InDelta(t, 0.0, s.DiskUsagePct, 0.001)
}
