package sbv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-sbv/sbv"
)

func TestMemoryReportIsConsistent(t *testing.T) {
	n := 50000
	bits := randomBits(3, n)
	ix, err := sbv.Construct(int64(n), sbv.NewSliceBitSource(bits))
	require.NoError(t, err)

	report := ix.MemoryReport()
	require.NotEmpty(t, report.Components)

	var sum uint64
	for _, c := range report.Components {
		require.GreaterOrEqual(t, c.Entries, 0)
		sum += c.TotalBytes
	}
	require.Equal(t, sum, report.Total())

	// Packed bits must at least cover the logical ceil(N/8) bytes.
	var packed sbv.ComponentMemory
	for _, c := range report.Components {
		if c.Name == "packed-bits" {
			packed = c
		}
	}
	require.GreaterOrEqual(t, packed.TotalBytes, uint64((n+7)/8))
}

func TestMemoryReportEmptyIndex(t *testing.T) {
	ix, err := sbv.Construct(0, sbv.NewSliceBitSource(nil))
	require.NoError(t, err)

	// Computing the report must not panic on fully empty directories; the
	// popcount table is the sole exception, since s clamps to 1 even at
	// N=0 and the table always holds 2^s entries.
	report := ix.MemoryReport()
	for _, c := range report.Components {
		if c.Name == "popcount-table" {
			continue
		}
		require.Equal(t, 0, c.Entries, "component %s should be empty for N=0", c.Name)
	}
}
