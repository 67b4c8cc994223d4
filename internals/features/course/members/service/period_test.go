// file: internals/features/course/members/service/period_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCurrentPeriod_Ganjil(t *testing.T) {
	for _, m := range []time.Month{time.July, time.September, time.December} {
		year, sem := CurrentPeriod(time.Date(2026, m, 15, 0, 0, 0, 0, time.UTC))
		require.Equal(t, "2026/2027", year, m.String())
		require.Equal(t, SemesterGanjil, sem, m.String())
	}
}

func TestCurrentPeriod_Genap(t *testing.T) {
	for _, m := range []time.Month{time.January, time.March, time.June} {
		year, sem := CurrentPeriod(time.Date(2026, m, 15, 0, 0, 0, 0, time.UTC))
		require.Equal(t, "2025/2026", year, m.String())
		require.Equal(t, SemesterGenap, sem, m.String())
	}
}

func TestCurrentPeriod_Boundary(t *testing.T) {
	// 30 Jun masih Genap, 1 Jul sudah Ganjil
	_, sem := CurrentPeriod(time.Date(2026, time.June, 30, 23, 59, 0, 0, time.UTC))
	require.Equal(t, SemesterGenap, sem)
	_, sem = CurrentPeriod(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC))
	require.Equal(t, SemesterGanjil, sem)
}
