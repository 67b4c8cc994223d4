// file: internals/features/course/activities/service/completion_service_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestRate_EmptyPopulation(t *testing.T) {
	require.Equal(t, 0.0, Rate(ids(3), nil))
}

func TestRate_Bounds(t *testing.T) {
	pop := ids(4)
	require.Equal(t, 0.0, Rate(nil, pop))
	require.Equal(t, 100.0, Rate(pop, pop))
}

func TestRate_Partial(t *testing.T) {
	pop := ids(3)
	require.InDelta(t, 33.33, Rate(pop[:1], pop), 0.001)
	require.InDelta(t, 66.67, Rate(pop[:2], pop), 0.001)
}

func TestRate_IgnoresNonPopulationAndDuplicates(t *testing.T) {
	pop := ids(4)
	outsider := uuid.New()

	// completion dari luar populasi tidak dihitung
	require.Equal(t, 25.0, Rate([]uuid.UUID{pop[0], outsider}, pop))

	// duplikat satu student tetap dihitung sekali
	require.Equal(t, 25.0, Rate([]uuid.UUID{pop[0], pop[0], pop[0]}, pop))
}

func TestRate_DuplicatePopulationEntries(t *testing.T) {
	pop := ids(2)
	dupPop := append(append([]uuid.UUID{}, pop...), pop...)
	require.Equal(t, 50.0, Rate(pop[:1], dupPop))
}
