// file: internals/features/course/activities/service/category_service_test.go
package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// execCall merekam satu statement yang dieksekusi stub.
type execCall struct {
	sql  string
	args []any
}

// scriptedExecer: mengembalikan hasil sesuai skrip per pemanggilan.
type scriptedExecer struct {
	calls   []execCall
	rows    []int64
	errs    []error
	callIdx int
}

func (s *scriptedExecer) Exec(_ context.Context, sql string, args ...any) (int64, error) {
	s.calls = append(s.calls, execCall{sql: sql, args: args})
	i := s.callIdx
	s.callIdx++
	var n int64
	var err error
	if i < len(s.rows) {
		n = s.rows[i]
	}
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return n, err
}

func isAppend(sql string) bool { return strings.Contains(sql, "array_append") }
func isCreate(sql string) bool { return strings.Contains(sql, "INSERT INTO activity_categories") }
func isRemove(sql string) bool { return strings.Contains(sql, "array_remove") }
func isPrune(sql string) bool  { return strings.Contains(sql, "cardinality") }

func TestClassify_AppendHitStops(t *testing.T) {
	ex := &scriptedExecer{rows: []int64{1}}
	svc := NewCategoryServiceWithExecer(ex)

	err := svc.Classify(context.Background(), uuid.New(), uuid.New(), "Homework")
	require.NoError(t, err)
	require.Len(t, ex.calls, 1)
	require.True(t, isAppend(ex.calls[0].sql))
}

func TestClassify_CreatesWhenCategoryMissing(t *testing.T) {
	ex := &scriptedExecer{rows: []int64{0, 1}}
	svc := NewCategoryServiceWithExecer(ex)

	err := svc.Classify(context.Background(), uuid.New(), uuid.New(), "Homework")
	require.NoError(t, err)
	require.Len(t, ex.calls, 2)
	require.True(t, isAppend(ex.calls[0].sql))
	require.True(t, isCreate(ex.calls[1].sql))
}

func TestClassify_LostCreateRaceRetriesAppend(t *testing.T) {
	// step 2 kalah race unique index → append diulang sekali
	ex := &scriptedExecer{
		rows: []int64{0, 0, 1},
		errs: []error{nil, errors.New(`pq: duplicate key value violates unique constraint "uq_activity_categories_unit_name"`), nil},
	}
	svc := NewCategoryServiceWithExecer(ex)

	err := svc.Classify(context.Background(), uuid.New(), uuid.New(), "Homework")
	require.NoError(t, err)
	require.Len(t, ex.calls, 3)
	require.True(t, isAppend(ex.calls[2].sql))
}

func TestClassify_ConcurrentCreatorBetweenSteps(t *testing.T) {
	// create tidak error tapi guard NOT EXISTS memukul 0 baris → append ulang
	ex := &scriptedExecer{rows: []int64{0, 0, 1}}
	svc := NewCategoryServiceWithExecer(ex)

	err := svc.Classify(context.Background(), uuid.New(), uuid.New(), "Homework")
	require.NoError(t, err)
	require.Len(t, ex.calls, 3)
	require.True(t, isAppend(ex.calls[2].sql))
}

func TestClassify_EmptyNameNoop(t *testing.T) {
	ex := &scriptedExecer{}
	svc := NewCategoryServiceWithExecer(ex)

	require.NoError(t, svc.Classify(context.Background(), uuid.New(), uuid.New(), "   "))
	require.Empty(t, ex.calls)
}

func TestRemove_PrunesEmptyCategories(t *testing.T) {
	ex := &scriptedExecer{rows: []int64{1, 1}}
	svc := NewCategoryServiceWithExecer(ex)

	require.NoError(t, svc.Remove(context.Background(), uuid.New(), uuid.New()))
	require.Len(t, ex.calls, 2)
	require.True(t, isRemove(ex.calls[0].sql))
	require.True(t, isPrune(ex.calls[1].sql))
}

func TestReclassify_RemoveThenClassify(t *testing.T) {
	ex := &scriptedExecer{rows: []int64{1, 0, 1}}
	svc := NewCategoryServiceWithExecer(ex)

	require.NoError(t, svc.Reclassify(context.Background(), uuid.New(), uuid.New(), "Exams"))
	require.Len(t, ex.calls, 3)
	require.True(t, isRemove(ex.calls[0].sql))
	require.True(t, isPrune(ex.calls[1].sql))
	require.True(t, isAppend(ex.calls[2].sql))
}

func TestReclassify_EmptyNameRemovesOnly(t *testing.T) {
	ex := &scriptedExecer{rows: []int64{1, 1}}
	svc := NewCategoryServiceWithExecer(ex)

	require.NoError(t, svc.Reclassify(context.Background(), uuid.New(), uuid.New(), ""))
	require.Len(t, ex.calls, 2)
}
