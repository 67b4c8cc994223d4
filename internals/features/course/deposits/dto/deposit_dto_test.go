// file: internals/features/course/deposits/dto/deposit_dto_test.go
package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	dModel "kampusku_backend/internals/features/course/deposits/model"
)

func TestFromDepositModel_FilesExposeURLNotKey(t *testing.T) {
	now := time.Now()
	score := 18.0
	m := &dModel.DepositModel{
		DepositID:         uuid.New(),
		DepositActivityID: uuid.New(),
		DepositStudentID:  uuid.New(),
		DepositFileKeys: []string{
			"uploads/deposits/a/laporan_20260101_000000_abc123.pdf",
		},
		DepositEvalScore:    &score,
		DepositEvalGradedAt: &now,
	}

	resp := FromDepositModel(m, func(key string) string { return "https://cdn.test/" + key })

	require.Len(t, resp.DepositFiles, 1)
	f := resp.DepositFiles[0]
	require.Equal(t, "laporan.pdf", f.FileName)
	require.Equal(t, "pdf", f.FileKind)
	require.Equal(t, "https://cdn.test/uploads/deposits/a/laporan_20260101_000000_abc123.pdf", f.FileURL)

	require.True(t, resp.DepositIsGraded)
	require.Equal(t, 18.0, *resp.DepositEvalScore)
}

func TestFromDepositModel_Ungraded(t *testing.T) {
	m := &dModel.DepositModel{DepositID: uuid.New()}
	resp := FromDepositModel(m, func(string) string { return "" })
	require.False(t, resp.DepositIsGraded)
	require.Empty(t, resp.DepositFiles)
}
