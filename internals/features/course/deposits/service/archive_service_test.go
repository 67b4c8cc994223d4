// file: internals/features/course/deposits/service/archive_service_test.go
package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	dModel "kampusku_backend/internals/features/course/deposits/model"
)

type stubFetcher struct {
	objects map[string]string // key → isi
}

func (f *stubFetcher) Stream(_ context.Context, key string) (io.ReadCloser, error) {
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return io.NopCloser(bytes.NewBufferString(body)), nil
}

func depWithKeys(keys ...string) *dModel.DepositModel {
	return &dModel.DepositModel{
		DepositID:         uuid.New(),
		DepositActivityID: uuid.New(),
		DepositStudentID:  uuid.New(),
		DepositFileKeys:   keys,
	}
}

func readZip(t *testing.T, buf *bytes.Buffer) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	out := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = string(body)
	}
	return out
}

func TestWriteDepositArchive_EntriesUseOriginalNames(t *testing.T) {
	fetcher := &stubFetcher{objects: map[string]string{
		"uploads/deposits/a/laporan_20260101_000000_abc123.pdf":  "isi laporan",
		"uploads/deposits/a/lampiran_20260101_000001_def456.zip": "isi lampiran",
	}}
	svc := NewArchiveService(fetcher)

	var buf bytes.Buffer
	dep := depWithKeys(
		"uploads/deposits/a/laporan_20260101_000000_abc123.pdf",
		"uploads/deposits/a/lampiran_20260101_000001_def456.zip",
	)
	require.NoError(t, svc.WriteDepositArchive(context.Background(), &buf, dep))

	got := readZip(t, &buf)
	require.Equal(t, map[string]string{
		"laporan.pdf":  "isi laporan",
		"lampiran.zip": "isi lampiran",
	}, got)
}

func TestWriteDepositArchive_SkipsMissingBlob(t *testing.T) {
	fetcher := &stubFetcher{objects: map[string]string{
		"uploads/deposits/a/ada_20260101_000000_abc123.txt": "ada",
	}}
	svc := NewArchiveService(fetcher)

	var buf bytes.Buffer
	dep := depWithKeys(
		"uploads/deposits/a/hilang_20260101_000000_zzz999.txt",
		"uploads/deposits/a/ada_20260101_000000_abc123.txt",
	)
	require.NoError(t, svc.WriteDepositArchive(context.Background(), &buf, dep))

	got := readZip(t, &buf)
	require.Equal(t, map[string]string{"ada.txt": "ada"}, got)
}

func TestWriteDepositArchive_DuplicateNamesDisambiguated(t *testing.T) {
	fetcher := &stubFetcher{objects: map[string]string{
		"uploads/deposits/a/tugas_20260101_000000_abc123.pdf": "v1",
		"uploads/deposits/a/tugas_20260101_000100_def456.pdf": "v2",
	}}
	svc := NewArchiveService(fetcher)

	var buf bytes.Buffer
	dep := depWithKeys(
		"uploads/deposits/a/tugas_20260101_000000_abc123.pdf",
		"uploads/deposits/a/tugas_20260101_000100_def456.pdf",
	)
	require.NoError(t, svc.WriteDepositArchive(context.Background(), &buf, dep))

	got := readZip(t, &buf)
	require.Equal(t, map[string]string{
		"tugas.pdf":     "v1",
		"tugas (2).pdf": "v2",
	}, got)
}

func TestWriteBulkArchive_FolderPerParticipant(t *testing.T) {
	fetcher := &stubFetcher{objects: map[string]string{
		"uploads/deposits/a/jawaban_20260101_000000_abc123.pdf": "dari andi",
		"uploads/deposits/a/jawaban_20260101_000100_def456.pdf": "dari budi",
	}}
	svc := NewArchiveService(fetcher)

	var buf bytes.Buffer
	entries := []BulkEntry{
		{FolderName: "wijaya_andi", Deposit: depWithKeys("uploads/deposits/a/jawaban_20260101_000000_abc123.pdf")},
		{FolderName: "santoso_budi", Deposit: depWithKeys("uploads/deposits/a/jawaban_20260101_000100_def456.pdf")},
	}
	require.NoError(t, svc.WriteBulkArchive(context.Background(), &buf, entries))

	got := readZip(t, &buf)
	require.Equal(t, map[string]string{
		"wijaya_andi/jawaban.pdf":  "dari andi",
		"santoso_budi/jawaban.pdf": "dari budi",
	}, got)
}

func TestWriteBulkArchive_EmptyEntries(t *testing.T) {
	svc := NewArchiveService(&stubFetcher{objects: map[string]string{}})
	var buf bytes.Buffer
	require.NoError(t, svc.WriteBulkArchive(context.Background(), &buf, nil))

	require.Empty(t, readZip(t, &buf))
}

func TestArchiveFilenames(t *testing.T) {
	require.Equal(t, "wijaya_andi-Praktikum 1.zip", SingleArchiveFilename("wijaya", "andi", "Praktikum 1"))
	require.Equal(t, "Praktikum 1-All_Submissions.zip", BulkArchiveFilename("Praktikum 1"))
	require.Equal(t, "a-b_c", FolderName("a/b", "c"))
	require.Equal(t, "unnamed", SanitizeArchiveName("  "))
}
