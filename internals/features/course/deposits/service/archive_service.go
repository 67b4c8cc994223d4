// file: internals/features/course/deposits/service/archive_service.go
package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	dModel "kampusku_backend/internals/features/course/deposits/model"
	helperOSS "kampusku_backend/internals/helpers/oss"
)

/*
ArchiveService - generate arsip zip setoran secara STREAMING: encoder
ditulis langsung ke response writer; file diambil sebagai stream dari
object store dan di-pipe per entry. Tidak ada buffer arsip utuh maupun
buffer file utuh di memori.

Kegagalan fetch SATU file dicatat lalu dilewati (arsip parsial diterima);
kegagalan encoder/stream fatal dan menghentikan response.
*/

// BlobFetcher: subset gateway yang dibutuhkan exporter (stub-able di test).
type BlobFetcher interface {
	Stream(ctx context.Context, key string) (io.ReadCloser, error)
}

type ArchiveService struct {
	Blob BlobFetcher
}

func NewArchiveService(blob BlobFetcher) *ArchiveService { return &ArchiveService{Blob: blob} }

// BulkEntry: satu participant di arsip bulk.
type BulkEntry struct {
	FolderName string // "lastname_firstname"
	Deposit    *dModel.DepositModel
}

// WriteDepositArchive: arsip satu setoran, entry diberi nama file asli
// (dipulihkan dari suffix object key).
func (s *ArchiveService) WriteDepositArchive(ctx context.Context, w io.Writer, dep *dModel.DepositModel) error {
	zw := zip.NewWriter(w)
	if err := s.writeDepositEntries(ctx, zw, "", dep); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// WriteBulkArchive: satu arsip berisi folder per participant.
func (s *ArchiveService) WriteBulkArchive(ctx context.Context, w io.Writer, entries []BulkEntry) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		if e.Deposit == nil {
			continue
		}
		prefix := SanitizeArchiveName(e.FolderName) + "/"
		if err := s.writeDepositEntries(ctx, zw, prefix, e.Deposit); err != nil {
			_ = zw.Close()
			return err
		}
	}
	return zw.Close()
}

func (s *ArchiveService) writeDepositEntries(ctx context.Context, zw *zip.Writer, prefix string, dep *dModel.DepositModel) error {
	used := map[string]int{}
	for _, key := range dep.DepositFileKeys {
		src, err := s.Blob.Stream(ctx, key)
		if err != nil {
			// file bermasalah dilewati; arsip tetap lanjut
			log.Printf("[ARCHIVE] skip key=%s deposit=%s err=%v", key, dep.DepositID, err)
			continue
		}

		name := prefix + dedupeName(used, helperOSS.OriginalNameFromKey(key))
		entry, err := zw.Create(name)
		if err != nil {
			src.Close()
			return err // encoder rusak → fatal
		}
		if _, err := io.Copy(entry, src); err != nil {
			src.Close()
			return err // stream response putus → fatal
		}
		src.Close()
	}
	return nil
}

// dedupeName: dua upload bernama sama dalam satu folder → "x.pdf", "x (2).pdf"
func dedupeName(used map[string]int, name string) string {
	used[name]++
	if used[name] == 1 {
		return name
	}
	ext := ""
	stem := name
	if i := strings.LastIndex(name, "."); i > 0 {
		stem, ext = name[:i], name[i:]
	}
	return fmt.Sprintf("%s (%d)%s", stem, used[name], ext)
}

/* =========================
   Penamaan file arsip
========================= */

// SanitizeArchiveName: buang karakter yang merusak path entry zip / header
func SanitizeArchiveName(s string) string {
	s = strings.TrimSpace(s)
	r := strings.NewReplacer("/", "-", "\\", "-", "\"", "", "\r", "", "\n", "")
	s = r.Replace(s)
	if s == "" {
		return "unnamed"
	}
	return s
}

// FolderName: "lastname_firstname" utk arsip bulk
func FolderName(lastName, firstName string) string {
	return SanitizeArchiveName(lastName) + "_" + SanitizeArchiveName(firstName)
}

// SingleArchiveFilename: {lastname}_{firstname}-{activityTitle}.zip
func SingleArchiveFilename(lastName, firstName, activityTitle string) string {
	return fmt.Sprintf("%s-%s.zip", FolderName(lastName, firstName), SanitizeArchiveName(activityTitle))
}

// BulkArchiveFilename: {activityTitle}-All_Submissions.zip
func BulkArchiveFilename(activityTitle string) string {
	return fmt.Sprintf("%s-All_Submissions.zip", SanitizeArchiveName(activityTitle))
}
