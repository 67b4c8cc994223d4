// file: internals/features/course/deposits/service/deposit_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	aModel "kampusku_backend/internals/features/course/activities/model"
	dModel "kampusku_backend/internals/features/course/deposits/model"
	helperOSS "kampusku_backend/internals/helpers/oss"
)

/*
DepositService - siklus hidup setoran file per (activity, student):
absent → submitted → (updated)* → absent, dengan grading sebagai overlay.

Urutan langkah di Submit/Replace/Withdraw adalah MEKANISME kebenarannya
(bukan optimisasi): upload dulu, tulis record, baru hapus blob lama.
Record store dan object store tidak pernah di-commit transaksional bersama;
kegagalan parsial dikompensasi best-effort dan dicatat.
*/

var (
	ErrDepositConflict = errors.New("deposit untuk pasangan activity & student sudah ada")
	ErrDepositNotFound = errors.New("deposit tidak ditemukan")
)

// PolicyViolationError: pelanggaran batas jumlah/jenis file - pesan siap-tampil.
type PolicyViolationError struct{ Msg string }

func (e *PolicyViolationError) Error() string { return e.Msg }

// DepositStore: akses record deposit; implementasi produksi GORM, test pakai stub.
type DepositStore interface {
	Insert(ctx context.Context, dep *dModel.DepositModel) error
	UpdateFileKeys(ctx context.Context, depositID uuid.UUID, keys []string) error
	UpdateEval(ctx context.Context, depositID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, dep *dModel.DepositModel) error
	GetByPair(ctx context.Context, activityID, studentID uuid.UUID) (*dModel.DepositModel, error)
	GetByID(ctx context.Context, depositID uuid.UUID) (*dModel.DepositModel, error)
}

type DepositService struct {
	Store DepositStore
	Blob  helperOSS.BlobService
	Now   func() time.Time // injectable utk test grading timestamp
}

func NewDepositService(store DepositStore, blob helperOSS.BlobService) *DepositService {
	return &DepositService{Store: store, Blob: blob, Now: time.Now}
}

// FileKind: tag jenis file dari nama (ekstensi lowercase tanpa titik).
func FileKind(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// validatePolicy: cek jumlah + jenis SEBELUM side effect apa pun.
func validatePolicy(act *aModel.ActivityModel, files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return &PolicyViolationError{Msg: "Minimal satu file harus diunggah"}
	}
	if act.ActivityMaxFiles != nil && len(files) > *act.ActivityMaxFiles {
		return &PolicyViolationError{Msg: fmt.Sprintf("Maksimal %d file diizinkan", *act.ActivityMaxFiles)}
	}
	for _, fh := range files {
		kind := FileKind(fh.Filename)
		if !act.AcceptsFileKind(kind) {
			return &PolicyViolationError{Msg: fmt.Sprintf("Jenis file %q tidak diterima untuk activity ini", kind)}
		}
		if err := helperOSS.ValidateFileHeader(fh, helperOSS.DepositFilePolicy); err != nil {
			return &PolicyViolationError{Msg: err.Error()}
		}
	}
	return nil
}

// uploadAll: upload berurutan sambil mengumpulkan key; kalau satu gagal,
// key yang sudah naik dihapus lagi sebelum error dipropagasi.
func (s *DepositService) uploadAll(ctx context.Context, dir string, files []*multipart.FileHeader) ([]string, error) {
	keys := make([]string, 0, len(files))
	for _, fh := range files {
		key, err := s.Blob.UploadToDir(ctx, dir, fh, helperOSS.DepositFilePolicy)
		if err != nil {
			s.compensate(ctx, keys)
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// compensate: hapus blob hasil operasi yang gagal. Kegagalan hapus hanya
// dicatat - outcome user (operasi ditolak) sudah benar walau cleanup bolong.
func (s *DepositService) compensate(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	_, failed := s.Blob.DeleteMany(ctx, keys)
	for k, err := range failed {
		log.Printf("[DEPOSIT] orphan blob key=%s err=%v", k, err)
	}
}

/* =========================
   Operations
========================= */

// Submit: setoran pertama utk pasangan (activity, student).
func (s *DepositService) Submit(ctx context.Context, act *aModel.ActivityModel, studentID uuid.UUID, files []*multipart.FileHeader) (*dModel.DepositModel, error) {
	// 1) tolak kalau sudah ada (caller harus pakai Replace)
	existing, err := s.Store.GetByPair(ctx, act.ActivityID, studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDepositConflict
	}

	// 2) validasi policy tanpa side effect
	if err := validatePolicy(act, files); err != nil {
		return nil, err
	}

	// 3) upload semua file, kumpulkan key
	keys, err := s.uploadAll(ctx, depositDir(act.ActivityID), files)
	if err != nil {
		return nil, err
	}

	// 4) tulis record; 5) gagal (termasuk kalah race unique index) → hapus semua blob
	dep := &dModel.DepositModel{
		DepositActivityID:   act.ActivityID,
		DepositStudentID:    studentID,
		DepositCourseUnitID: act.ActivityCourseUnitID,
		DepositFileKeys:     keys,
	}
	if err := s.Store.Insert(ctx, dep); err != nil {
		s.compensate(ctx, keys)
		if isDuplicateKey(err) {
			return nil, ErrDepositConflict
		}
		return nil, err
	}
	return dep, nil
}

// Replace: ganti seluruh file setoran. File lama TIDAK pernah dihapus
// sebelum record menunjuk set baru - kegagalan di tengah meninggalkan
// setoran lama utuh, bukan student tanpa apa-apa.
func (s *DepositService) Replace(ctx context.Context, act *aModel.ActivityModel, studentID uuid.UUID, files []*multipart.FileHeader) (*dModel.DepositModel, error) {
	// error baca store bukan "setoran tidak ada": outage jangan tampil sebagai 404
	dep, err := s.Store.GetByPair(ctx, act.ActivityID, studentID)
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return nil, ErrDepositNotFound
	}

	if err := validatePolicy(act, files); err != nil {
		return nil, err
	}

	newKeys, err := s.uploadAll(ctx, depositDir(act.ActivityID), files)
	if err != nil {
		return nil, err
	}

	oldKeys := append([]string(nil), dep.DepositFileKeys...)

	if err := s.Store.UpdateFileKeys(ctx, dep.DepositID, newKeys); err != nil {
		// record masih menunjuk file lama → buang file baru saja
		s.compensate(ctx, newKeys)
		return nil, err
	}
	dep.DepositFileKeys = newKeys

	// baru sekarang file lama boleh dibebaskan (best-effort)
	s.compensate(ctx, oldKeys)
	return dep, nil
}

// Withdraw: hapus record dulu, baru blob. Blob hilang lebih baik daripada
// dangling reference yang masih bisa ditemukan lewat record.
func (s *DepositService) Withdraw(ctx context.Context, activityID, studentID uuid.UUID) error {
	dep, err := s.Store.GetByPair(ctx, activityID, studentID)
	if err != nil {
		return err
	}
	if dep == nil {
		return ErrDepositNotFound
	}
	if err := s.Store.Delete(ctx, dep); err != nil {
		return err
	}
	s.compensate(ctx, dep.DepositFileKeys)
	return nil
}

// Grade: merge evaluasi - field yang tidak dikirim DIBIARKAN, bukan dikosongkan.
// Idempotent & boleh diulang.
func (s *DepositService) Grade(ctx context.Context, depositID, teacherID uuid.UUID, score *float64, comment *string) (*dModel.DepositModel, error) {
	dep, err := s.Store.GetByID(ctx, depositID)
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return nil, ErrDepositNotFound
	}

	if score != nil && (*score < 0 || *score > 20) {
		return nil, &PolicyViolationError{Msg: "deposit_eval_score harus 0..20"}
	}

	updates := map[string]any{}
	if score != nil {
		updates["deposit_eval_score"] = *score
	}
	if comment != nil {
		updates["deposit_eval_comment"] = *comment
	}
	if len(updates) == 0 {
		return dep, nil
	}
	now := s.Now()
	updates["deposit_eval_teacher_id"] = teacherID
	updates["deposit_eval_graded_at"] = now

	if err := s.Store.UpdateEval(ctx, dep.DepositID, updates); err != nil {
		return nil, err
	}

	if score != nil {
		dep.DepositEvalScore = score
	}
	if comment != nil {
		dep.DepositEvalComment = comment
	}
	dep.DepositEvalTeacherID = &teacherID
	dep.DepositEvalGradedAt = &now
	return dep, nil
}

func depositDir(activityID uuid.UUID) string {
	return "deposits/" + activityID.String()
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	le := strings.ToLower(err.Error())
	return strings.Contains(le, "duplicate key") || strings.Contains(le, "unique constraint")
}
