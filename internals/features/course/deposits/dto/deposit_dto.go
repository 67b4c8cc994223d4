// file: internals/features/course/deposits/dto/deposit_dto.go
package dto

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	dModel "kampusku_backend/internals/features/course/deposits/model"
	helperOSS "kampusku_backend/internals/helpers/oss"
)

/* =========================
   Request DTO
========================= */

// GradeDepositRequest: merge-only - field nil tidak menyentuh nilai lama.
type GradeDepositRequest struct {
	DepositEvalScore   *float64 `json:"deposit_eval_score" form:"deposit_eval_score" validate:"omitempty,gte=0,lte=20"`
	DepositEvalComment *string  `json:"deposit_eval_comment" form:"deposit_eval_comment" validate:"omitempty,max=2000"`
}

/* =========================
   Response DTO
========================= */

// DepositFileResponse: satu file setoran - nama asli + URL retrieval,
// key internal tidak pernah keluar.
type DepositFileResponse struct {
	FileName string `json:"file_name"`
	FileKind string `json:"file_kind"`
	FileURL  string `json:"file_url"`
}

type DepositResponse struct {
	DepositID           uuid.UUID             `json:"deposit_id"`
	DepositActivityID   uuid.UUID             `json:"deposit_activity_id"`
	DepositStudentID    uuid.UUID             `json:"deposit_student_id"`
	DepositCourseUnitID uuid.UUID             `json:"deposit_course_unit_id"`
	DepositFiles        []DepositFileResponse `json:"deposit_files"`

	DepositIsGraded      bool       `json:"deposit_is_graded"`
	DepositEvalScore     *float64   `json:"deposit_eval_score,omitempty"`
	DepositEvalComment   *string    `json:"deposit_eval_comment,omitempty"`
	DepositEvalTeacherID *uuid.UUID `json:"deposit_eval_teacher_id,omitempty"`
	DepositEvalGradedAt  *time.Time `json:"deposit_eval_graded_at,omitempty"`

	DepositCreatedAt time.Time `json:"deposit_created_at"`
	DepositUpdatedAt time.Time `json:"deposit_updated_at"`
}

// FromDepositModel: urlFn memetakan object key → URL tampil (signed/public).
func FromDepositModel(m *dModel.DepositModel, urlFn func(key string) string) DepositResponse {
	files := make([]DepositFileResponse, 0, len(m.DepositFileKeys))
	for _, key := range m.DepositFileKeys {
		name := helperOSS.OriginalNameFromKey(key)
		files = append(files, DepositFileResponse{
			FileName: name,
			FileKind: fileKind(name),
			FileURL:  urlFn(key),
		})
	}
	return DepositResponse{
		DepositID:            m.DepositID,
		DepositActivityID:    m.DepositActivityID,
		DepositStudentID:     m.DepositStudentID,
		DepositCourseUnitID:  m.DepositCourseUnitID,
		DepositFiles:         files,
		DepositIsGraded:      m.IsGraded(),
		DepositEvalScore:     m.DepositEvalScore,
		DepositEvalComment:   m.DepositEvalComment,
		DepositEvalTeacherID: m.DepositEvalTeacherID,
		DepositEvalGradedAt:  m.DepositEvalGradedAt,
		DepositCreatedAt:     m.DepositCreatedAt,
		DepositUpdatedAt:     m.DepositUpdatedAt,
	}
}

func FromDepositModels(ms []dModel.DepositModel, urlFn func(key string) string) []DepositResponse {
	out := make([]DepositResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromDepositModel(&ms[i], urlFn))
	}
	return out
}

func fileKind(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}
