// file: internals/features/course/deposits/model/deposit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Satu deposit per (activity, student) - dijaga unique index di DB,
// bukan lock aplikasi. Withdraw = hard delete (blob ikut dibebaskan).
type DepositModel struct {
	DepositID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:deposit_id" json:"deposit_id"`
	DepositActivityID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_deposits_pair;column:deposit_activity_id" json:"deposit_activity_id"`
	DepositStudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_deposits_pair;column:deposit_student_id" json:"deposit_student_id"`
	DepositCourseUnitID uuid.UUID `gorm:"type:uuid;not null;index;column:deposit_course_unit_id" json:"deposit_course_unit_id"` // denormalisasi utk query guru

	// Key blob setoran (urut, non-empty). Key dimiliki EKSKLUSIF record ini.
	DepositFileKeys pq.StringArray `gorm:"type:text[];not null;column:deposit_file_keys" json:"-"`

	// Evaluasi (overlay, bukan state terpisah)
	DepositEvalScore     *float64   `gorm:"type:numeric(4,2);column:deposit_eval_score" json:"deposit_eval_score,omitempty"`
	DepositEvalComment   *string    `gorm:"type:text;column:deposit_eval_comment" json:"deposit_eval_comment,omitempty"`
	DepositEvalTeacherID *uuid.UUID `gorm:"type:uuid;column:deposit_eval_teacher_id" json:"deposit_eval_teacher_id,omitempty"`
	DepositEvalGradedAt  *time.Time `gorm:"type:timestamptz;column:deposit_eval_graded_at" json:"deposit_eval_graded_at,omitempty"`

	DepositCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:deposit_created_at" json:"deposit_created_at"`
	DepositUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:deposit_updated_at" json:"deposit_updated_at"`
}

func (DepositModel) TableName() string { return "deposits" }

func (m *DepositModel) IsGraded() bool { return m.DepositEvalScore != nil || m.DepositEvalGradedAt != nil }
