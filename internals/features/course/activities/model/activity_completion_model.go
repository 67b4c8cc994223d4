// file: internals/features/course/activities/model/activity_completion_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Satu mark per (activity, student) - dijaga unique index, bukan lock aplikasi.
type ActivityCompletionModel struct {
	ActivityCompletionID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:activity_completion_id" json:"activity_completion_id"`
	ActivityCompletionActivityID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_activity_completions_pair;column:activity_completion_activity_id" json:"activity_completion_activity_id"`
	ActivityCompletionStudentID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_activity_completions_pair;column:activity_completion_student_id" json:"activity_completion_student_id"`
	ActivityCompletionCompletedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:activity_completion_completed_at" json:"activity_completion_completed_at"`
}

func (ActivityCompletionModel) TableName() string { return "activity_completions" }
