// file: internals/features/course/members/model/course_unit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Course unit & group dikelola service lain; engine ini hanya BACA
// untuk populasi completion-rate dan cek akses guru.

type CourseUnitModel struct {
	CourseUnitID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_unit_id" json:"course_unit_id"`
	CourseUnitTitle     string    `gorm:"type:text;not null;column:course_unit_title" json:"course_unit_title"`
	CourseUnitCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:course_unit_created_at" json:"course_unit_created_at"`
}

func (CourseUnitModel) TableName() string { return "course_units" }

type CourseGroupModel struct {
	CourseGroupID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_group_id" json:"course_group_id"`
	CourseGroupCourseUnitID uuid.UUID `gorm:"type:uuid;not null;index;column:course_group_course_unit_id" json:"course_group_course_unit_id"`
	CourseGroupName         string    `gorm:"type:text;not null;column:course_group_name" json:"course_group_name"`
}

func (CourseGroupModel) TableName() string { return "course_groups" }
