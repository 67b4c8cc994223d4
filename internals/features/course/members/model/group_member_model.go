// file: internals/features/course/members/model/group_member_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GroupMemberModel: keanggotaan siswa per group per periode akademik.
// Periode disimpan sebagai pasangan (academic_year, semester),
// contoh: ("2025/2026", "Ganjil").
type GroupMemberModel struct {
	GroupMemberID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:group_member_id" json:"group_member_id"`
	GroupMemberGroupID      uuid.UUID `gorm:"type:uuid;not null;index;column:group_member_group_id" json:"group_member_group_id"`
	GroupMemberStudentID    uuid.UUID `gorm:"type:uuid;not null;index;column:group_member_student_id" json:"group_member_student_id"`
	GroupMemberFirstName    string    `gorm:"type:varchar(80);not null;column:group_member_first_name" json:"group_member_first_name"`
	GroupMemberLastName     string    `gorm:"type:varchar(80);not null;column:group_member_last_name" json:"group_member_last_name"`
	GroupMemberAcademicYear string    `gorm:"type:varchar(12);not null;column:group_member_academic_year" json:"group_member_academic_year"`
	GroupMemberSemester     string    `gorm:"type:varchar(12);not null;column:group_member_semester" json:"group_member_semester"`

	// Data profil bebas dari sistem keanggotaan (kontak wali, catatan, dll)
	GroupMemberProfile datatypes.JSON `gorm:"type:jsonb;column:group_member_profile" json:"group_member_profile,omitempty"`

	GroupMemberCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:group_member_created_at" json:"group_member_created_at"`
}

func (GroupMemberModel) TableName() string { return "group_members" }
