// file: internals/features/course/members/service/roster_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	mModel "kampusku_backend/internals/features/course/members/model"
)

// RosterService: query read-only ke data keanggotaan (dikelola service lain).
type RosterService struct {
	DB     *gorm.DB
	Period PeriodFn // default CurrentPeriod; test bisa override
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{DB: db, Period: CurrentPeriod}
}

func (s *RosterService) currentPeriod() (string, string) {
	fn := s.Period
	if fn == nil {
		fn = CurrentPeriod
	}
	return fn(time.Now())
}

// StudentsForGroups: siswa distinct anggota group tsb pada periode berjalan.
func (s *RosterService) StudentsForGroups(ctx context.Context, groupIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	year, semester := s.currentPeriod()

	var ids []uuid.UUID
	err := s.DB.WithContext(ctx).
		Model(&mModel.GroupMemberModel{}).
		Distinct("group_member_student_id").
		Where("group_member_group_id IN ?", groupIDs).
		Where("group_member_academic_year = ? AND group_member_semester = ?", year, semester).
		Pluck("group_member_student_id", &ids).Error
	return ids, err
}

// StudentsForUnit: siswa distinct dari SEMUA group milik course unit (periode berjalan).
func (s *RosterService) StudentsForUnit(ctx context.Context, unitID uuid.UUID) ([]uuid.UUID, error) {
	year, semester := s.currentPeriod()

	var ids []uuid.UUID
	err := s.DB.WithContext(ctx).
		Model(&mModel.GroupMemberModel{}).
		Distinct("group_member_student_id").
		Joins("JOIN course_groups ON course_group_id = group_member_group_id").
		Where("course_group_course_unit_id = ?", unitID).
		Where("group_member_academic_year = ? AND group_member_semester = ?", year, semester).
		Pluck("group_member_student_id", &ids).Error
	return ids, err
}

// StudentName: nama siswa utk penamaan folder arsip (entri keanggotaan terbaru).
func (s *RosterService) StudentName(ctx context.Context, studentID uuid.UUID) (firstName, lastName string, err error) {
	var m mModel.GroupMemberModel
	err = s.DB.WithContext(ctx).
		Where("group_member_student_id = ?", studentID).
		Order("group_member_created_at DESC").
		First(&m).Error
	if err != nil {
		return "", "", err
	}
	return m.GroupMemberFirstName, m.GroupMemberLastName, nil
}
