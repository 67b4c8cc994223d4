// file: internals/features/course/activities/service/completion_service.go
package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	aModel "kampusku_backend/internals/features/course/activities/model"
	mService "kampusku_backend/internals/features/course/members/service"
)

// ErrAlreadyCompleted: siswa sudah pernah menandai selesai activity tsb.
var ErrAlreadyCompleted = errors.New("activity sudah ditandai selesai")

type CompletionService struct {
	DB     *gorm.DB
	Roster *mService.RosterService
}

func NewCompletionService(db *gorm.DB, roster *mService.RosterService) *CompletionService {
	return &CompletionService{DB: db, Roster: roster}
}

// MarkComplete menambah mark (student, now). Duplikat ditolak unique index.
func (s *CompletionService) MarkComplete(ctx context.Context, activityID, studentID uuid.UUID) (*aModel.ActivityCompletionModel, error) {
	mark := &aModel.ActivityCompletionModel{
		ActivityCompletionActivityID: activityID,
		ActivityCompletionStudentID:  studentID,
	}
	if err := s.DB.WithContext(ctx).Create(mark).Error; err != nil {
		le := strings.ToLower(err.Error())
		if strings.Contains(le, "duplicate key") || strings.Contains(le, "unique constraint") {
			return nil, ErrAlreadyCompleted
		}
		return nil, err
	}
	return mark, nil
}

// CompletionRate menghitung persentase selesai terhadap populasi relevan:
// siswa group pembatas kalau ada, kalau tidak seluruh group course unit -
// keduanya difilter ke periode akademik berjalan. Populasi kosong → 0.
func (s *CompletionService) CompletionRate(ctx context.Context, act *aModel.ActivityModel) (float64, error) {
	var population []uuid.UUID
	var err error

	if groups := act.RestrictedGroupUUIDs(); len(groups) > 0 {
		population, err = s.Roster.StudentsForGroups(ctx, groups)
	} else {
		population, err = s.Roster.StudentsForUnit(ctx, act.ActivityCourseUnitID)
	}
	if err != nil {
		return 0, err
	}

	var completed []uuid.UUID
	err = s.DB.WithContext(ctx).
		Model(&aModel.ActivityCompletionModel{}).
		Distinct("activity_completion_student_id").
		Where("activity_completion_activity_id = ?", act.ActivityID).
		Pluck("activity_completion_student_id", &completed).Error
	if err != nil {
		return 0, err
	}

	return Rate(completed, population), nil
}

// Rate: round2(100 × |completed ∩ population| / |population|); 0 saat populasi kosong.
func Rate(completed, population []uuid.UUID) float64 {
	if len(population) == 0 {
		return 0
	}
	pop := make(map[uuid.UUID]struct{}, len(population))
	for _, id := range population {
		pop[id] = struct{}{}
	}
	done := 0
	seen := make(map[uuid.UUID]struct{}, len(completed))
	for _, id := range completed {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := pop[id]; ok {
			done++
		}
	}
	rate := 100 * float64(done) / float64(len(pop))
	return math.Round(rate*100) / 100
}
