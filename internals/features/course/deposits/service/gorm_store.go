// file: internals/features/course/deposits/service/gorm_store.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	dModel "kampusku_backend/internals/features/course/deposits/model"
)

// GormDepositStore: implementasi DepositStore di atas Postgres.
type GormDepositStore struct {
	DB *gorm.DB
}

func NewGormDepositStore(db *gorm.DB) *GormDepositStore { return &GormDepositStore{DB: db} }

func (s *GormDepositStore) Insert(ctx context.Context, dep *dModel.DepositModel) error {
	return s.DB.WithContext(ctx).Create(dep).Error
}

func (s *GormDepositStore) UpdateFileKeys(ctx context.Context, depositID uuid.UUID, keys []string) error {
	return s.DB.WithContext(ctx).
		Model(&dModel.DepositModel{}).
		Where("deposit_id = ?", depositID).
		Update("deposit_file_keys", pq.StringArray(keys)).Error
}

func (s *GormDepositStore) UpdateEval(ctx context.Context, depositID uuid.UUID, updates map[string]any) error {
	return s.DB.WithContext(ctx).
		Model(&dModel.DepositModel{}).
		Where("deposit_id = ?", depositID).
		Updates(updates).Error
}

func (s *GormDepositStore) Delete(ctx context.Context, dep *dModel.DepositModel) error {
	return s.DB.WithContext(ctx).
		Delete(&dModel.DepositModel{}, "deposit_id = ?", dep.DepositID).Error
}

func (s *GormDepositStore) GetByPair(ctx context.Context, activityID, studentID uuid.UUID) (*dModel.DepositModel, error) {
	var dep dModel.DepositModel
	err := s.DB.WithContext(ctx).
		First(&dep, "deposit_activity_id = ? AND deposit_student_id = ?", activityID, studentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dep, nil
}

func (s *GormDepositStore) GetByID(ctx context.Context, depositID uuid.UUID) (*dModel.DepositModel, error) {
	var dep dModel.DepositModel
	err := s.DB.WithContext(ctx).
		First(&dep, "deposit_id = ?", depositID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dep, nil
}
