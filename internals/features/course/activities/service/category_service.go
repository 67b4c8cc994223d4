// file: internals/features/course/activities/service/category_service.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
CategoryService - klasifikasi activity ke category TANPA lock.

Pola: dua statement conditional berurutan (guard-then-create).
 1. append kalau category sudah ada (guard: id belum ada di array)
 2. insert kalau category belum ada (guard: NOT EXISTS + unique index)

Race dua caller yang membuat category baru bernama sama diselesaikan oleh
unique index (unit, name): yang kalah insert-nya gagal guard, lalu retry
append sekali. Benar lintas proses, bukan cuma dalam satu proses.
*/

// Execer: subset gorm yang dipakai classifier; distub di test.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (rowsAffected int64, err error)
}

type gormExecer struct{ db *gorm.DB }

func (g gormExecer) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	res := g.db.WithContext(ctx).Exec(sql, args...)
	return res.RowsAffected, res.Error
}

type CategoryService struct {
	ex Execer
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{ex: gormExecer{db: db}}
}

func NewCategoryServiceWithExecer(ex Execer) *CategoryService {
	return &CategoryService{ex: ex}
}

const sqlAppendToCategory = `
UPDATE activity_categories
SET activity_category_activity_ids = array_append(activity_category_activity_ids, @aid),
    activity_category_updated_at = now()
WHERE activity_category_course_unit_id = @unit
  AND activity_category_name = @name
  AND NOT (@aid = ANY (activity_category_activity_ids))`

const sqlCreateCategory = `
INSERT INTO activity_categories
    (activity_category_course_unit_id, activity_category_name, activity_category_activity_ids)
SELECT @unit, @name, ARRAY[@aid]::text[]
WHERE NOT EXISTS (
    SELECT 1 FROM activity_categories
    WHERE activity_category_course_unit_id = @unit
      AND activity_category_name = @name
)`

const sqlRemoveFromCategory = `
UPDATE activity_categories
SET activity_category_activity_ids = array_remove(activity_category_activity_ids, @aid),
    activity_category_updated_at = now()
WHERE activity_category_course_unit_id = @unit
  AND @aid = ANY (activity_category_activity_ids)`

const sqlPruneEmptyCategories = `
DELETE FROM activity_categories
WHERE activity_category_course_unit_id = @unit
  AND cardinality(activity_category_activity_ids) = 0`

// Classify memasukkan activity ke category bernama categoryName di unit tsb.
// Idempotent: dipanggil dua kali hasilnya tetap satu category, id tampil sekali.
func (s *CategoryService) Classify(ctx context.Context, unitID, activityID uuid.UUID, categoryName string) error {
	categoryName = strings.TrimSpace(categoryName)
	if categoryName == "" {
		return nil
	}
	// Step 1: append kalau category sudah ada
	n, err := s.ex.Exec(ctx, sqlAppendToCategory,
		namedArgs(unitID, activityID, categoryName)...)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// Step 2: create kalau belum ada (guard NOT EXISTS + unique index)
	n, err = s.ex.Exec(ctx, sqlCreateCategory,
		namedArgs(unitID, activityID, categoryName)...)
	if err != nil {
		if isDuplicateKey(err) {
			// kalah race pembuatan category - ditelan, append ulang sekali
			_, err = s.ex.Exec(ctx, sqlAppendToCategory,
				namedArgs(unitID, activityID, categoryName)...)
			return err
		}
		return err
	}
	if n == 0 {
		// concurrent creator menang di antara step 1 dan step 2 → append ulang
		_, err = s.ex.Exec(ctx, sqlAppendToCategory,
			namedArgs(unitID, activityID, categoryName)...)
		return err
	}
	return nil
}

// Remove melepas activity dari category yang memegangnya, lalu prune category kosong.
func (s *CategoryService) Remove(ctx context.Context, unitID, activityID uuid.UUID) error {
	if _, err := s.ex.Exec(ctx, sqlRemoveFromCategory,
		removeArgs(unitID, activityID)...); err != nil {
		return err
	}
	_, err := s.ex.Exec(ctx, sqlPruneEmptyCategories,
		pruneArgs(unitID)...)
	return err
}

// Reclassify: lepas dari category lama (+prune), lalu classify kalau nama baru diberikan.
func (s *CategoryService) Reclassify(ctx context.Context, unitID, activityID uuid.UUID, newCategoryName string) error {
	if err := s.Remove(ctx, unitID, activityID); err != nil {
		return err
	}
	if strings.TrimSpace(newCategoryName) == "" {
		return nil
	}
	return s.Classify(ctx, unitID, activityID, newCategoryName)
}

func namedArgs(unitID, activityID uuid.UUID, name string) []any {
	return []any{
		map[string]any{
			"unit": unitID.String(),
			"name": name,
			"aid":  activityID.String(),
		},
	}
}

func removeArgs(unitID, activityID uuid.UUID) []any {
	return []any{
		map[string]any{
			"unit": unitID.String(),
			"aid":  activityID.String(),
		},
	}
}

func pruneArgs(unitID uuid.UUID) []any {
	return []any{
		map[string]any{
			"unit": unitID.String(),
		},
	}
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	le := strings.ToLower(err.Error())
	return strings.Contains(le, "duplicate key") || strings.Contains(le, "unique constraint")
}
