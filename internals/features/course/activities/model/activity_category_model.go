// file: internals/features/course/activities/model/activity_category_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Category dimiliki course unit (bukan activity). Satu activity maksimal
// ada di SATU category per unit; category kosong di-prune.
// Unique (unit, name) menjadi guard utk conditional insert di CategoryService.
type ActivityCategoryModel struct {
	ActivityCategoryID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:activity_category_id" json:"activity_category_id"`
	ActivityCategoryCourseUnitID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_activity_categories_unit_name;column:activity_category_course_unit_id" json:"activity_category_course_unit_id"`
	ActivityCategoryName         string    `gorm:"type:varchar(80);not null;uniqueIndex:uq_activity_categories_unit_name;column:activity_category_name" json:"activity_category_name"`
	ActivityCategoryDescription  *string   `gorm:"type:text;column:activity_category_description" json:"activity_category_description,omitempty"`

	// urutan activity dipertahankan (array, bukan join table)
	ActivityCategoryActivityIDs pq.StringArray `gorm:"type:text[];not null;default:'{}';column:activity_category_activity_ids" json:"activity_category_activity_ids"`

	ActivityCategoryCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:activity_category_created_at" json:"activity_category_created_at"`
	ActivityCategoryUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:activity_category_updated_at" json:"activity_category_updated_at"`
}

func (ActivityCategoryModel) TableName() string { return "activity_categories" }
