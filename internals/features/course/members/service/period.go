// file: internals/features/course/members/service/period.go
package service

import (
	"fmt"
	"time"
)

const (
	SemesterGanjil = "Ganjil" // Jul–Des
	SemesterGenap  = "Genap"  // Jan–Jun
)

// PeriodFn menurunkan periode akademik berjalan dari wall-clock.
// Dibuat injectable supaya test bisa mengunci periode secara deterministik.
type PeriodFn func(now time.Time) (academicYear string, semester string)

// CurrentPeriod: tahun ajaran mulai Juli.
//   - Jul–Des → Ganjil, tahun ajaran "Y/Y+1"
//   - Jan–Jun → Genap,  tahun ajaran "Y-1/Y"
func CurrentPeriod(now time.Time) (string, string) {
	y := now.Year()
	if now.Month() >= time.July {
		return fmt.Sprintf("%d/%d", y, y+1), SemesterGanjil
	}
	return fmt.Sprintf("%d/%d", y-1, y), SemesterGenap
}
