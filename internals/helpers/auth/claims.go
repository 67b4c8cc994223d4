// file: internals/helpers/auth/claims.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Kunci locals yang dihydrate oleh middleware AuthJWT
const (
	LocUserID    = "user_id"
	LocStudentID = "student_id"
	LocTeacherID = "teacher_id"
	LocRole      = "role"
	LocUnitIDs   = "teaching_unit_ids" // unit yang diajar (untuk guru)
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

func uuidLocal(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Token tidak memuat "+key)
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" tidak valid")
	}
	return id, nil
}

// GetUserID mengambil user_id dari token yang sudah diverifikasi
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) { return uuidLocal(c, LocUserID) }

// GetStudentID mengambil student_id; hanya ada untuk caller ber-role student
func GetStudentID(c *fiber.Ctx) (uuid.UUID, error) { return uuidLocal(c, LocStudentID) }

// GetTeacherID mengambil teacher_id; hanya ada untuk caller ber-role teacher
func GetTeacherID(c *fiber.Ctx) (uuid.UUID, error) { return uuidLocal(c, LocTeacherID) }

func GetRole(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocRole).(string); ok {
		return s
	}
	return ""
}

// GetTeachingUnitIDs mengembalikan daftar course unit yang diajar caller.
// Untuk admin daftar kosong berarti semua unit.
func GetTeachingUnitIDs(c *fiber.Ctx) []uuid.UUID {
	v := c.Locals(LocUnitIDs)
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]uuid.UUID, 0, len(arr))
	for _, it := range arr {
		s, ok := it.(string)
		if !ok {
			continue
		}
		if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// EnsureTeachesUnit memastikan guru berwenang di course unit tsb (admin lolos).
func EnsureTeachesUnit(c *fiber.Ctx, unitID uuid.UUID) error {
	if GetRole(c) == RoleAdmin {
		return nil
	}
	for _, id := range GetTeachingUnitIDs(c) {
		if id == unitID {
			return nil
		}
	}
	return fiber.NewError(fiber.StatusForbidden, "Anda tidak mengajar di course unit ini")
}
