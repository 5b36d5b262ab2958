package approver

import "strings"

// RoleCategory adalah kelas jabatan ternormalisasi yang dipakai policy.
// Nama role mentah di tabel users bebas ("SPV KEUANGAN GMART", "Manager HRD",
// dst); pemetaan ke kategori dilakukan eksplisit di sini, bukan lewat
// substring matching di query.
type RoleCategory string

const (
	CategoryStaff       RoleCategory = "STAFF"
	CategoryKoordinator RoleCategory = "KOORDINATOR"
	CategorySupervisor  RoleCategory = "SUPERVISOR"
	CategoryManager     RoleCategory = "MANAGER"
	CategoryDirektur    RoleCategory = "DIREKTUR"
	CategoryHRD         RoleCategory = "HRD"
)

func (c RoleCategory) Valid() bool {
	switch c {
	case CategoryStaff, CategoryKoordinator, CategorySupervisor,
		CategoryManager, CategoryDirektur, CategoryHRD:
		return true
	}
	return false
}

// Rank dipakai untuk urutan presentasi kandidat approver:
// KOORDINATOR < MANAGER/SUPERVISOR < DIREKTUR.
func (c RoleCategory) Rank() int {
	switch c {
	case CategoryKoordinator:
		return 1
	case CategorySupervisor, CategoryManager:
		return 2
	case CategoryDirektur:
		return 3
	default:
		return 0
	}
}

// Token jabatan yang diakui, dicek dalam urutan prioritas. DIREKTUR menang
// atas token lain karena "Direktur HRD" tetap direktur.
var categoryTokens = []struct {
	category RoleCategory
	tokens   []string
}{
	{CategoryDirektur, []string{"DIREKTUR", "DIRECTOR", "DIRUT"}},
	{CategoryHRD, []string{"HRD", "HR"}},
	{CategoryManager, []string{"MANAGER", "MANAJER", "MGR"}},
	{CategorySupervisor, []string{"SUPERVISOR", "SPV"}},
	{CategoryKoordinator, []string{"KOORDINATOR", "COORDINATOR", "KOORD"}},
}

// CategoryFromRoleName menormalkan nama role bebas menjadi RoleCategory.
// Pencocokan per kata utuh, case-insensitive; tanpa kecocokan berarti STAFF.
func CategoryFromRoleName(roleName string) RoleCategory {
	words := splitRoleWords(roleName)
	if len(words) == 0 {
		return CategoryStaff
	}

	for _, entry := range categoryTokens {
		for _, token := range entry.tokens {
			for _, w := range words {
				if w == token {
					return entry.category
				}
			}
		}
	}
	return CategoryStaff
}

func splitRoleWords(roleName string) []string {
	upper := strings.ToUpper(strings.TrimSpace(roleName))
	return strings.FieldsFunc(upper, func(r rune) bool {
		switch r {
		case ' ', '.', ',', '-', '/', '(', ')':
			return true
		}
		return false
	})
}
