package approver

import "sort"

// Stage1Categories memetakan kategori requester ke kategori approver yang
// boleh memutus di tahap 1. DIREKTUR tidak punya atasan: set kosong adalah
// kondisi terminal yang valid dan harus membuat submission ditolak, bukan
// diterima diam-diam.
func Stage1Categories(requester RoleCategory) []RoleCategory {
	switch requester {
	case CategoryStaff:
		return []RoleCategory{CategoryManager, CategorySupervisor, CategoryKoordinator, CategoryDirektur}
	case CategoryKoordinator:
		// Rekan selevel SUPERVISOR sengaja dikecualikan
		return []RoleCategory{CategoryManager, CategoryDirektur}
	case CategorySupervisor:
		return []RoleCategory{CategoryManager, CategoryDirektur}
	case CategoryManager:
		return []RoleCategory{CategoryDirektur}
	case CategoryHRD:
		return []RoleCategory{CategoryManager, CategoryDirektur}
	default:
		return nil
	}
}

func allowsCategory(allowed []RoleCategory, c RoleCategory) bool {
	for _, a := range allowed {
		if a == c {
			return true
		}
	}
	return false
}

// SortCandidates mengurutkan kandidat untuk presentasi: rank naik
// (KOORDINATOR < MANAGER/SUPERVISOR < DIREKTUR), stabil berdasarkan nama.
func SortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Category.Rank() != candidates[j].Category.Rank() {
			return candidates[i].Category.Rank() < candidates[j].Category.Rank()
		}
		return candidates[i].Name < candidates[j].Name
	})
}

// FilterStage2 menerapkan aturan scoping HRD: jika ada kandidat yang
// scope divisinya cocok dengan divisi request, hanya mereka yang dipakai;
// jika tidak ada, fallback ke kandidat tanpa scope divisi.
func FilterStage2(candidates []Candidate, divisionCode string) []Candidate {
	var scoped, unscoped []Candidate
	for _, c := range candidates {
		switch {
		case c.DivisionCode == nil:
			unscoped = append(unscoped, c)
		case *c.DivisionCode == divisionCode:
			scoped = append(scoped, c)
		}
	}
	if len(scoped) > 0 {
		return scoped
	}
	return unscoped
}
