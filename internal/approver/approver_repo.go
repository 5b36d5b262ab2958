package approver

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=approver_repo.go -destination=mock/approver_repo_mock.go -package=mock
type Repository interface {
	FindStage1Assignments(ctx context.Context, divisionCode string) ([]Candidate, error)
	FindStage2Assignments(ctx context.Context) ([]Candidate, error)
	FindUser(ctx context.Context, userID string) (*UserRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type candidateRow struct {
	UserID       string  `gorm:"column:user_id"`
	FullName     string  `gorm:"column:full_name"`
	RoleName     string  `gorm:"column:role_name"`
	RoleCategory string  `gorm:"column:role_category"`
	DivisionCode *string `gorm:"column:division_code"`
}

func (r *repository) FindStage1Assignments(ctx context.Context, divisionCode string) ([]Candidate, error) {
	var rows []candidateRow
	err := r.db.WithContext(ctx).
		Table("approver_assignments aa").
		Select("aa.approver_id::text AS user_id, u.full_name, u.role_name, aa.role_category, aa.division_code").
		Joins("JOIN users u ON u.id = aa.approver_id").
		Where("aa.division_code = ?", divisionCode).
		Where("aa.active = true").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapCandidates(rows)
}

func (r *repository) FindStage2Assignments(ctx context.Context) ([]Candidate, error) {
	var rows []candidateRow
	err := r.db.WithContext(ctx).
		Table("hrd_approver_assignments ha").
		Select("ha.approver_id::text AS user_id, u.full_name, u.role_name, 'HRD' AS role_category, ha.division_code").
		Joins("JOIN users u ON u.id = ha.approver_id").
		Where("ha.active = true").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapCandidates(rows)
}

func (r *repository) FindUser(ctx context.Context, userID string) (*UserRow, error) {
	var u UserRow
	err := r.db.WithContext(ctx).
		First(&u, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &u, err
}

func mapCandidates(rows []candidateRow) ([]Candidate, error) {
	candidates := make([]Candidate, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.UserID)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, Candidate{
			UserID:       id,
			Name:         row.FullName,
			RoleName:     row.RoleName,
			Category:     RoleCategory(row.RoleCategory),
			DivisionCode: row.DivisionCode,
		})
	}
	return candidates, nil
}
