package approver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// Prefix cache kandidat approver
	eligibleKeyPrefix = "approvers:eligible:"
	eligibleCacheTTL  = 5 * time.Minute
)

func eligibleStage1Key(category RoleCategory, divisionCode string) string {
	return fmt.Sprintf("%sstage1:%s:%s", eligibleKeyPrefix, category, divisionCode)
}

func eligibleStage2Key(divisionCode string) string {
	return fmt.Sprintf("%sstage2:%s", eligibleKeyPrefix, divisionCode)
}

//go:generate mockgen -source=approver_service.go -destination=mock/approver_service_mock.go -package=mock
type Service interface {
	EligibleStage1(ctx context.Context, requester RoleCategory, divisionCode string) ([]Candidate, error)
	EligibleStage2(ctx context.Context, divisionCode string) ([]Candidate, error)
	GetUser(ctx context.Context, userID string) (*UserRow, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("approver.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approver.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// EligibleStage1 mengembalikan kandidat approver tahap 1 untuk requester,
// terurut rank lalu nama. Set kosong valid (requester DIREKTUR, atau divisi
// belum dikonfigurasi) dan keputusannya ada di pemanggil.
func (s *service) EligibleStage1(ctx context.Context, requester RoleCategory, divisionCode string) ([]Candidate, error) {
	allowed := Stage1Categories(requester)
	if len(allowed) == 0 {
		return nil, nil
	}

	key := eligibleStage1Key(requester, divisionCode)
	return s.cachedCandidates(ctx, key, func() ([]Candidate, error) {
		assignments, err := s.repo.FindStage1Assignments(ctx, divisionCode)
		if err != nil {
			return nil, err
		}

		candidates := make([]Candidate, 0, len(assignments))
		for _, c := range assignments {
			if allowsCategory(allowed, c.Category) {
				candidates = append(candidates, c)
			}
		}
		SortCandidates(candidates)
		return candidates, nil
	})
}

// EligibleStage2 mengembalikan kandidat HRD untuk tahap final. Kandidat
// dengan scope divisi yang cocok diprioritaskan; jika tidak ada, fallback
// ke HRD tanpa scope.
func (s *service) EligibleStage2(ctx context.Context, divisionCode string) ([]Candidate, error) {
	key := eligibleStage2Key(divisionCode)
	return s.cachedCandidates(ctx, key, func() ([]Candidate, error) {
		assignments, err := s.repo.FindStage2Assignments(ctx)
		if err != nil {
			return nil, err
		}

		candidates := FilterStage2(assignments, divisionCode)
		SortCandidates(candidates)
		return candidates, nil
	})
}

func (s *service) GetUser(ctx context.Context, userID string) (*UserRow, error) {
	return s.repo.FindUser(ctx, userID)
}

// cachedCandidates membaca dari Redis dulu; cache-miss di-collapse dengan
// singleflight agar burst request untuk divisi yang sama cuma satu query.
func (s *service) cachedCandidates(
	ctx context.Context,
	key string,
	load func() ([]Candidate, error),
) ([]Candidate, error) {
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cached []Candidate
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
			s.logger.Warn("decode cached approver set failed", zap.String("key", key))
		}
	}

	result, err, _ := s.sf.Do(key, func() (any, error) {
		candidates, err := load()
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(candidates); err == nil {
				if err := s.rdb.Set(ctx, key, payload, eligibleCacheTTL).Err(); err != nil {
					s.logger.Warn("cache approver set failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return candidates, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Candidate), nil
}
