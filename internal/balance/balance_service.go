package balance

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	balanceerrors "leavedesk/internal/balance/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const BalancesKeyPrefix = "balances:user:"

func GetBalancesKey(userID string) string {
	return BalancesKeyPrefix + userID
}

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	GetBalances(ctx context.Context, userID string) ([]BalanceResponse, error)
	GetBalance(ctx context.Context, userID, leaveTypeName string) (BalanceResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetBalances(ctx context.Context, userID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, balanceerrors.ErrInvalidUserID
	}

	cacheKey := GetBalancesKey(userID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []BalanceResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Concurrent cache misses for the same user collapse into one DB read.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		views, err := s.repo.FindByUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		resp := make([]BalanceResponse, len(views))
		for i, view := range views {
			resp[i] = BalanceResponse{
				LeaveType: view.LeaveTypeName,
				Days:      view.Days,
			}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, 5*time.Minute).Err(); err != nil {
					s.logger.Warn("cache balances failed",
						zap.String("key", cacheKey),
						zap.Error(err),
					)
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get balances failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return v.([]BalanceResponse), nil
}

func (s *service) GetBalance(ctx context.Context, userID, leaveTypeName string) (BalanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidUserID
	}

	view, err := s.repo.FindByUserAndType(ctx, userID, leaveTypeName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrNotConfigured
		}
		s.logger.Error("get balance failed",
			zap.String("user_id", userID),
			zap.String("leave_type", leaveTypeName),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}

	return BalanceResponse{
		LeaveType: view.LeaveTypeName,
		Days:      view.Days,
	}, nil
}
