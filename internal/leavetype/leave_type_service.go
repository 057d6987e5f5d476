package leavetype

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"leavedesk/internal/balance"
	leavetypeerrors "leavedesk/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_type_service.go -destination=mock/leave_type_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	UpdateDefaultDays(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	balanceRepo balance.Repository
	rdb         *redis.Client
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, balanceRepo balance.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{db: db, repo: repo, balanceRepo: balanceRepo, rdb: rdb, logger: l}
}

// Create registers a new leave type and back-fills a balance entry at the
// default count for every existing user, in one transaction.
func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("create leave type requested",
		zap.String("name", req.Name),
		zap.Int("default_days", req.DefaultDays),
	)

	name := strings.TrimSpace(req.Name)
	if !IsValidName(name) {
		s.logger.Warn("create leave type invalid name", zap.String("name", name))
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidName
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave type begin tx failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	lt := &LeaveType{
		ID:          uuid.New(),
		Name:        name,
		DefaultDays: req.DefaultDays,
	}
	if err := qtx.Create(ctx, lt); err != nil {
		if isUniqueViolation(err) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrNameAlreadyRegistered
		}
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	qbalance := s.balanceRepo.WithTx(tx)
	if err := qbalance.BackfillForType(ctx, lt.ID.String(), lt.DefaultDays); err != nil {
		s.logger.Error("create leave type backfill failed",
			zap.String("leave_type_id", lt.ID.String()),
			zap.Error(err),
		)
		return LeaveTypeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave type commit failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.invalidateBalanceCaches(ctx)
	s.logger.Info("create leave type success",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("name", lt.Name),
	)

	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp, nil
}

func (s *service) UpdateDefaultDays(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	rows, err := s.repo.UpdateDefaultDays(ctx, id, req.DefaultDays)
	if err != nil {
		s.logger.Error("update leave type persist failed", zap.String("leave_type_id", id), zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	if rows == 0 {
		return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
	}

	s.logger.Info("update leave type success",
		zap.String("leave_type_id", id),
		zap.Int("default_days", req.DefaultDays),
	)
	return LeaveTypeResponse{ID: id, DefaultDays: req.DefaultDays}, nil
}

// invalidateBalanceCaches drops every cached balance listing after a
// backfill touched all users.
func (s *service) invalidateBalanceCaches(ctx context.Context) {
	if s.rdb == nil {
		return
	}

	iter := s.rdb.Scan(ctx, 0, balance.BalancesKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn("invalidate balance cache failed",
				zap.String("key", iter.Val()),
				zap.Error(err),
			)
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("scan balance cache keys failed", zap.Error(err))
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:          lt.ID.String(),
		Name:        lt.Name,
		DefaultDays: lt.DefaultDays,
	}
}
