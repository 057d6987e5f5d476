package user

import (
	"context"
	"database/sql"
	"errors"

	"leavedesk/internal/balance"
	"leavedesk/internal/shared/apperror"
	usererrors "leavedesk/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	GetByID(ctx context.Context, id string) (*UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetManagers(ctx context.Context) ([]UserResponse, error)
	GetTeam(ctx context.Context, managerID string) ([]UserResponse, error)
	Search(ctx context.Context, req SearchUsersRequest) ([]UserResponse, int64, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	balanceRepo balance.Repository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balanceRepo balance.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, balanceRepo: balanceRepo, logger: l}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *service) resolveManager(ctx context.Context, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	managerID, err := uuid.Parse(raw)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	manager, err := s.repo.FindByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrManagerNotFound
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load manager", 500)
	}
	if manager.Role != RoleManager {
		return nil, usererrors.ErrManagerRoleRequired
	}
	return &managerID, nil
}

// Create registers a user and seeds a leave balance row for every
// configured leave type in the same transaction, so a fresh account is
// immediately able to file requests.
func (s *service) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	s.logger.Debug("create user requested",
		zap.String("mobile", req.Mobile),
		zap.String("role", req.Role),
	)

	role := req.Role
	if role == "" {
		role = RoleEmployee
	}
	if !IsValidRole(role) {
		s.logger.Warn("create user rejected: invalid role", zap.String("role", role))
		return nil, usererrors.ErrInvalidRole
	}

	managerID, err := s.resolveManager(ctx, req.ManagerID)
	if err != nil {
		s.logger.Warn("create user rejected: bad manager reference", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to hash password", 500)
	}

	u := &User{
		ID:        uuid.New(),
		FullName:  req.FullName,
		Mobile:    req.Mobile,
		Email:     req.Email,
		Password:  string(hash),
		Role:      role,
		ManagerID: managerID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to begin transaction", 500)
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			s.logger.Warn("create user rejected: duplicate mobile or email",
				zap.String("mobile", req.Mobile),
			)
			return nil, usererrors.ErrMobileAlreadyRegistered
		}
		s.logger.Error("failed to persist user", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to create user", 500)
	}

	if err := s.balanceRepo.WithTx(tx).ProvisionForUser(ctx, u.ID.String()); err != nil {
		s.logger.Error("failed to provision leave balances", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to provision leave balances", 500)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to commit transaction", 500)
	}

	s.logger.Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)
	return toResponse(u), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		s.logger.Error("failed to fetch user", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch user", 500)
	}
	return toResponse(u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to list users", 500)
	}
	return toResponses(users), nil
}

func (s *service) GetManagers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindManagers(ctx)
	if err != nil {
		s.logger.Error("failed to list managers", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to list managers", 500)
	}
	return toResponses(users), nil
}

func (s *service) GetTeam(ctx context.Context, managerID string) ([]UserResponse, error) {
	id, err := uuid.Parse(managerID)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	users, err := s.repo.FindByManager(ctx, id)
	if err != nil {
		s.logger.Error("failed to list team members", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to list team members", 500)
	}
	return toResponses(users), nil
}

func (s *service) Search(ctx context.Context, req SearchUsersRequest) ([]UserResponse, int64, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.repo.Search(ctx, req.Search, page, limit)
	if err != nil {
		s.logger.Error("failed to search users", zap.Error(err))
		return nil, 0, apperror.Wrap(err, apperror.CodeInternalError, "failed to search users", 500)
	}
	return toResponses(users), total, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		s.logger.Error("failed to fetch user", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch user", 500)
	}

	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Mobile != "" {
		u.Mobile = req.Mobile
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Role != "" {
		if !IsValidRole(req.Role) {
			return nil, usererrors.ErrInvalidRole
		}
		u.Role = req.Role
	}
	if req.ManagerID != "" {
		managerID, err := s.resolveManager(ctx, req.ManagerID)
		if err != nil {
			return nil, err
		}
		u.ManagerID = managerID
	}

	if err := s.repo.Update(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, usererrors.ErrMobileAlreadyRegistered
		}
		s.logger.Error("failed to update user", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to update user", 500)
	}

	s.logger.Info("user updated", zap.String("user_id", u.ID.String()))
	return toResponse(u), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		s.logger.Error("failed to delete user", zap.Error(err))
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to delete user", 500)
	}
	s.logger.Info("user deleted", zap.String("user_id", userID.String()))
	return nil
}

func toResponse(u *User) *UserResponse {
	resp := &UserResponse{
		ID:       u.ID.String(),
		FullName: u.FullName,
		Mobile:   u.Mobile,
		Email:    u.Email,
		Role:     u.Role,
	}
	if u.ManagerID != nil {
		managerID := u.ManagerID.String()
		resp.ManagerID = &managerID
	}
	return resp
}

func toResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *toResponse(&users[i]))
	}
	return out
}
