package user_test

import (
	"context"
	"database/sql"
	"testing"

	"leavedesk/internal/balance"
	"leavedesk/internal/user"
	usererrors "leavedesk/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn       func(ctx context.Context, u *user.User) error
	findByIDFn     func(ctx context.Context, id uuid.UUID) (*user.User, error)
	findByMobileFn func(ctx context.Context, mobile string) (*user.User, error)
	findManagersFn func(ctx context.Context) ([]user.User, error)
	searchFn       func(ctx context.Context, term string, page, limit int) ([]user.User, int64, error)
	updateFn       func(ctx context.Context, u *user.User) error
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByMobile(ctx context.Context, mobile string) (*user.User, error) {
	if f.findByMobileFn != nil {
		return f.findByMobileFn(ctx, mobile)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) FindManagers(ctx context.Context) ([]user.User, error) {
	if f.findManagersFn != nil {
		return f.findManagersFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) FindByManager(ctx context.Context, managerID uuid.UUID) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepository) Search(ctx context.Context, term string, page, limit int) ([]user.User, int64, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, term, page, limit)
	}
	return nil, 0, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeBalanceRepository struct {
	balance.Repository

	provisionForUserFn func(ctx context.Context, userID string) error
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository { return f }

func (f *fakeBalanceRepository) ProvisionForUser(ctx context.Context, userID string) error {
	if f.provisionForUserFn != nil {
		return f.provisionForUserFn(ctx, userID)
	}
	return nil
}

type userServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     user.Service
	repo        *fakeUserRepository
	balanceRepo *fakeBalanceRepository
}

func setupUserServiceTest(t *testing.T) *userServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeUserRepository{}
	balanceRepo := &fakeBalanceRepository{}
	svc := user.NewService(db, repo, balanceRepo)

	return &userServiceDeps{
		db:          db,
		sqlMock:     sqlMock,
		service:     svc,
		repo:        repo,
		balanceRepo: balanceRepo,
	}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success provisions balances in the same transaction", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var createdID string
		deps.repo.createFn = func(ctx context.Context, u *user.User) error {
			createdID = u.ID.String()
			assert.Equal(t, "Ayu Lestari", u.FullName)
			assert.Equal(t, user.RoleEmployee, u.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
			return nil
		}

		var provisionedID string
		deps.balanceRepo.provisionForUserFn = func(ctx context.Context, userID string) error {
			provisionedID = userID
			_, parseErr := uuid.Parse(userID)
			assert.NoError(t, parseErr)
			return nil
		}

		resp, err := deps.service.Create(ctx, user.CreateUserRequest{
			FullName: "Ayu Lestari",
			Mobile:   "081234567890",
			Password: "secret123",
		})

		assert.NoError(t, err)
		assert.Equal(t, createdID, resp.ID)
		assert.Equal(t, createdID, provisionedID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid role", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			FullName: "Ayu Lestari",
			Mobile:   "081234567890",
			Password: "secret123",
			Role:     "ADMIN",
		})

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("negative duplicate mobile", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.createFn = func(ctx context.Context, u *user.User) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_mobile"}
		}

		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			FullName: "Ayu Lestari",
			Mobile:   "081234567890",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, usererrors.ErrMobileAlreadyRegistered)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative manager without manager role", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		peer := &user.User{ID: uuid.New(), Role: user.RoleEmployee}
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			return peer, nil
		}

		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			FullName:  "Ayu Lestari",
			Mobile:    "081234567890",
			Password:  "secret123",
			ManagerID: peer.ID.String(),
		})

		assert.ErrorIs(t, err, usererrors.ErrManagerRoleRequired)
	})
}

func TestUserService_GetManagers(t *testing.T) {
	ctx := context.Background()

	deps := setupUserServiceTest(t)
	defer deps.db.Close()

	deps.repo.findManagersFn = func(ctx context.Context) ([]user.User, error) {
		return []user.User{
			{ID: uuid.New(), FullName: "Budi Santoso", Mobile: "0811", Role: user.RoleManager},
		}, nil
	}

	resp, err := deps.service.GetManagers(ctx)

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, user.RoleManager, resp[0].Role)
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		existing := &user.User{
			ID:       uuid.New(),
			FullName: "Ayu Lestari",
			Mobile:   "0812",
			Role:     user.RoleEmployee,
		}
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			return existing, nil
		}
		deps.repo.updateFn = func(ctx context.Context, u *user.User) error {
			assert.Equal(t, "Ayu L. Wijaya", u.FullName)
			return nil
		}

		resp, err := deps.service.Update(ctx, existing.ID.String(), user.UpdateUserRequest{
			FullName: "Ayu L. Wijaya",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Ayu L. Wijaya", resp.FullName)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(ctx, uuid.New().String(), user.UpdateUserRequest{
			FullName: "Someone",
		})

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}
