package leaverequest_test

import (
	"context"
	"testing"
	"time"

	"leavedesk/internal/leaverequest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupLeaveRequestRepoTest(t *testing.T) (leaverequest.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return leaverequest.NewRepository(gormDB), sqlMock
}

func TestLeaveRequestRepository_MarkRejected(t *testing.T) {
	ctx := context.Background()

	t.Run("success flips status and soft deletes in one statement", func(t *testing.T) {
		repo, sqlMock := setupLeaveRequestRepoTest(t)

		id := uuid.New()
		decidedBy := uuid.New()
		decidedAt := time.Now()

		sqlMock.ExpectExec(`(?s)UPDATE leave_requests.*SET status = 'REJECTED'.*deleted_at = NOW\(\).*WHERE id = \$1 AND status = 'PENDING' AND deleted_at IS NULL`).
			WithArgs(id, decidedBy, decidedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := repo.MarkRejected(ctx, id, decidedBy, decidedAt)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already decided row is left alone", func(t *testing.T) {
		repo, sqlMock := setupLeaveRequestRepoTest(t)

		id := uuid.New()
		decidedBy := uuid.New()
		decidedAt := time.Now()

		sqlMock.ExpectExec(`(?s)UPDATE leave_requests.*WHERE id = \$1 AND status = 'PENDING' AND deleted_at IS NULL`).
			WithArgs(id, decidedBy, decidedAt).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows, err := repo.MarkRejected(ctx, id, decidedBy, decidedAt)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), rows)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveRequestRepository_FindAllByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("listing excludes soft deleted rows", func(t *testing.T) {
		repo, sqlMock := setupLeaveRequestRepoTest(t)

		ownerID := uuid.New()
		pendingID := uuid.New()

		// Only the non-deleted row comes back; the rejected request's
		// deleted_at keeps it out of the result set.
		sqlMock.ExpectQuery(`(?s)SELECT \* FROM "leave_requests" WHERE user_id = \$1 AND "leave_requests"\."deleted_at" IS NULL ORDER BY created_at DESC`).
			WithArgs(ownerID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "request_number", "user_id", "leave_type", "total_days", "status"}).
				AddRow(pendingID, "LR-000003", ownerID, "Annual Leave", 3, leaverequest.StatusPending))

		requests, err := repo.FindAllByOwner(ctx, ownerID)

		assert.NoError(t, err)
		assert.Len(t, requests, 1)
		assert.Equal(t, pendingID, requests[0].ID)
		assert.Equal(t, leaverequest.StatusPending, requests[0].Status)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
