package holiday

import (
	"context"
	"errors"
	"time"

	holidayerrors "leavedesk/internal/holiday/errors"
	"leavedesk/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (*HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (*HolidayResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperror.InvalidField("date")
	}

	h := &Holiday{
		ID:          uuid.New(),
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, holidayerrors.ErrDateAlreadyRegistered
		}
		s.logger.Error("failed to create holiday", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to create holiday", 500)
	}

	s.logger.Info("holiday created",
		zap.String("holiday_id", h.ID.String()),
		zap.String("date", req.Date),
	)
	return toResponse(h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list holidays", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to list holidays", 500)
	}

	out := make([]HolidayResponse, 0, len(holidays))
	for i := range holidays {
		out = append(out, *toResponse(&holidays[i]))
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	holidayID, err := uuid.Parse(id)
	if err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}
	if err := s.repo.Delete(ctx, holidayID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		s.logger.Error("failed to delete holiday", zap.Error(err))
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to delete holiday", 500)
	}
	return nil
}

func toResponse(h *Holiday) *HolidayResponse {
	return &HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        h.Date.Format("2006-01-02"),
		Description: h.Description,
	}
}
