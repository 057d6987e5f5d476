package balance

import (
	"net/http"

	"leavedesk/internal/middleware"
	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetOwn returns the caller's balances; ?leave_type= narrows to one entry.
func (h *Handler) GetOwn(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString(middleware.ContextUserID)

	if leaveType := c.Query("leave_type"); leaveType != "" {
		resp, err := h.service.GetBalance(ctx, userID, leaveType)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
		return
	}

	resp, err := h.service.GetBalances(ctx, userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetByUser returns another user's balances (manager access).
func (h *Handler) GetByUser(c *gin.Context) {
	ctx := c.Request.Context()
	targetID := c.Param("id")

	resp, err := h.service.GetBalances(ctx, targetID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
