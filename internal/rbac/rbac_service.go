package rbac

import (
	"sync"

	"leavedesk/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
)

// policy is the fixed permission table. Roles come from the user directory
// (a two-member enum), so there is no per-tenant policy store to load.
var policy = [][]string{
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "balance", "read"},
	{RoleEmployee, "holiday", "read"},
	{RoleManager, "leave", "approve"},
	{RoleManager, "leave", "manage"},
	{RoleManager, "user", "manage"},
	{RoleManager, "leave_type", "manage"},
	{RoleManager, "holiday", "manage"},
}

// grouping: a manager can do everything an employee can.
var grouping = [][]string{
	{RoleManager, RoleEmployee},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	for _, p := range policy {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range grouping {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
